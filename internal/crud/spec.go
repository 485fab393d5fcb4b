// Package crud is the generic entity repository: every feature instantiates
// Repository with a Spec describing its table, tenant keys and payloads.
package crud

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
)

// Field exposes a column to list filtering and sorting under its API name.
type Field struct {
	Column   string
	Op       store.Op // empty: not filterable
	Sortable bool
	// Parse converts the raw query value; nil keeps the string.
	Parse func(string) (any, error)
}

// Spec describes one entity type. T is the row, A the add payload and E the
// edit payload.
type Spec[T, A, E any] struct {
	// Resource is the permission prefix and the view scope, e.g. "branch".
	Resource string
	// Label is the human name used in messages, e.g. "Branch".
	Label string

	KeyField  string
	KeyColumn string
	// ParseKey converts a raw key (from a URL); nil keeps the string.
	ParseKey func(string) (any, error)
	KeyOf    func(T) any
	EditKey  func(E) any

	Tenant   tenant.Columns
	TenantOf func(T) (businessID, branchID string)

	Fields map[string]Field

	// SoftDelete marks the row deleted instead of removing it. Tables with
	// soft delete carry an is_deleted column.
	SoftDelete func(row *T, at time.Time)

	Build func(in A) T
	Apply func(row *T, in E)

	// Views lists extra scopes invalidated on every mutation.
	Views []string

	Hooks Hooks[T, A, E]
}

// Hooks run inside the mutation's transaction. Returning a *FieldError turns
// into a field-scoped Result; any other error rolls back and fails.
type Hooks[T, A, E any] struct {
	BeforeCreate func(ctx context.Context, actor authz.Actor, in A, row *T) error
	AfterCreate  func(ctx context.Context, actor authz.Actor, in A, row *T) error
	BeforeUpdate func(ctx context.Context, actor authz.Actor, in E, before T, row *T) error
	BeforeDelete func(ctx context.Context, actor authz.Actor, row T) error
}

func (s Spec[T, A, E]) code(action string) string {
	return authz.Code(s.Resource, action)
}

func (s Spec[T, A, E]) parseKey(raw string) (any, error) {
	if s.ParseKey == nil {
		return raw, nil
	}
	return s.ParseKey(raw)
}

func (s Spec[T, A, E]) label() string {
	if s.Label == "" {
		return s.Resource
	}
	return s.Label
}

func (s Spec[T, A, E]) keyString(row T) string {
	if s.KeyOf == nil {
		return ""
	}
	return fmt.Sprint(s.KeyOf(row))
}

// Int parses an integer key or filter value.
func Int(raw string) (any, error) {
	return strconv.Atoi(raw)
}

// Bool parses a boolean filter value.
func Bool(raw string) (any, error) {
	return strconv.ParseBool(raw)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
