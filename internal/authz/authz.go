// Package authz holds the authenticated actor and the permission evaluator.
//
// Permission codes are opaque "resource:action" tokens. Authorization is an
// exact set-membership test: there is no hierarchy and no wildcard.
package authz

import (
	"go-pos/internal/shared/apperror"
)

const (
	ActionView   = "view"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// Actions lists the CRUD actions every resource is seeded with.
var Actions = []string{ActionView, ActionCreate, ActionUpdate, ActionDelete}

// Code builds a permission code from a resource and an action.
func Code(resource, action string) string {
	return resource + ":" + action
}

// PermissionSet is the resolved set of codes an actor holds.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from a list of codes.
func NewPermissionSet(codes ...string) PermissionSet {
	set := make(PermissionSet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether code is in the set. A nil set holds nothing.
func (s PermissionSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the codes in the set in no particular order.
func (s PermissionSet) Codes() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	return out
}

// Authorize is the pure permission check.
func Authorize(perms PermissionSet, required string) bool {
	if len(perms) == 0 || required == "" {
		return false
	}
	return perms.Has(required)
}

// Require fails with apperror.ErrForbidden when the actor lacks code.
func Require(actor Actor, code string) error {
	if !Authorize(actor.Permissions, code) {
		return apperror.ErrForbidden
	}
	return nil
}
