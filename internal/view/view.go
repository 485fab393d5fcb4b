// Package view signals the presentation cache that views under a scope are
// stale. Invalidation is best-effort: it never fails the caller.
package view

import "context"

const (
	KeyPrefix = "view:"
	Channel   = "views:invalidated"
)

//go:generate mockgen -source=view.go -destination=mock/invalidator_mock.go -package=mock
type Invalidator interface {
	Invalidate(ctx context.Context, scope string)
}

// Key builds the cache key a presentation view is stored under.
func Key(scope string, parts ...string) string {
	k := KeyPrefix + scope
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

type noop struct{}

// Noop discards every signal.
func Noop() Invalidator { return noop{} }

func (noop) Invalidate(context.Context, string) {}
