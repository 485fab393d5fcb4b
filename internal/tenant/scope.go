// Package tenant turns an actor's scope into store filters so every read and
// write stays inside one business (and branch).
package tenant

import (
	"go-pos/internal/authz"
	"go-pos/internal/store"
)

// Columns names the tenant key columns of a table. Empty means the table has
// no such key.
type Columns struct {
	Business string
	Branch   string
}

var (
	Global   = Columns{}
	Business = Columns{Business: "business_id"}
	Branch   = Columns{Business: "business_id", Branch: "branch_id"}
)

// Filter returns the conditions confining a query to scope.
func Filter(scope authz.Scope, cols Columns) store.Filter {
	var f store.Filter
	if scope.BusinessID != "" && cols.Business != "" {
		f = append(f, store.Eq(cols.Business, scope.BusinessID))
	}
	if scope.BranchID != "" && cols.Branch != "" {
		f = append(f, store.Eq(cols.Branch, scope.BranchID))
	}
	return f
}

// Owns reports whether a row keyed by businessID/branchID lies inside scope.
func Owns(scope authz.Scope, cols Columns, businessID, branchID string) bool {
	if scope.BusinessID != "" && cols.Business != "" && businessID != scope.BusinessID {
		return false
	}
	if scope.BranchID != "" && cols.Branch != "" && branchID != scope.BranchID {
		return false
	}
	return true
}
