package authz

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

// Actor is the authenticated user performing an operation. It is resolved once
// per request and passed explicitly to every repository and service call.
type Actor struct {
	ID          string
	Email       string
	Name        string
	RoleID      string
	RoleTitle   string
	Status      string
	Superadmin  bool
	BusinessID  string
	BranchID    string
	Permissions PermissionSet
}

// Scope is the tenant boundary an actor's reads and writes are confined to.
// Empty fields mean "not restricted on that key".
type Scope struct {
	BusinessID string
	BranchID   string
}

// Unscoped reports whether the scope places no restriction at all.
func (s Scope) Unscoped() bool {
	return s.BusinessID == "" && s.BranchID == ""
}

// Scope returns the tenant scope for the actor. Superadmins are unscoped; a
// business admin is confined to its business; a branch manager additionally to
// its branch.
func (a Actor) Scope() Scope {
	if a.Superadmin {
		return Scope{}
	}
	return Scope{BusinessID: a.BusinessID, BranchID: a.BranchID}
}

// Active reports whether the actor may act at all.
func (a Actor) Active() bool {
	return a.Status == "" || a.Status == StatusActive
}
