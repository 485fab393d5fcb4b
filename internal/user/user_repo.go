package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const Resource = "user"

type Repository = crud.Repository[User, AddUserRequest, EditUserRequest]

// Roles tells whether a role places its holders above every tenant.
type Roles interface {
	IsSuperadmin(ctx context.Context, roleID string) (bool, error)
}

// References are the rows a user points into.
type References struct {
	Roles    Roles
	Branches store.Table[branch.Branch]
}

// NormalizeEmail is the form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckRole fails with a field error on roleId when the role does not exist,
// or when it is a superadmin role and actor is not a superadmin.
func CheckRole(ctx context.Context, roles Roles, actor authz.Actor, roleID string) error {
	super, err := roles.IsSuperadmin(ctx, roleID)
	if errors.Is(err, store.ErrNotFound) {
		return crud.NewFieldError("roleId", "Role not found")
	}
	if err != nil {
		return err
	}
	if super && !actor.Superadmin {
		return crud.NewFieldError("roleId", "Only a superadmin can assign this role")
	}
	return nil
}

// HashPassword hashes a plain password for storage.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func Spec(refs References) crud.Spec[User, AddUserRequest, EditUserRequest] {
	return crud.Spec[User, AddUserRequest, EditUserRequest]{
		Resource: Resource,
		Label:    "User",
		KeyOf:    func(u User) any { return u.ID },
		EditKey:  func(r EditUserRequest) any { return r.ID },
		Tenant:   tenant.Business,
		TenantOf: func(u User) (string, string) { return u.BusinessID, "" },
		Fields: map[string]crud.Field{
			"name":      {Column: "name", Op: store.OpContains, Sortable: true},
			"email":     {Column: "email", Op: store.OpContains, Sortable: true},
			"roleId":    {Column: "role_id", Op: store.OpEq},
			"branchId":  {Column: "branch_id", Op: store.OpEq},
			"status":    {Column: "status", Op: store.OpEq},
			"createdAt": {Column: "created_at", Sortable: true},
		},
		SoftDelete: func(u *User, at time.Time) {
			u.IsDeleted = true
			u.DeletedAt = &at
		},
		Build: func(r AddUserRequest) User {
			return User{
				ID:         uuid.NewString(),
				BusinessID: r.BusinessID,
				BranchID:   r.BranchID,
				RoleID:     r.RoleID,
				Name:       r.Name,
				Email:      NormalizeEmail(r.Email),
				Status:     StatusActive,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(u *User, r EditUserRequest) {
			u.BranchID = r.BranchID
			u.RoleID = r.RoleID
			u.Name = r.Name
			u.Email = NormalizeEmail(r.Email)
			u.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[User, AddUserRequest, EditUserRequest]{
			BeforeCreate: func(ctx context.Context, actor authz.Actor, in AddUserRequest, row *User) error {
				if err := CheckRole(ctx, refs.Roles, actor, row.RoleID); err != nil {
					return err
				}
				if row.BranchID != "" {
					if err := branch.Exists(ctx, refs.Branches, row.BusinessID, row.BranchID); err != nil {
						return err
					}
				}
				hash, err := HashPassword(in.Password)
				if err != nil {
					return err
				}
				row.PasswordHash = hash
				return nil
			},
			BeforeUpdate: func(ctx context.Context, actor authz.Actor, _ EditUserRequest, before User, row *User) error {
				if row.RoleID != before.RoleID {
					if err := CheckRole(ctx, refs.Roles, actor, row.RoleID); err != nil {
						return err
					}
				}
				if row.BranchID != "" && row.BranchID != before.BranchID {
					return branch.Exists(ctx, refs.Branches, row.BusinessID, row.BranchID)
				}
				return nil
			},
		},
	}
}

func NewRepository(table store.Table[User], refs References, deps crud.Deps) *Repository {
	return crud.New(Spec(refs), table, deps)
}
