package manager

import (
	"context"
	"errors"
	"time"

	"go-pos/internal/authz"
	"go-pos/internal/branch"
	"go-pos/internal/crud"
	"go-pos/internal/store"
	"go-pos/internal/tenant"
	"go-pos/internal/user"

	"github.com/google/uuid"
)

const Resource = "manager"

type Repository = crud.Repository[Manager, AddManagerRequest, EditManagerRequest]

// Links are the rows a manager is tied to. Creating or deleting a manager
// writes all of them in one transaction.
type Links struct {
	Users    store.Table[user.User]
	Branches store.Table[branch.Branch]
	Roles    user.Roles
	Now      func() time.Time
}

func Spec(links Links) crud.Spec[Manager, AddManagerRequest, EditManagerRequest] {
	if links.Now == nil {
		links.Now = time.Now
	}

	return crud.Spec[Manager, AddManagerRequest, EditManagerRequest]{
		Resource: Resource,
		Label:    "Manager",
		KeyOf:    func(m Manager) any { return m.ID },
		EditKey:  func(r EditManagerRequest) any { return r.ID },
		Tenant:   tenant.Branch,
		TenantOf: func(m Manager) (string, string) { return m.BusinessID, m.BranchID },
		Fields: map[string]crud.Field{
			"name":     {Column: "name", Op: store.OpContains, Sortable: true},
			"email":    {Column: "email", Op: store.OpContains, Sortable: true},
			"branchId": {Column: "branch_id", Op: store.OpEq},
		},
		Views: []string{user.Resource, branch.Resource},
		Build: func(r AddManagerRequest) Manager {
			return Manager{
				ID:         uuid.NewString(),
				BusinessID: r.BusinessID,
				BranchID:   r.BranchID,
				Name:       r.Name,
				Email:      user.NormalizeEmail(r.Email),
				Phone:      r.Phone,
				CreatedBy:  r.CreatedBy,
			}
		},
		Apply: func(m *Manager, r EditManagerRequest) {
			m.Name = r.Name
			m.Phone = r.Phone
			m.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Manager, AddManagerRequest, EditManagerRequest]{
			BeforeCreate: links.createLogin,
			AfterCreate: func(ctx context.Context, _ authz.Actor, _ AddManagerRequest, row *Manager) error {
				return links.assignBranch(ctx, row.BusinessID, row.BranchID, &row.ID)
			},
			BeforeUpdate: func(ctx context.Context, _ authz.Actor, _ EditManagerRequest, _ Manager, row *Manager) error {
				u, err := links.Users.First(ctx, store.Filter{store.Eq("id", row.UserID)})
				if err != nil {
					return err
				}
				u.Name = row.Name
				u.UpdatedBy = row.UpdatedBy
				return links.Users.Save(ctx, u)
			},
			BeforeDelete: links.release,
		},
	}
}

func NewRepository(table store.Table[Manager], links Links, deps crud.Deps) *Repository {
	return crud.New(Spec(links), table, deps)
}

func (l Links) createLogin(ctx context.Context, actor authz.Actor, in AddManagerRequest, row *Manager) error {
	if err := user.CheckRole(ctx, l.Roles, actor, in.RoleID); err != nil {
		return err
	}

	_, err := l.Users.First(ctx, store.Filter{store.Eq("email", row.Email)})
	if err == nil {
		return crud.NewFieldError("email", "Email is already registered")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := user.HashPassword(in.Password)
	if err != nil {
		return err
	}
	login := user.User{
		ID:           uuid.NewString(),
		BusinessID:   in.BusinessID,
		BranchID:     in.BranchID,
		RoleID:       in.RoleID,
		Name:         in.Name,
		Email:        row.Email,
		PasswordHash: hash,
		Status:       user.StatusActive,
		CreatedBy:    in.CreatedBy,
	}
	if err := l.Users.Create(ctx, &login); err != nil {
		return err
	}
	row.UserID = login.ID
	return nil
}

func (l Links) assignBranch(ctx context.Context, businessID, branchID string, managerID *string) error {
	b, err := l.Branches.First(ctx, store.Filter{
		store.Eq("id", branchID),
		store.Eq("business_id", businessID),
	})
	if errors.Is(err, store.ErrNotFound) {
		return crud.NewFieldError("branchId", "Branch not found")
	}
	if err != nil {
		return err
	}
	if b.ManagerID != nil && *b.ManagerID != *managerID {
		return crud.NewFieldError("branchId", "Branch already has a manager")
	}
	b.ManagerID = managerID
	return l.Branches.Save(ctx, b)
}

// release unlinks the branch and retires the manager's login.
func (l Links) release(ctx context.Context, _ authz.Actor, row Manager) error {
	b, err := l.Branches.First(ctx, store.Filter{store.Eq("id", row.BranchID)})
	switch {
	case err == nil && b.ManagerID != nil && *b.ManagerID == row.ID:
		b.ManagerID = nil
		if err := l.Branches.Save(ctx, b); err != nil {
			return err
		}
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return err
	}

	u, err := l.Users.First(ctx, store.Filter{store.Eq("id", row.UserID)})
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	at := l.Now()
	u.IsDeleted = true
	u.DeletedAt = &at
	return l.Users.Save(ctx, u)
}
