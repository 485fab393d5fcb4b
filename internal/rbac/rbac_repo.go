package rbac

import (
	"context"

	"go-pos/internal/authz"
	"go-pos/internal/crud"
	"go-pos/internal/store"

	"github.com/google/uuid"
)

const (
	RoleResource       = "role"
	PermissionResource = "permission"
)

type (
	RoleRepository       = crud.Repository[Role, AddRoleRequest, EditRoleRequest]
	PermissionRepository = crud.Repository[Permission, AddPermissionRequest, EditPermissionRequest]
)

// RoleSpec describes roles. Roles are global; links are the role-permission
// rows removed together with a role.
func RoleSpec(links store.Table[RolePermission]) crud.Spec[Role, AddRoleRequest, EditRoleRequest] {
	return crud.Spec[Role, AddRoleRequest, EditRoleRequest]{
		Resource: RoleResource,
		Label:    "Role",
		KeyOf:    func(r Role) any { return r.ID },
		EditKey:  func(r EditRoleRequest) any { return r.ID },
		Fields: map[string]crud.Field{
			"title":      {Column: "title", Op: store.OpContains, Sortable: true},
			"superadmin": {Column: "superadmin", Op: store.OpEq, Parse: crud.Bool},
			"createdAt":  {Column: "created_at", Sortable: true},
		},
		Views: []string{"user"},
		Build: func(r AddRoleRequest) Role {
			return Role{
				ID:          uuid.NewString(),
				Title:       r.Title,
				Description: r.Description,
				CreatedBy:   r.CreatedBy,
			}
		},
		Apply: func(role *Role, r EditRoleRequest) {
			role.Title = r.Title
			role.Description = r.Description
			role.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Role, AddRoleRequest, EditRoleRequest]{
			BeforeDelete: func(ctx context.Context, _ authz.Actor, row Role) error {
				if row.Superadmin {
					return crud.NewFieldError("id", "The superadmin role cannot be deleted")
				}
				_, err := links.Delete(ctx, store.Filter{store.Eq("role_id", row.ID)})
				return err
			},
		},
	}
}

func PermissionSpec(links store.Table[RolePermission]) crud.Spec[Permission, AddPermissionRequest, EditPermissionRequest] {
	return crud.Spec[Permission, AddPermissionRequest, EditPermissionRequest]{
		Resource: PermissionResource,
		Label:    "Permission",
		ParseKey: crud.Int,
		KeyOf:    func(p Permission) any { return p.ID },
		EditKey:  func(r EditPermissionRequest) any { return r.ID },
		Fields: map[string]crud.Field{
			"code": {Column: "code", Op: store.OpContains, Sortable: true},
		},
		Views: []string{RoleResource},
		Build: func(r AddPermissionRequest) Permission {
			return Permission{Code: r.Code, Description: r.Description, CreatedBy: r.CreatedBy}
		},
		Apply: func(p *Permission, r EditPermissionRequest) {
			p.Code = r.Code
			p.Description = r.Description
			p.UpdatedBy = r.UpdatedBy
		},
		Hooks: crud.Hooks[Permission, AddPermissionRequest, EditPermissionRequest]{
			BeforeDelete: func(ctx context.Context, _ authz.Actor, row Permission) error {
				_, err := links.Delete(ctx, store.Filter{store.Eq("permission_id", row.ID)})
				return err
			},
		},
	}
}

// RoleLookup answers user.Roles from the roles table.
type RoleLookup struct {
	Roles store.Table[Role]
}

func (l RoleLookup) IsSuperadmin(ctx context.Context, roleID string) (bool, error) {
	role, err := l.Roles.First(ctx, store.Filter{store.Eq("id", roleID)})
	if err != nil {
		return false, err
	}
	return role.Superadmin, nil
}
