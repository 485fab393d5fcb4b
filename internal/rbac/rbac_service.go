package rbac

import (
	"context"
	"errors"
	"fmt"

	"go-pos/internal/authz"
	"go-pos/internal/crud"
	"go-pos/internal/events"
	"go-pos/internal/shared/result"
	"go-pos/internal/shared/validation"
	"go-pos/internal/store"

	"go.uber.org/zap"
)

// Service manages roles, permissions and the links between them.
type Service struct {
	Roles       *RoleRepository
	Permissions *PermissionRepository

	links     store.Table[RolePermission]
	validator *validation.Validator
	logger    *zap.Logger
}

// NewService builds the role and permission repositories. When policy is
// set, their committed changes invalidate it.
func NewService(roles store.Table[Role], perms store.Table[Permission], links store.Table[RolePermission], policy *Policy, deps crud.Deps) *Service {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	if policy != nil {
		deps.Views = policy.Watch(deps.Views)
	}
	return &Service{
		Roles:       crud.New(RoleSpec(links), roles, deps),
		Permissions: crud.New(PermissionSpec(links), perms, deps),
		links:       links,
		validator:   deps.Validator,
		logger:      zap.L().Named("rbac.service"),
	}
}

// RolePermissions lists the permissions currently linked to a role.
func (s *Service) RolePermissions(ctx context.Context, actor authz.Actor, roleID string) ([]Permission, error) {
	if _, err := s.Roles.Get(ctx, actor, roleID); err != nil {
		return nil, err
	}

	links, err := s.links.FindMany(ctx, store.Query{Filter: store.Filter{store.Eq("role_id", roleID)}})
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return []Permission{}, nil
	}

	ids := make([]int, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.PermissionID)
	}
	return s.Permissions.Table().FindMany(ctx, store.Query{
		Filter:  store.Filter{store.In("id", ids)},
		OrderBy: []store.Order{{Field: "code"}},
	})
}

// SetPermissions replaces every permission of a role in one transaction.
func (s *Service) SetPermissions(ctx context.Context, actor authz.Actor, in SetPermissionsRequest) (result.Result, error) {
	if err := authz.Require(actor, authz.Code(RoleResource, authz.ActionUpdate)); err != nil {
		return result.Result{}, err
	}
	if errs := s.validator.Struct(in); errs != nil {
		return result.Invalid(errs, in), nil
	}

	ids := dedupe(in.PermissionIDs)
	_, err := s.Roles.Mutate(ctx, actor, events.ActionUpdated, func(ctx context.Context) (Role, error) {
		role, err := s.Roles.Live(ctx, actor, in.RoleID)
		if err != nil {
			return Role{}, err
		}

		for i, id := range ids {
			_, err := s.Permissions.Table().First(ctx, store.Filter{store.Eq("id", id)})
			if errors.Is(err, store.ErrNotFound) {
				return Role{}, crud.NewFieldError(fmt.Sprintf("permissionIds[%d]", i), "Permission not found")
			}
			if err != nil {
				return Role{}, err
			}
		}

		if _, err := s.links.Delete(ctx, store.Filter{store.Eq("role_id", role.ID)}); err != nil {
			return Role{}, err
		}
		for _, id := range ids {
			link := RolePermission{RoleID: role.ID, PermissionID: id, CreatedBy: actor.ID}
			if err := s.links.Create(ctx, &link); err != nil {
				return Role{}, err
			}
		}
		return *role, nil
	})
	if err != nil {
		return s.Roles.Failure(err, authz.ActionUpdate, in), nil
	}

	s.logger.Info("role permissions replaced",
		zap.String("role_id", in.RoleID),
		zap.Int("count", len(ids)),
		zap.String("actor_id", actor.ID),
	)
	res := result.OK("Role permissions updated successfully")
	res.Values = in
	return res, nil
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
