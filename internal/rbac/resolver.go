package rbac

import (
	"context"
	"errors"

	"go-pos/internal/authz"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/store"
	"go-pos/internal/user"

	"go.uber.org/zap"
)

// Resolver turns a session email into an Actor with its permission set.
type Resolver struct {
	users  store.Table[user.User]
	roles  store.Table[Role]
	policy *Policy
	logger *zap.Logger
}

func NewResolver(users store.Table[user.User], roles store.Table[Role], policy *Policy) *Resolver {
	return &Resolver{
		users:  users,
		roles:  roles,
		policy: policy,
		logger: zap.L().Named("rbac.resolver"),
	}
}

func (r *Resolver) Resolve(ctx context.Context, email string) (authz.Actor, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return authz.Actor{}, apperror.ErrUnauthorized
	}

	u, err := r.users.First(ctx, store.Filter{
		store.Eq("email", email),
		store.Eq("is_deleted", false),
	})
	if errors.Is(err, store.ErrNotFound) {
		return authz.Actor{}, apperror.ErrUnauthorized
	}
	if err != nil {
		return authz.Actor{}, r.internal("load user", err)
	}
	if u.Status != user.StatusActive {
		return authz.Actor{}, apperror.ErrAccountDisabled
	}

	role, err := r.roles.First(ctx, store.Filter{store.Eq("id", u.RoleID)})
	if errors.Is(err, store.ErrNotFound) {
		r.logger.Warn("user has unknown role", zap.String("user_id", u.ID), zap.String("role_id", u.RoleID))
		return authz.Actor{}, apperror.ErrUnauthorized
	}
	if err != nil {
		return authz.Actor{}, r.internal("load role", err)
	}

	granted, err := r.policy.Codes(ctx, role.ID)
	if err != nil {
		return authz.Actor{}, r.internal("evaluate policy", err)
	}

	return authz.Actor{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		RoleID:      role.ID,
		RoleTitle:   role.Title,
		Status:      u.Status,
		Superadmin:  role.Superadmin,
		BusinessID:  u.BusinessID,
		BranchID:    u.BranchID,
		Permissions: authz.NewPermissionSet(granted...),
	}, nil
}

func (r *Resolver) internal(step string, err error) error {
	r.logger.Error("resolve actor failed", zap.String("step", step), zap.Error(err))
	return apperror.Internal(err)
}
