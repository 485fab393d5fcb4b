package user

import (
	"context"

	"go-pos/internal/authz"
	"go-pos/internal/crud"
	"go-pos/internal/events"
	"go-pos/internal/shared/result"
	"go-pos/internal/shared/validation"
	"go-pos/internal/store"

	"go.uber.org/zap"
)

// Service adds account operations on top of the generic repository.
type Service struct {
	*Repository
	validator *validation.Validator
	logger    *zap.Logger
}

func NewService(table store.Table[User], refs References, deps crud.Deps) *Service {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	return &Service{
		Repository: NewRepository(table, refs, deps),
		validator:  deps.Validator,
		logger:     zap.L().Named("user.service"),
	}
}

// ChangePassword replaces a user's password. Users may always change their
// own after proving the current one; changing someone else's needs
// user:update.
func (s *Service) ChangePassword(ctx context.Context, actor authz.Actor, in ChangePasswordRequest) (result.Result, error) {
	self := in.ID == actor.ID
	if !self {
		if err := authz.Require(actor, authz.Code(Resource, authz.ActionUpdate)); err != nil {
			return result.Result{}, err
		}
	}

	// never echo passwords back
	values := map[string]string{"id": in.ID}
	if errs := s.validator.Struct(in); errs != nil {
		return result.Invalid(errs, values), nil
	}

	_, err := s.Mutate(ctx, actor, events.ActionUpdated, func(ctx context.Context) (User, error) {
		u, err := s.Live(ctx, actor, in.ID)
		if err != nil {
			return User{}, err
		}
		if self && !CheckPassword(u.PasswordHash, in.CurrentPassword) {
			return User{}, crud.NewFieldError("currentPassword", "Current password is incorrect")
		}

		hash, err := HashPassword(in.NewPassword)
		if err != nil {
			return User{}, err
		}
		u.PasswordHash = hash
		u.UpdatedBy = actor.ID
		return *u, s.Table().Save(ctx, u)
	})
	if err != nil {
		return s.Failure(err, authz.ActionUpdate, values), nil
	}

	s.logger.Info("password changed", zap.String("user_id", in.ID), zap.String("actor_id", actor.ID))
	return result.OK("Password changed successfully"), nil
}

// ToggleStatus flips a user between active and disabled. Disabled users
// fail actor resolution on their next request.
func (s *Service) ToggleStatus(ctx context.Context, actor authz.Actor, id string) (result.Result, error) {
	if err := authz.Require(actor, authz.Code(Resource, authz.ActionUpdate)); err != nil {
		return result.Result{}, err
	}

	values := map[string]string{"id": id}
	if id == actor.ID {
		return result.Invalid(result.FieldErrors{"id": {"You cannot change the status of your own account"}}, values), nil
	}

	saved, err := s.Mutate(ctx, actor, events.ActionUpdated, func(ctx context.Context) (User, error) {
		u, err := s.Live(ctx, actor, id)
		if err != nil {
			return User{}, err
		}
		if u.Status == StatusActive {
			u.Status = StatusDisabled
		} else {
			u.Status = StatusActive
		}
		u.UpdatedBy = actor.ID
		return *u, s.Table().Save(ctx, u)
	})
	if err != nil {
		return s.Failure(err, authz.ActionUpdate, values), nil
	}

	res := result.OK("User " + saved.Status)
	res.Values = saved
	return res, nil
}
