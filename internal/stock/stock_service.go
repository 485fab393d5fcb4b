package stock

import (
	"context"
	"errors"

	"go-pos/internal/authz"
	"go-pos/internal/crud"
	"go-pos/internal/events"
	"go-pos/internal/shared/apperror"
	"go-pos/internal/shared/result"
	"go-pos/internal/shared/validation"
	"go-pos/internal/store"
	"go-pos/internal/tenant"

	"go.uber.org/zap"
)

// Service adds restocking on top of the generic repository.
type Service struct {
	*Repository
	refs      References
	validator *validation.Validator
	logger    *zap.Logger
}

func NewService(table store.Table[Stock], refs References, deps crud.Deps) *Service {
	if deps.Validator == nil {
		deps.Validator = validation.New()
	}
	return &Service{
		Repository: NewRepository(table, refs, deps),
		refs:       refs,
		validator:  deps.Validator,
		logger:     zap.L().Named("stock.service"),
	}
}

func (s *Service) Restock(ctx context.Context, actor authz.Actor, in RestockRequest) (result.Result, error) {
	if err := authz.Require(actor, authz.Code(Resource, authz.ActionUpdate)); err != nil {
		return result.Result{}, err
	}

	in.DefaultTenant(actor.Scope())
	in.UpdatedBy = actor.ID
	if errs := s.validator.Struct(in); errs != nil {
		return result.Invalid(errs, in), nil
	}
	if !tenant.Owns(actor.Scope(), tenant.Branch, in.BusinessID, in.BranchID) {
		return result.Result{}, apperror.ErrForbidden
	}

	saved, err := s.Mutate(ctx, actor, events.ActionUpdated, func(ctx context.Context) (Stock, error) {
		if err := s.refs.check(ctx, in.BusinessID, in.BranchID, in.ProductID); err != nil {
			return Stock{}, err
		}
		table := s.Table()
		row, err := table.First(ctx, store.Filter{
			store.Eq("business_id", in.BusinessID),
			store.Eq("branch_id", in.BranchID),
			store.Eq("product_id", in.ProductID),
		})
		switch {
		case errors.Is(err, store.ErrNotFound):
			row = &Stock{
				BusinessID: in.BusinessID,
				BranchID:   in.BranchID,
				ProductID:  in.ProductID,
				Quantity:   in.Quantity,
				CreatedBy:  actor.ID,
			}
			err = table.Create(ctx, row)
		case err == nil:
			row.Quantity += in.Quantity
			row.UpdatedBy = actor.ID
			err = table.Save(ctx, row)
		}
		if err != nil {
			return Stock{}, err
		}
		return *row, nil
	})
	if errors.Is(err, store.ErrReference) {
		s.logger.Warn("restock of unknown product", zap.Int("product_id", in.ProductID))
		return result.Invalid(result.FieldErrors{"productId": {"Product not found"}}, in), nil
	}
	if err != nil {
		return s.Failure(err, authz.ActionUpdate, in), nil
	}

	res := result.OK("Stock updated successfully")
	res.Values = saved
	return res, nil
}
