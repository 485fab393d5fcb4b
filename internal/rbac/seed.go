package rbac

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-pos/internal/authz"
	"go-pos/internal/store"
	"go-pos/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	SuperadminTitle = "Superadmin"
	seedActor       = "seed"
)

// Seeder provisions the permission catalogue and the first superadmin.
// Every run is idempotent.
type Seeder struct {
	tx     store.Transactor
	roles  store.Table[Role]
	perms  store.Table[Permission]
	users  store.Table[user.User]
	logger *zap.Logger
}

func NewSeeder(tx store.Transactor, roles store.Table[Role], perms store.Table[Permission], users store.Table[user.User]) *Seeder {
	return &Seeder{tx: tx, roles: roles, perms: perms, users: users, logger: zap.L().Named("rbac.seeder")}
}

// Catalogue expands resources into their CRUD codes followed by extra.
func Catalogue(resources []string, extra ...string) []string {
	codes := make([]string, 0, len(resources)*len(authz.Actions)+len(extra))
	for _, res := range resources {
		for _, action := range authz.Actions {
			codes = append(codes, authz.Code(res, action))
		}
	}
	return append(codes, extra...)
}

// Permissions inserts the codes that do not exist yet and reports how many
// were added.
func (s *Seeder) Permissions(ctx context.Context, codes []string) (int, error) {
	title := cases.Title(language.English)
	added := 0

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		for _, code := range codes {
			n, err := s.perms.Count(ctx, store.Filter{store.Eq("code", code)})
			if err != nil {
				return err
			}
			if n > 0 {
				continue
			}

			resource, action, _ := strings.Cut(code, ":")
			row := Permission{
				Code:        code,
				Description: fmt.Sprintf("%s %s", title.String(action), resource),
				CreatedBy:   seedActor,
				UpdatedBy:   seedActor,
			}
			if err := s.perms.Create(ctx, &row); err != nil {
				return err
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("permissions seeded", zap.Int("added", added), zap.Int("total", len(codes)))
	return added, nil
}

// Superadmin ensures the superadmin role exists and that email holds it. An
// existing account keeps its password.
func (s *Seeder) Superadmin(ctx context.Context, name, email, password string) (user.User, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return user.User{}, errors.New("superadmin email and password are required")
	}

	var out user.User
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		role, err := s.superadminRole(ctx)
		if err != nil {
			return err
		}

		existing, err := s.users.First(ctx, store.Filter{store.Eq("email", email)})
		switch {
		case err == nil:
			existing.RoleID = role.ID
			existing.Status = authz.StatusActive
			existing.IsDeleted = false
			existing.DeletedAt = nil
			existing.UpdatedBy = seedActor
			if err := s.users.Save(ctx, existing); err != nil {
				return err
			}
			out = *existing
			return nil
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		hash, err := user.HashPassword(password)
		if err != nil {
			return err
		}
		out = user.User{
			ID:           uuid.NewString(),
			RoleID:       role.ID,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Status:       authz.StatusActive,
			CreatedBy:    seedActor,
			UpdatedBy:    seedActor,
		}
		return s.users.Create(ctx, &out)
	})
	if err != nil {
		return user.User{}, err
	}

	s.logger.Info("superadmin ready", zap.String("email", out.Email), zap.String("user_id", out.ID))
	return out, nil
}

func (s *Seeder) superadminRole(ctx context.Context) (*Role, error) {
	role, err := s.roles.First(ctx, store.Filter{store.Eq("superadmin", true)})
	if err == nil {
		return role, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	role = &Role{
		ID:          uuid.NewString(),
		Title:       SuperadminTitle,
		Description: "Full access to every business",
		Superadmin:  true,
		CreatedBy:   seedActor,
		UpdatedBy:   seedActor,
	}
	if err := s.roles.Create(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}
