package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"crewpay/internal/config"
	"crewpay/internal/model"
	"crewpay/internal/repository"
	"crewpay/pkg/util"
)

// UserService handles account business logic
type UserService struct {
	repo repository.IUserRepository
	cfg  *config.Config
}

// NewUserService creates a new user service
func NewUserService(cfg *config.Config, repo repository.IUserRepository) *UserService {
	return &UserService{repo: repo, cfg: cfg}
}

// Register creates an account from a self-registration request. The email is
// lower-cased and must be unique; the first writer wins. Registering the
// bootstrap admin address yields a verified Admin account.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	salary, _ := util.CoerceInt(req.Salary)

	user := &model.User{
		Email:       email,
		Name:        strings.TrimSpace(req.Name),
		Role:        model.RoleEmployee,
		Designation: req.Designation,
		Salary:      salary,
		BankAccount: req.BankAccount,
		Photo:       req.Photo,
		Status:      model.StatusActive,
	}
	if email == strings.ToLower(s.cfg.BootstrapAdminEmail) {
		user.Role = model.RoleAdmin
		user.Designation = "Admin"
		user.IsVerified = true
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// The unique email index catches the race the pre-check misses.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return created, nil
}

// GetByEmail returns the account for a verified principal, nil when none
// exists.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, strings.ToLower(email))
}

// GetByID returns an account by its hex id, nil when none exists.
func (s *UserService) GetByID(ctx context.Context, idHex string) (*model.User, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ListEmployees returns all Employee-role accounts.
func (s *UserService) ListEmployees(ctx context.Context) ([]*model.User, error) {
	return s.repo.FindByRole(ctx, model.RoleEmployee)
}

// ListAccounts returns all non-Admin accounts, optionally only verified ones.
func (s *UserService) ListAccounts(ctx context.Context, verifiedOnly bool) ([]*model.User, error) {
	return s.repo.FindNonAdmin(ctx, verifiedOnly)
}

// ToggleVerification flips isVerified from its current value. A missing id is
// a zero-match no-op.
func (s *UserService) ToggleVerification(ctx context.Context, idHex string) (int64, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return 0, err
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, nil
	}
	return s.repo.UpdateFields(ctx, id, bson.M{"isVerified": !user.IsVerified})
}

// MakeHR promotes an account to the HR role.
func (s *UserService) MakeHR(ctx context.Context, idHex string) (int64, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateFields(ctx, id, bson.M{"role": model.RoleHR})
}

// Fire marks an account fired. The role is set to HR at the same time,
// whatever it was before; the product ships with this coupling and it is
// kept as-is pending confirmation.
func (s *UserService) Fire(ctx context.Context, idHex string) (int64, error) {
	id, err := util.ParseObjectID(idHex)
	if err != nil {
		return 0, err
	}
	return s.repo.UpdateFields(ctx, id, bson.M{
		"status": model.StatusFired,
		"role":   model.RoleHR,
	})
}

// LoginCheck returns the account for the address, nil when none exists. The
// fired check is evaluated fresh on every call; there is no revocation cache.
func (s *UserService) LoginCheck(ctx context.Context, email string) (*model.User, error) {
	return s.repo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
}
