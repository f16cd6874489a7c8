package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/user"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type SignupInput struct {
	Email     string
	Password  string
	Firstname string
	Lastname  string
	Phone     string
	Role      string
}

// DomainCheck reports whether the domain of an email can receive mail.
type DomainCheck func(ctx context.Context, email string) bool

type Signup struct {
	repo        domain.Repository
	domainCheck DomainCheck
	now         func() time.Time
}

// NewSignup builds the signup use case; a nil domainCheck skips the
// email domain lookup.
func NewSignup(repo domain.Repository, domainCheck DomainCheck) *Signup {
	return &Signup{
		repo:        repo,
		domainCheck: domainCheck,
		now:         time.Now,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (uc *Signup) Execute(
	ctx context.Context,
	in SignupInput,
) (*models.User, error) {

	email := NormalizeEmail(in.Email)

	if uc.domainCheck != nil && !uc.domainCheck(ctx, email) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidEmailDomain)
	}

	exists, err := uc.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, httperr.ErrBusiness(httperr.CodeUserAlreadyExists)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleUser
	}

	now := uc.now()
	u := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
		Firstname:    strings.TrimSpace(in.Firstname),
		Lastname:     strings.TrimSpace(in.Lastname),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// A concurrent signup can still hit the unique index; httperr maps
	// that to user_already_exists.
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
