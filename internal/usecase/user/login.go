package user

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/BruksfildServices01/crime-detection/internal/domain/user"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
	"github.com/BruksfildServices01/crime-detection/internal/models"
)

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

type LoginResult struct {
	User  *models.User
	Token string
}

type Login struct {
	repo   domain.Repository
	tokens TokenIssuer
}

func NewLogin(repo domain.Repository, tokens TokenIssuer) *Login {
	return &Login{
		repo:   repo,
		tokens: tokens,
	}
}

func (uc *Login) Execute(
	ctx context.Context,
	email string,
	password string,
) (*LoginResult, error) {

	u, err := uc.repo.FindByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	if !u.IsActive {
		return nil, httperr.ErrBusiness(httperr.CodeUserInactive)
	}

	token, err := uc.tokens.Issue(u)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: u, Token: token}, nil
}
