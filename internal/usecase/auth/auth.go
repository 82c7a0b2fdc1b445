package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/andreyxaxa/Image-Gallery/internal/repo"
	"github.com/andreyxaxa/Image-Gallery/pkg/types/errs"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer is the part of the session manager the login flow needs.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

type AuthUseCase struct {
	userRepo repo.UserRepo
	sessions TokenIssuer
}

func New(userRepo repo.UserRepo, sessions TokenIssuer) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		sessions: sessions,
	}
}

// Login exchanges credentials for a session token. An unknown username and a
// wrong password are indistinguishable to the caller.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, errs.ErrRecordNotFound) {
			return "", fmt.Errorf("AuthUseCase - Login: %w", errs.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("AuthUseCase - Login - uc.userRepo.GetByUsername: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return "", fmt.Errorf("AuthUseCase - Login: %w", errs.ErrInvalidCredentials)
	}

	token, err := uc.sessions.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("AuthUseCase - Login - uc.sessions.Issue: %w", err)
	}

	return token, nil
}
