package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hostelmess/hostelmess/app/models"
	"github.com/hostelmess/hostelmess/app/repositories"
	"github.com/hostelmess/hostelmess/pkg/auth"
)

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repositories.NewUserRepository(db)}
}

// Login checks the email/password pair and returns a signed session
// token plus the account. Wrong email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Me returns the account for an authenticated user id.
func (s *AuthService) Me(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	return user, err
}
