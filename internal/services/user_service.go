package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "finwatch/internal/errors"
	"finwatch/internal/logger"
	"finwatch/internal/models"
)

const defaultRole = "user"

// userService handles user-related business logic. Passwords are hashed with
// a server-side pepper concatenated to the plaintext before bcrypt.
type userService struct {
	db     *gorm.DB
	pepper string
}

// NewUserService creates a new UserServicer.
func NewUserService(db *gorm.DB, pepper string) UserServicer {
	return &userService{db: db, pepper: pepper}
}

// Register creates a new user with a peppered password hash and the default role.
func (s *userService) Register(username, email, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "username, email, and password are required")
	}

	var count int64
	s.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateUsername
	}
	s.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     defaultRole,
	}
	if err := s.db.Create(user).Error; err != nil {
		// The pre-checks race with concurrent registrations; the unique
		// constraints are the source of truth.
		if isUniqueConstraintError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, apperrors.ErrDuplicateEmail
			}
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return user, nil
}

// AttemptLogin verifies the credentials and returns the user on success.
// If the stored hash only matches without the pepper, the password is
// re-hashed with the pepper so older accounts converge on the peppered
// scheme without a forced reset.
func (s *userService) AttemptLogin(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", strings.ToLower(strings.TrimSpace(username))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	ok, rehashNeeded := s.verifyPassword(&user, password)
	if !ok {
		return nil, apperrors.ErrInvalidCredentials
	}

	if rehashNeeded {
		if hash, err := s.hashPassword(password); err == nil {
			if err := s.db.Model(&user).Update("password", hash).Error; err != nil {
				logger.Get().Warnw("password rehash failed", "user_id", user.ID, "error", err.Error())
			}
		}
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &user, nil
}

// hashPassword hashes password+pepper with bcrypt.
func (s *userService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password+s.pepper), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword checks the provided password against the stored hash.
// The peppered form is tried first; the un-peppered form is accepted as a
// backward-compatible fallback and flags that a rehash is needed.
func (s *userService) verifyPassword(user *models.User, password string) (ok, rehashNeeded bool) {
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password+s.pepper)) == nil {
		return true, false
	}
	if s.pepper != "" && bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil {
		return true, true
	}
	return false, false
}
