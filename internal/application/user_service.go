package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-admin-panel/internal/domain/entity"
	repo "github.com/oksasatya/go-admin-panel/internal/domain/repository"
	"github.com/oksasatya/go-admin-panel/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSelfDelete is returned when a user tries to delete their own
	// authenticated account.
	ErrSelfDelete = errors.New("cannot delete own account")
)

type Service struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewService(r repo.UserRepository, logger *logrus.Logger) *Service {
	return &Service{Repo: r, Logger: logger}
}

func (s *Service) List(ctx context.Context) ([]entity.User, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("listing users failed")
		return nil, err
	}
	return users, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// Authenticate validates email/password against the stored bcrypt hash.
// Missing user and wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithError(err).WithField("email", email).Error("credential lookup failed")
		}
		return nil, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Create hashes the password and inserts a new user.
func (s *Service) Create(ctx context.Context, name, email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		s.Logger.WithError(err).Error("password hashing failed")
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, PasswordHash: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			s.Logger.WithFields(logrus.Fields{"name": name, "email": email}).Warn("attempt to create user with duplicate email")
		} else {
			s.Logger.WithError(err).WithField("email", email).Error("creating user failed")
		}
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "name": name}).Info("user created")
	return u, nil
}

// Update changes name and email; a non-empty password additionally replaces
// the stored hash in a separate statement.
func (s *Service) Update(ctx context.Context, id int64, name, email, password string) error {
	if err := s.Repo.Update(ctx, id, name, email); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			s.Logger.WithFields(logrus.Fields{"user_id": id, "email": email}).Warn("attempt to update user to duplicate email")
		} else {
			s.Logger.WithError(err).WithField("user_id", id).Error("updating user failed")
		}
		return err
	}
	if password != "" {
		hash, err := helpers.HashPassword(password)
		if err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Error("password hashing failed")
			return err
		}
		if err := s.Repo.UpdatePassword(ctx, id, hash); err != nil {
			s.Logger.WithError(err).WithField("user_id", id).Error("updating user password failed")
			return err
		}
	}
	s.Logger.WithFields(logrus.Fields{"user_id": id, "name": name}).Info("user updated")
	return nil
}

// Delete removes a user, refusing to delete the authenticated account itself.
func (s *Service) Delete(ctx context.Context, id, currentUserID int64) error {
	if id == currentUserID {
		s.Logger.WithField("user_id", id).Warn("self-deletion attempt denied")
		return ErrSelfDelete
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Logger.WithField("user_id", id).Warn("delete of missing user")
		} else {
			s.Logger.WithError(err).WithField("user_id", id).Error("deleting user failed")
		}
		return err
	}
	s.Logger.WithField("user_id", id).Info("user deleted")
	return nil
}
