package users

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/credentials"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

const (
	msgNotFound       = "User not found"
	msgEmailInUse     = "Email is already in use"
	msgBadCredentials = "Invalid email or password"
)

// Service encapsulates user-related business logic
type Service struct {
	repo UserRepository
	now  func() time.Time
}

func NewService(r UserRepository) *Service {
	return &Service{repo: r, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// Create registers a user. The returned record never carries the hash.
func (s *Service) Create(ctx context.Context, in models.UserInput) (*models.User, error) {
	if err := in.ValidateCreate(); err != nil {
		return nil, err
	}
	email := models.NormalizeEmail(in.Email)

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Validation(msgEmailInUse)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.timestamp()
	u := &models.User{Name: in.Name, Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, apperr.ErrDuplicateKey) {
			return nil, apperr.Validation(msgEmailInUse)
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.User, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, apperr.NotFound(msgNotFound)
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

// Update changes name and email, and re-hashes the password when one is given.
func (s *Service) Update(ctx context.Context, rawID string, in models.UserInput) (*models.User, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, apperr.NotFound(msgNotFound)
	}
	if err := in.ValidateUpdate(); err != nil {
		return nil, err
	}
	email := models.NormalizeEmail(in.Email)

	if other, err := s.repo.GetByEmail(ctx, email); err == nil && other.ID != id {
		return nil, apperr.Validation(msgEmailInUse)
	} else if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	next := &models.User{Name: in.Name, Email: email, UpdatedAt: s.timestamp()}
	if in.Password != "" {
		hash, err := credentials.HashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		next.PasswordHash = hash
	}

	u, err := s.repo.Update(ctx, id, next)
	if err != nil {
		if errors.Is(err, apperr.ErrDuplicateKey) {
			return nil, apperr.Validation(msgEmailInUse)
		}
		return nil, notFound(err)
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := store.ParseID(rawID)
	if err != nil {
		return apperr.NotFound(msgNotFound)
	}
	return notFound(s.repo.Delete(ctx, id))
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords produce the same Unauthorized error.
func (s *Service) Authenticate(ctx context.Context, in models.LoginInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := s.repo.GetCredentials(ctx, models.NormalizeEmail(in.Email))
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			credentials.BurnCompare(in.Password)
			return nil, apperr.Unauthorized(msgBadCredentials)
		}
		return nil, err
	}
	if !credentials.VerifyPassword(in.Password, u.PasswordHash) {
		return nil, apperr.Unauthorized(msgBadCredentials)
	}
	u.PasswordHash = ""
	return u, nil
}

func notFound(err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(msgNotFound)
	}
	return err
}
