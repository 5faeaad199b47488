package feedbacks

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/jinzhu/copier"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

const msgNotFound = "Feedback not found"

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(r Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) record(in models.FeedbackInput) (*models.Feedback, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var f models.Feedback
	if err := copier.Copy(&f, &in); err != nil {
		return nil, errors.Wrap(err, "copy feedback input")
	}
	return &f, nil
}

func (s *Service) Create(ctx context.Context, in models.FeedbackInput) (*models.Feedback, error) {
	f, err := s.record(in)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	f.CreatedAt = now
	f.UpdatedAt = now
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) List(ctx context.Context) ([]models.Feedback, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.Feedback, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, apperr.NotFound(msgNotFound)
	}
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return f, nil
}

func (s *Service) Update(ctx context.Context, rawID string, in models.FeedbackInput) (*models.Feedback, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, apperr.NotFound(msgNotFound)
	}
	f, err := s.record(in)
	if err != nil {
		return nil, err
	}
	f.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	updated, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, notFound(err)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := store.ParseID(rawID)
	if err != nil {
		return apperr.NotFound(msgNotFound)
	}
	return notFound(s.repo.Delete(ctx, id))
}

func notFound(err error) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(msgNotFound)
	}
	return err
}
