package comments

import (
	"context"
	"strings"
	"time"

	errors "github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

const msgNotFound = "Comment not found"

// BlogLookup resolves the blog a comment links to.
type BlogLookup interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
}

// Service encapsulates comment business logic
type Service struct {
	repo  Repository
	blogs BlogLookup
	now   func() time.Time
}

func NewService(r Repository, blogs BlogLookup) *Service {
	return &Service{repo: r, blogs: blogs, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// build validates in and resolves the optional blog link into a record.
func (s *Service) build(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	var blogID *primitive.ObjectID
	if raw := strings.TrimSpace(in.BlogID); raw != "" {
		id, err := store.ParseID(raw)
		if err != nil {
			return nil, apperr.Validation("Referenced blog does not exist")
		}
		if s.blogs == nil {
			return nil, errors.New("blog lookup not configured")
		}
		b, err := s.blogs.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validation("Referenced blog does not exist")
			}
			return nil, err
		}
		if strings.TrimSpace(in.BlogTitle) == "" {
			in.BlogTitle = b.Title
		}
		blogID = &b.ID
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &models.Comment{
		Name:      in.Name,
		BlogID:    blogID,
		BlogTitle: in.BlogTitle,
		Phone:     in.Phone,
		Email:     in.Email,
		Message:   in.Message,
	}, nil
}

func (s *Service) Create(ctx context.Context, in models.CommentInput) (*models.Comment, error) {
	c, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	now := s.timestamp()
	c.CreatedAt = now
	c.UpdatedAt = now
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) List(ctx context.Context) ([]models.Comment, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, rawID string) (*models.Comment, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, apperr.NotFound(msgNotFound)
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, rawID string, in models.CommentInput) (*models.Comment, error) {
	id, err := store.ParseID(rawID)
	if err != nil {
		return nil, apperr.NotFound(msgNotFound)
	}
	c, err := s.build(ctx, in)
	if err != nil {
		return nil, err
	}
	c.UpdatedAt = s.timestamp()
	updated, err := s.repo.Update(ctx, id, c)
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
