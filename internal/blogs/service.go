package blogs

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/media"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
)

const (
	msgNotFound  = "Blog not found"
	msgDuplicate = "Slug must be unique, it is already in use"
)

// MediaRemover deletes a hosted image. A missing image must be reported
// with an error wrapping apperr.ErrNotFound.
type MediaRemover interface {
	Delete(ctx context.Context, folder, publicID string) error
}

// CommentLinker keeps comments linked by blog id in step with their blog.
type CommentLinker interface {
	RetitleByBlog(ctx context.Context, blogID primitive.ObjectID, title string) (int64, error)
	DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) (int64, error)
}

// Service encapsulates blog business logic
type Service struct {
	repo     Repository
	media    MediaRemover
	comments CommentLinker
	now      func() time.Time
}

type Option func(*Service)

// WithMedia enables image cleanup on delete.
func WithMedia(m MediaRemover) Option { return func(s *Service) { s.media = m } }

// WithComments enables rename and delete propagation to linked comments.
func WithComments(c CommentLinker) Option { return func(s *Service) { s.comments = c } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func NewService(r Repository, opts ...Option) *Service {
	s := &Service{repo: r, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func (s *Service) List(ctx context.Context) ([]models.Blog, error) {
	return s.repo.List(ctx)
}

// Get resolves a blog by id when the key is a valid ObjectID naming a blog,
// and by slug otherwise.
func (s *Service) Get(ctx context.Context, slugOrID string) (*models.Blog, error) {
	if store.IsID(slugOrID) {
		id, _ := store.ParseID(slugOrID)
		b, err := s.repo.GetByID(ctx, id)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
	}
	b, err := s.repo.GetBySlug(ctx, slugOrID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) Create(ctx context.Context, in models.BlogInput) (*models.Blog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Normalize()

	if _, err := s.repo.GetBySlug(ctx, in.Slug); err == nil {
		return nil, apperr.Validation(msgDuplicate)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	var b models.Blog
	if err := copier.Copy(&b, &in); err != nil {
		return nil, errors.Wrap(err, "copy blog input")
	}
	now := s.timestamp()
	b.PublishedAt = now
	b.UpdatedAt = now

	if err := s.repo.Create(ctx, &b); err != nil {
		if errors.Is(err, apperr.ErrDuplicateKey) {
			return nil, apperr.Validation(msgDuplicate)
		}
		return nil, err
	}
	return &b, nil
}

// Update replaces the body fields of the blog named by slugOrID.
func (s *Service) Update(ctx context.Context, slugOrID string, in models.BlogInput) (*models.Blog, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.Normalize()

	cur, err := s.Get(ctx, slugOrID)
	if err != nil {
		return nil, err
	}

	var next models.Blog
	if err := copier.Copy(&next, &in); err != nil {
		return nil, errors.Wrap(err, "copy blog input")
	}
	next.ID = cur.ID
	next.PublishedAt = cur.PublishedAt
	next.UpdatedAt = s.timestamp()

	updated, err := s.repo.Update(ctx, cur.ID, &next)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrDuplicateKey):
			return nil, apperr.Validation(msgDuplicate)
		case errors.Is(err, apperr.ErrNotFound):
			return nil, apperr.NotFound(msgNotFound)
		}
		return nil, err
	}

	if s.comments != nil && updated.Title != cur.Title {
		n, err := s.comments.RetitleByBlog(ctx, updated.ID, updated.Title)
		if err != nil {
			logger.Warnf("blog %s renamed but linked comments were not retitled: %v", updated.ID.Hex(), err)
		} else if n > 0 {
			logger.Debugf("retitled %d comments for blog %s", n, updated.ID.Hex())
		}
	}
	return updated, nil
}

// Delete removes the blog after deleting its hosted image. A missing image
// does not block the delete; any other image failure aborts it so the
// reference is not lost.
func (s *Service) Delete(ctx context.Context, slugOrID string) error {
	b, err := s.Get(ctx, slugOrID)
	if err != nil {
		return err
	}

	if err := s.removeImage(ctx, b); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.NotFound(msgNotFound)
		}
		return err
	}

	if s.comments != nil {
		n, err := s.comments.DeleteByBlog(ctx, b.ID)
		if err != nil {
			logger.Warnf("blog %s deleted but linked comments remain: %v", b.ID.Hex(), err)
		} else if n > 0 {
			logger.Infof("deleted %d comments linked to blog %s", n, b.ID.Hex())
		}
	}
	return nil
}

func (s *Service) removeImage(ctx context.Context, b *models.Blog) error {
	if b.ImageURL == "" {
		return nil
	}
	if s.media == nil {
		logger.Warnf("blog %s has image %q but no image host is configured; skipping cleanup", b.ID.Hex(), b.ImageURL)
		return nil
	}
	folder, publicID, err := media.ParseReference(b.ImageURL)
	if err != nil {
		logger.Warnf("blog %s: cannot derive image reference: %v", b.ID.Hex(), err)
		return nil
	}
	if err := s.media.Delete(ctx, folder, publicID); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			logger.Infof("blog %s: image %s/%s already gone", b.ID.Hex(), folder, publicID)
			return nil
		}
		return errors.Wrapf(err, "delete image of blog %s", b.ID.Hex())
	}
	return nil
}
