package blogs

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

// Repository defines persistence operations for blogs. Lookups return
// apperr.ErrNotFound when nothing matches; writes that collide on slug
// return apperr.ErrDuplicateKey.
type Repository interface {
	Create(ctx context.Context, b *models.Blog) error
	List(ctx context.Context) ([]models.Blog, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error)
	GetBySlug(ctx context.Context, slug string) (*models.Blog, error)
	Update(ctx context.Context, id primitive.ObjectID, b *models.Blog) (*models.Blog, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
