package comments

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

// Repository defines persistence operations for comments
type Repository interface {
	Create(ctx context.Context, c *models.Comment) error
	List(ctx context.Context) ([]models.Comment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	Update(ctx context.Context, id primitive.ObjectID, c *models.Comment) (*models.Comment, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	RetitleByBlog(ctx context.Context, blogID primitive.ObjectID, title string) (int64, error)
	DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) (int64, error)
}
