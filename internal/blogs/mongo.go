package blogs

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

// CollectionName is the mongo collection holding blogs.
const CollectionName = "blogs"

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	c *store.Collection[models.Blog]
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{c: store.NewCollection[models.Blog](col, nil)}
}

// EnsureIndexes creates the unique slug index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	return r.c.EnsureUniqueIndex(ctx, "slug")
}

func (r *MongoRepository) Create(ctx context.Context, b *models.Blog) error {
	id, err := r.c.Insert(ctx, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Blog, error) {
	return r.c.Find(ctx, bson.M{}, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	return r.c.FindByID(ctx, id)
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	return r.c.FindOne(ctx, bson.M{"slug": slug})
}

// Update replaces every body field and updatedAt; publishedAt is kept.
func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, b *models.Blog) (*models.Blog, error) {
	return r.c.SetByID(ctx, id, bson.M{
		"title":           b.Title,
		"content":         b.Content,
		"author":          b.Author,
		"category":        b.Category,
		"tags":            b.Tags,
		"image_Url":       b.ImageURL,
		"metaTitle":       b.MetaTitle,
		"metaDescription": b.MetaDescription,
		"slug":            b.Slug,
		"keywords":        b.Keywords,
		"canonicalUrl":    b.CanonicalURL,
		"updatedAt":       b.UpdatedAt,
	})
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.DeleteByID(ctx, id)
}
