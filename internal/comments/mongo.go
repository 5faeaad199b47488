package comments

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

const CollectionName = "comments"

type MongoRepository struct {
	col *mongo.Collection
	c   *store.Collection[models.Comment]
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col, c: store.NewCollection[models.Comment](col, nil)}
}

// EnsureIndexes indexes blogId for the rename and cascade paths.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: "blogId", Value: 1}},
		Options: options.Index().SetName("blogId_1").SetSparse(true),
	}
	_, err := r.col.Indexes().CreateOne(ctx, idx)
	return err
}

func (r *MongoRepository) Create(ctx context.Context, c *models.Comment) error {
	id, err := r.c.Insert(ctx, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Comment, error) {
	return r.c.Find(ctx, bson.M{}, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return r.c.FindByID(ctx, id)
}

// Update replaces the body fields. A comment saved without a blog id loses
// any earlier link.
func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, c *models.Comment) (*models.Comment, error) {
	set := bson.M{
		"name":      c.Name,
		"blogTitle": c.BlogTitle,
		"phone":     c.Phone,
		"email":     c.Email,
		"message":   c.Message,
		"updatedAt": c.UpdatedAt,
	}
	if c.BlogID == nil {
		return r.c.SetByID(ctx, id, set, "blogId")
	}
	set["blogId"] = *c.BlogID
	return r.c.SetByID(ctx, id, set)
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.DeleteByID(ctx, id)
}

func (r *MongoRepository) RetitleByBlog(ctx context.Context, blogID primitive.ObjectID, title string) (int64, error) {
	return r.c.UpdateMany(ctx, bson.M{"blogId": blogID}, bson.M{"blogTitle": title})
}

func (r *MongoRepository) DeleteByBlog(ctx context.Context, blogID primitive.ObjectID) (int64, error) {
	return r.c.DeleteMany(ctx, bson.M{"blogId": blogID})
}
