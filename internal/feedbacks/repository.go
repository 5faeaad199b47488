package feedbacks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

const CollectionName = "feedbacks"

// Repository defines persistence operations for feedback records
type Repository interface {
	Create(ctx context.Context, f *models.Feedback) error
	List(ctx context.Context) ([]models.Feedback, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error)
	Update(ctx context.Context, id primitive.ObjectID, f *models.Feedback) (*models.Feedback, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	c *store.Collection[models.Feedback]
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{c: store.NewCollection[models.Feedback](col, nil)}
}

func (r *MongoRepository) Create(ctx context.Context, f *models.Feedback) error {
	id, err := r.c.Insert(ctx, f)
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.Feedback, error) {
	return r.c.Find(ctx, bson.M{}, nil)
}

func (r *MongoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	return r.c.FindByID(ctx, id)
}

func (r *MongoRepository) Update(ctx context.Context, id primitive.ObjectID, f *models.Feedback) (*models.Feedback, error) {
	return r.c.SetByID(ctx, id, bson.M{
		"name":      f.Name,
		"phone":     f.Phone,
		"email":     f.Email,
		"subject":   f.Subject,
		"message":   f.Message,
		"updatedAt": f.UpdatedAt,
	})
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.DeleteByID(ctx, id)
}

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	t *store.Memory[models.Feedback]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{t: store.NewMemory(
		func(f *models.Feedback) *primitive.ObjectID { return &f.ID }, nil,
	)}
}

func (m *MemoryRepository) Create(_ context.Context, f *models.Feedback) error {
	_, err := m.t.Insert(f)
	return err
}

func (m *MemoryRepository) List(_ context.Context) ([]models.Feedback, error) {
	return m.t.List(), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Feedback, error) {
	return m.t.Get(id)
}

func (m *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, f *models.Feedback) (*models.Feedback, error) {
	return m.t.Update(id, func(cur *models.Feedback) {
		created := cur.CreatedAt
		*cur = *f
		cur.CreatedAt = created
	})
}

func (m *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.t.Delete(id)
}

func (m *MemoryRepository) Len() int { return m.t.Len() }
