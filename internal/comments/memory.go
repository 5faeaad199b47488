package comments

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	t *store.Memory[models.Comment]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{t: store.NewMemory(
		func(c *models.Comment) *primitive.ObjectID { return &c.ID }, nil,
	)}
}

func (m *MemoryRepository) Create(_ context.Context, c *models.Comment) error {
	_, err := m.t.Insert(c)
	return err
}

func (m *MemoryRepository) List(_ context.Context) ([]models.Comment, error) {
	return m.t.List(), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	return m.t.Get(id)
}

func (m *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, c *models.Comment) (*models.Comment, error) {
	return m.t.Update(id, func(cur *models.Comment) {
		created := cur.CreatedAt
		*cur = *c
		cur.CreatedAt = created
	})
}

func (m *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.t.Delete(id)
}

func linkedTo(blogID primitive.ObjectID) func(*models.Comment) bool {
	return func(c *models.Comment) bool { return c.BlogID != nil && *c.BlogID == blogID }
}

func (m *MemoryRepository) RetitleByBlog(_ context.Context, blogID primitive.ObjectID, title string) (int64, error) {
	return m.t.UpdateWhere(linkedTo(blogID), func(c *models.Comment) { c.BlogTitle = title }), nil
}

func (m *MemoryRepository) DeleteByBlog(_ context.Context, blogID primitive.ObjectID) (int64, error) {
	return m.t.DeleteWhere(linkedTo(blogID)), nil
}

func (m *MemoryRepository) Len() int { return m.t.Len() }
