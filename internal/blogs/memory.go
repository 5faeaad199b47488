package blogs

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

// MemoryRepository is an in-memory Repository used by tests.
type MemoryRepository struct {
	t *store.Memory[models.Blog]
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{t: store.NewMemory(
		func(b *models.Blog) *primitive.ObjectID { return &b.ID },
		func(a, b *models.Blog) bool { return a.Slug == b.Slug },
	)}
}

func (m *MemoryRepository) Create(_ context.Context, b *models.Blog) error {
	_, err := m.t.Insert(b)
	return err
}

func (m *MemoryRepository) List(_ context.Context) ([]models.Blog, error) {
	return m.t.List(), nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Blog, error) {
	return m.t.Get(id)
}

func (m *MemoryRepository) GetBySlug(_ context.Context, slug string) (*models.Blog, error) {
	return m.t.First(func(b *models.Blog) bool { return b.Slug == slug })
}

func (m *MemoryRepository) Update(_ context.Context, id primitive.ObjectID, b *models.Blog) (*models.Blog, error) {
	return m.t.Update(id, func(cur *models.Blog) {
		published := cur.PublishedAt
		*cur = *b
		cur.PublishedAt = published
	})
}

func (m *MemoryRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.t.Delete(id)
}

func (m *MemoryRepository) Len() int { return m.t.Len() }
