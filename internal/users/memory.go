package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

// MemoryUserRepository is an in-memory UserRepository used by tests. It keeps
// hashes internally and strips them from reads like the mongo projection does.
type MemoryUserRepository struct {
	t *store.Memory[models.User]
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{t: store.NewMemory(
		func(u *models.User) *primitive.ObjectID { return &u.ID },
		func(a, b *models.User) bool { return a.Email == b.Email },
	)}
}

func strip(u *models.User, err error) (*models.User, error) {
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (m *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	_, err := m.t.Insert(u)
	return err
}

func (m *MemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	out := m.t.List()
	for i := range out {
		out[i].PasswordHash = ""
	}
	return out, nil
}

func (m *MemoryUserRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return strip(m.t.Get(id))
}

func (m *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return strip(m.t.First(func(u *models.User) bool { return u.Email == email }))
}

func (m *MemoryUserRepository) GetCredentials(_ context.Context, email string) (*models.User, error) {
	return m.t.First(func(u *models.User) bool { return u.Email == email })
}

func (m *MemoryUserRepository) Update(_ context.Context, id primitive.ObjectID, u *models.User) (*models.User, error) {
	return strip(m.t.Update(id, func(cur *models.User) {
		cur.Name = u.Name
		cur.Email = u.Email
		cur.UpdatedAt = u.UpdatedAt
		if u.PasswordHash != "" {
			cur.PasswordHash = u.PasswordHash
		}
	}))
}

func (m *MemoryUserRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	return m.t.Delete(id)
}

// StoredHash exposes the persisted hash, for tests.
func (m *MemoryUserRepository) StoredHash(id primitive.ObjectID) string {
	u, err := m.t.Get(id)
	if err != nil {
		return ""
	}
	return u.PasswordHash
}

func (m *MemoryUserRepository) Len() int { return m.t.Len() }
