package users

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/store"
)

const CollectionName = "users"

// UserRepository defines persistence operations for users. Every read except
// GetCredentials leaves PasswordHash empty.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetCredentials(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

var withoutPassword = bson.M{"password": 0}

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	c *store.Collection[models.User]
}

// NewMongoUserRepository creates a new repository for the given collection
func NewMongoUserRepository(col *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{c: store.NewCollection[models.User](col, withoutPassword)}
}

// EnsureIndexes creates the unique email index.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	return r.c.EnsureUniqueIndex(ctx, "email")
}

func (r *MongoUserRepository) Create(ctx context.Context, u *models.User) error {
	id, err := r.c.Insert(ctx, u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (r *MongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	return r.c.Find(ctx, bson.M{}, nil)
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.c.FindByID(ctx, id)
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.c.FindOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) GetCredentials(ctx context.Context, email string) (*models.User, error) {
	return r.c.FindOneUnprojected(ctx, bson.M{"email": email})
}

// Update sets name, email and updatedAt, and the password hash only when non-empty.
func (r *MongoUserRepository) Update(ctx context.Context, id primitive.ObjectID, u *models.User) (*models.User, error) {
	set := bson.M{"name": u.Name, "email": u.Email, "updatedAt": u.UpdatedAt}
	if u.PasswordHash != "" {
		set["password"] = u.PasswordHash
	}
	return r.c.SetByID(ctx, id, set)
}

func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return r.c.DeleteByID(ctx, id)
}
