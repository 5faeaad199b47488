package blogs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/internal/models"
)

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "nexfolio.blogs"

	mt.Run("create duplicate slug", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error collection: nexfolio.blogs index: slug_unique"}))
		err := repo.Create(context.Background(), &models.Blog{Slug: "a-b"})
		assert.ErrorIs(t, err, apperr.ErrDuplicateKey)
	})

	mt.Run("create sets id", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		b := &models.Blog{Title: "A", Slug: "a-b", Tags: []string{}, Keywords: []string{}}
		require.NoError(t, repo.Create(context.Background(), b))
		assert.False(t, b.ID.IsZero())
	})

	mt.Run("get by slug", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		published := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "title", Value: "A"},
			{Key: "slug", Value: "a-b"},
			{Key: "image_Url", Value: "http://cdn.test/media/uploads/x.jpg"},
			{Key: "tags", Value: bson.A{"go"}},
			{Key: "publishedAt", Value: published},
		}))
		b, err := repo.GetBySlug(context.Background(), "a-b")
		require.NoError(t, err)
		assert.Equal(t, id, b.ID)
		assert.Equal(t, "http://cdn.test/media/uploads/x.jpg", b.ImageURL)
		assert.Equal(t, []string{"go"}, b.Tags)
		assert.True(t, published.Equal(b.PublishedAt))
	})

	mt.Run("update missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		_, err := repo.Update(context.Background(), primitive.NewObjectID(), &models.Blog{Slug: "x"})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(t, repo.EnsureIndexes(context.Background()))
	})
}
