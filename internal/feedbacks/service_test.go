package feedbacks

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

func input() models.FeedbackInput {
	return models.FeedbackInput{Name: "Bo", Phone: "123", Email: "bo@example.com", Subject: "Hi", Message: "Hello there"}
}

func TestFeedbackLifecycle(t *testing.T) {
	now := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepository()
	svc := NewService(repo).WithClock(func() time.Time { return now })
	ctx := context.Background()

	f, err := svc.Create(ctx, input())
	require.NoError(t, err)
	assert.Equal(t, "Hi", f.Subject)
	assert.Equal(t, now, f.CreatedAt)

	got, err := svc.Get(ctx, f.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)

	in := input()
	in.Subject = "Re: Hi"
	updated, err := svc.Update(ctx, f.ID.Hex(), in)
	require.NoError(t, err)
	assert.Equal(t, "Re: Hi", updated.Subject)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, f.ID.Hex()))
	_, err = svc.Get(ctx, f.ID.Hex())
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
}

func TestFeedbackValidation(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo)
	ctx := context.Background()

	in := input()
	in.Subject = " "
	_, err := svc.Create(ctx, in)
	require.Error(t, err)
	assert.Equal(t, "Name, phone, email, subject, and message are required", err.Error())

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), input())
	assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	assert.Equal(t, 0, repo.Len())
}

func TestMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("get", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "nexfolio.feedbacks", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "subject", Value: "Hi"},
		}))
		f, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Hi", f.Subject)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		assert.ErrorIs(t, repo.Delete(context.Background(), primitive.NewObjectID()), apperr.ErrNotFound)
	})
}
