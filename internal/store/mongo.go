package store

import (
	"context"

	errors "github.com/Laisky/errors/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
)

// Collection is a typed wrapper around a mongo collection that maps driver
// errors onto apperr sentinels.
type Collection[T any] struct {
	col        *mongo.Collection
	projection bson.M
}

// NewCollection wraps col. A non-nil projection is applied to every read.
func NewCollection[T any](col *mongo.Collection, projection bson.M) *Collection[T] {
	return &Collection[T]{col: col, projection: projection}
}

// EnsureUniqueIndex creates a unique ascending index on field.
func (c *Collection[T]) EnsureUniqueIndex(ctx context.Context, field string) error {
	idx := mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true).SetName(field + "_unique"),
	}
	if _, err := c.col.Indexes().CreateOne(ctx, idx); err != nil {
		return errors.Wrapf(err, "create unique index %s.%s", c.col.Name(), field)
	}
	return nil
}

// Insert stores doc and returns the server-assigned id.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) (primitive.ObjectID, error) {
	res, err := c.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, apperr.ErrDuplicateKey
		}
		return primitive.NilObjectID, errors.Wrapf(err, "insert into %s", c.col.Name())
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

// FindOne returns the first document matching filter.
func (c *Collection[T]) FindOne(ctx context.Context, filter interface{}) (*T, error) {
	opts := options.FindOne()
	if c.projection != nil {
		opts.SetProjection(c.projection)
	}
	var out T
	if err := c.col.FindOne(ctx, filter, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find in %s", c.col.Name())
	}
	return &out, nil
}

// FindOneUnprojected ignores the configured projection. Only credential checks use it.
func (c *Collection[T]) FindOneUnprojected(ctx context.Context, filter interface{}) (*T, error) {
	var out T
	if err := c.col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find in %s", c.col.Name())
	}
	return &out, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

// Find returns every matching document, sorted by sort when non-nil.
func (c *Collection[T]) Find(ctx context.Context, filter interface{}, sort bson.D) ([]T, error) {
	opts := options.Find()
	if c.projection != nil {
		opts.SetProjection(c.projection)
	}
	if sort != nil {
		opts.SetSort(sort)
	}
	cur, err := c.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "find in %s", c.col.Name())
	}
	defer cur.Close(ctx)

	out := []T{}
	for cur.Next(ctx) {
		var d T
		if err := cur.Decode(&d); err != nil {
			return nil, errors.Wrapf(err, "decode %s", c.col.Name())
		}
		out = append(out, d)
	}
	if err := cur.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s", c.col.Name())
	}
	return out, nil
}

// SetByID applies $set to one document, removes the unset fields, and returns
// the document after the update.
func (c *Collection[T]) SetByID(ctx context.Context, id primitive.ObjectID, set bson.M, unset ...string) (*T, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if c.projection != nil {
		opts.SetProjection(c.projection)
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		fields := bson.M{}
		for _, f := range unset {
			fields[f] = ""
		}
		update["$unset"] = fields
	}
	var out T
	err := c.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&out)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, apperr.ErrNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, apperr.ErrDuplicateKey
		}
		return nil, errors.Wrapf(err, "update %s", c.col.Name())
	}
	return &out, nil
}

// UpdateMany applies $set to every matching document and returns the modified count.
func (c *Collection[T]) UpdateMany(ctx context.Context, filter interface{}, set bson.M) (int64, error) {
	res, err := c.col.UpdateMany(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return 0, errors.Wrapf(err, "update many in %s", c.col.Name())
	}
	return res.ModifiedCount, nil
}

func (c *Collection[T]) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrapf(err, "delete from %s", c.col.Name())
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeleteMany(ctx context.Context, filter interface{}) (int64, error) {
	res, err := c.col.DeleteMany(ctx, filter)
	if err != nil {
		return 0, errors.Wrapf(err, "delete many from %s", c.col.Name())
	}
	return res.DeletedCount, nil
}
