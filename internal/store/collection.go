package store

import (
	"context"
	"errors"
	"time"

	"github.com/Harsh-kumar-git/ManageMate/pkg/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is a typed repository over one MongoDB collection. The
// resource name feeds user-facing NotFound messages.
type Collection[T any] struct {
	store    *Store
	coll     *mongo.Collection
	name     string
	resource string
}

func newCollection[T any](s *Store, name, resource string) *Collection[T] {
	return &Collection[T]{
		store:    s,
		coll:     s.db.Collection(name),
		name:     name,
		resource: resource,
	}
}

// ParseID converts a hex document id, failing with a Validation error
// that names the offending value.
func (c *Collection[T]) ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperr.Newf(apperr.KindValidation, "Invalid _id: %s", id)
	}
	return oid, nil
}

// List returns all documents matching filter, newest first.
func (c *Collection[T]) List(ctx context.Context, filter bson.M) ([]T, error) {
	if filter == nil {
		filter = bson.M{}
	}

	docs := []T{}
	err := c.store.run(ctx, c.name, "list", func(ctx context.Context) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cursor, err := c.coll.Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		return cursor.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Get returns one document by hex id.
func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	oid, err := c.ParseID(id)
	if err != nil {
		return nil, err
	}
	return c.GetOne(ctx, bson.M{"_id": oid})
}

// GetOne returns the first document matching filter.
func (c *Collection[T]) GetOne(ctx context.Context, filter bson.M) (*T, error) {
	var doc T
	err := c.store.run(ctx, c.name, "get", func(ctx context.Context) error {
		return c.coll.FindOne(ctx, filter).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(c.resource)
		}
		return nil, err
	}
	return &doc, nil
}

// Insert stores a new document. Unique index violations surface as
// duplicate key errors for the error handler to translate.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) error {
	return c.store.run(ctx, c.name, "insert", func(ctx context.Context) error {
		_, err := c.coll.InsertOne(ctx, doc)
		return err
	})
}

// Update applies a partial $set update and returns the new document.
func (c *Collection[T]) Update(ctx context.Context, id string, set bson.M) (*T, error) {
	oid, err := c.ParseID(id)
	if err != nil {
		return nil, err
	}
	return c.UpdateOne(ctx, bson.M{"_id": oid}, set)
}

// UpdateOne applies a partial $set update to the first match.
func (c *Collection[T]) UpdateOne(ctx context.Context, filter bson.M, set bson.M) (*T, error) {
	set["updated_at"] = time.Now()

	var doc T
	err := c.store.run(ctx, c.name, "update", func(ctx context.Context) error {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		return c.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperr.NotFound(c.resource)
		}
		return nil, err
	}
	return &doc, nil
}

// Delete removes one document by hex id.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	oid, err := c.ParseID(id)
	if err != nil {
		return err
	}
	return c.DeleteOne(ctx, bson.M{"_id": oid})
}

// DeleteOne removes the first document matching filter.
func (c *Collection[T]) DeleteOne(ctx context.Context, filter bson.M) error {
	err := c.store.run(ctx, c.name, "delete", func(ctx context.Context) error {
		result, err := c.coll.DeleteOne(ctx, filter)
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return apperr.NotFound(c.resource)
		}
		return nil
	})
	return err
}
