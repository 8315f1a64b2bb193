package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentCollection is the subset of a MongoDB collection used by MongoStore.
type DocumentCollection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (DocumentCursor, error)
	FindOne(ctx context.Context, filter interface{}) (bson.M, error)
	InsertOne(ctx context.Context, document interface{}) (interface{}, error)
}

// DocumentCursor defines the interface for cursor operations.
type DocumentCursor interface {
	All(ctx context.Context, out interface{}) error
	Close(ctx context.Context) error
}
