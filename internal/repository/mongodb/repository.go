package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/ojmarte/construction-api/internal/repository"
)

// MongoDBRepository implements repository.Database on top of a MongoDB database.
type MongoDBRepository struct {
	client *mongo.Client
	db     *mongo.Database
	logger *zap.Logger
}

// NewMongoDBRepository connects to uri and verifies the connection with a ping.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string, timeout time.Duration, logger *zap.Logger) (*MongoDBRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	if timeout > 0 {
		clientOptions.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	logger.Info("connected to mongodb", zap.String("database", dbName))

	return &MongoDBRepository{
		client: client,
		db:     client.Database(dbName),
		logger: logger,
	}, nil
}

// Collection returns the named collection as a repository.Collection.
func (r *MongoDBRepository) Collection(name string) repository.Collection {
	return &collection{coll: r.db.Collection(name)}
}

// Ping checks that the primary is reachable.
func (r *MongoDBRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Drop removes the whole database. Used by integration tests.
func (r *MongoDBRepository) Drop(ctx context.Context) error {
	return r.db.Drop(ctx)
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

type collection struct {
	coll *mongo.Collection
}

func (c *collection) InsertOne(ctx context.Context, doc bson.M) (bson.Raw, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document: %w", err)
	}
	return c.findOne(ctx, bson.M{"_id": res.InsertedID})
}

func (c *collection) FindByID(ctx context.Context, id primitive.ObjectID) (bson.Raw, error) {
	return c.findOne(ctx, bson.M{"_id": id})
}

func (c *collection) Find(ctx context.Context, filter bson.M) ([]bson.Raw, error) {
	cursor, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", c.coll.Name(), err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	out := make([]bson.Raw, 0)
	for cursor.Next(ctx) {
		doc := make(bson.Raw, len(cursor.Current))
		copy(doc, cursor.Current)
		out = append(out, doc)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", c.coll.Name(), err)
	}
	return out, nil
}

func (c *collection) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (bson.Raw, error) {
	return c.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (c *collection) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	if _, err := c.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (c *collection) PushByID(ctx context.Context, id primitive.ObjectID, field string, value any) (bson.Raw, error) {
	return c.findOneAndUpdate(ctx, id, bson.M{"$push": bson.M{field: value}})
}

func (c *collection) findOne(ctx context.Context, filter bson.M) (bson.Raw, error) {
	raw, err := c.coll.FindOne(ctx, filter).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find document in %s: %w", c.coll.Name(), err)
	}
	return raw, nil
}

func (c *collection) findOneAndUpdate(ctx context.Context, id primitive.ObjectID, update bson.M) (bson.Raw, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	raw, err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update document in %s: %w", c.coll.Name(), err)
	}
	return raw, nil
}
