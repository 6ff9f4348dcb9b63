package orbitstore

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lhagemann/symred/pkg/observability"
	"github.com/lhagemann/symred/pkg/task"
)

// MongoStore persists one document per representative in a collection,
// keyed by the mapping and the batch identifier. Durable across experiment
// campaigns.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	batchID    string
}

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI        string // default "mongodb://localhost:27017"
	Database   string // default "symred"
	Collection string // default "orbits"
}

type mongoRecord struct {
	BatchID string `bson:"batch_id"`
	Key     string `bson:"key"`
	Index   int    `bson:"index"`
	Mapping []int  `bson:"mapping"`
}

// NewMongoStore connects to MongoDB and ensures the unique index on
// (batch_id, key).
func NewMongoStore(ctx context.Context, cfg MongoConfig, batchID string) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "symred"
	}
	if cfg.Collection == "" {
		cfg.Collection = "orbits"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	collection := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "batch_id", Value: 1}, {Key: "key", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo index: %w", err)
	}

	return &MongoStore{client: client, collection: collection, batchID: batchID}, nil
}

// Lookup implements Store.
func (s *MongoStore) Lookup(ctx context.Context, m task.Mapping) (int, bool, error) {
	var rec mongoRecord
	err := s.collection.FindOne(ctx, bson.M{"batch_id": s.batchID, "key": m.Key()}).Decode(&rec)
	if err == mongo.ErrNoDocuments {
		observability.Store().OnStoreMiss("mongo")
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	observability.Store().OnStoreHit("mongo")
	return rec.Index, true, nil
}

// Insert implements Store.
func (s *MongoStore) Insert(ctx context.Context, m task.Mapping) (int, bool, error) {
	if idx, ok, err := s.Lookup(ctx, m); err != nil || ok {
		return idx, false, err
	}

	count, err := s.collection.CountDocuments(ctx, bson.M{"batch_id": s.batchID})
	if err != nil {
		return 0, false, err
	}

	rec := mongoRecord{
		BatchID: s.batchID,
		Key:     m.Key(),
		Index:   int(count),
		Mapping: m.Clone(),
	}
	if _, err := s.collection.InsertOne(ctx, rec); err != nil {
		return 0, false, err
	}
	observability.Store().OnStoreInsert("mongo")
	return rec.Index, true, nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]Record, error) {
	cursor, err := s.collection.Find(ctx, bson.M{"batch_id": s.batchID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var res []Record
	for cursor.Next(ctx) {
		var rec mongoRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, err
		}
		res = append(res, Record{Index: rec.Index, Mapping: rec.Mapping})
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Index < res[j].Index })
	return res, nil
}

// Close implements Store.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
