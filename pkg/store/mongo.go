package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	mongooptions "go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// DefaultGraphID names the single graph document a deployment uses.
const DefaultGraphID = "default"

// MongoStore keeps the graph as one document in a MongoDB collection,
// keyed by graph id. The graph body is stored as its canonical JSON so
// file exports and database contents stay byte-compatible.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	graphID    string
}

// MongoOptions configures the MongoDB connection.
type MongoOptions struct {
	URI        string // mongodb:// connection string
	Database   string // defaults to "screenflow"
	Collection string // defaults to "graphs"
	GraphID    string // defaults to DefaultGraphID
}

type mongoDoc struct {
	GraphID string `bson:"graph_id"`
	Payload []byte `bson:"payload"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "mongo URI cannot be empty")
	}
	if opts.Database == "" {
		opts.Database = "screenflow"
	}
	if opts.Collection == "" {
		opts.Collection = "graphs"
	}
	if opts.GraphID == "" {
		opts.GraphID = DefaultGraphID
	}

	client, err := mongo.Connect(ctx, mongooptions.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "connect to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStore, err, "ping mongo")
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(opts.Database).Collection(opts.Collection),
		graphID:    opts.GraphID,
	}, nil
}

// Load reads the graph document, or returns the seed graph when the
// deployment has never saved one.
func (s *MongoStore) Load(ctx context.Context) (*graph.Graph, error) {
	var doc mongoDoc
	err := s.collection.FindOne(ctx, bson.M{"graph_id": s.graphID}).Decode(&doc)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return graph.Seed(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "load graph %s", s.graphID)
	}

	g, err := graph.Unmarshal(doc.Payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "decode graph %s", s.graphID)
	}
	return g, nil
}

// Save upserts the complete graph document.
func (s *MongoStore) Save(ctx context.Context, g *graph.Graph) error {
	payload, err := graph.Marshal(g)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "serialize graph")
	}

	_, err = s.collection.UpdateOne(ctx,
		bson.M{"graph_id": s.graphID},
		bson.M{"$set": mongoDoc{GraphID: s.graphID, Payload: payload}},
		mongooptions.Update().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save graph %s", s.graphID)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
