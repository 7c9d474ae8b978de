package sink

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/errors"
)

// DefaultChunkSize is the number of documents per InsertMany call.
const DefaultChunkSize = 1000

// Document is the stored form of one missing row.
type Document struct {
	RunID     string    `bson:"run_id"`
	MaxNumber int       `bson:"max_number"`
	RowLength int       `bson:"row_length"`
	Index     int       `bson:"index"`
	Key       string    `bson:"key"`
	Numbers   []int     `bson:"numbers"`
	CreatedAt time.Time `bson:"created_at"`
}

// inserter is the subset of *mongo.Collection used by MongoSink.
type inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoConfig configures a MongoSink.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string

	// ChunkSize caps documents per insert; 0 selects DefaultChunkSize.
	ChunkSize int
}

// MongoSink inserts one document per row into a collection.
type MongoSink struct {
	coll      inserter
	client    *mongo.Client
	chunkSize int
	now       func() time.Time

	// offsets tracks the next row index per run, so several batches of the
	// same run get consecutive indexes.
	offsets map[string]int
}

// NewMongoSink connects to the server at cfg.URI.
func NewMongoSink(ctx context.Context, cfg MongoConfig) (*MongoSink, error) {
	if err := errors.ValidateURL(cfg.URI, "mongodb://", "mongodb+srv://"); err != nil {
		return nil, err
	}
	if err := errors.ValidateCollectionName(cfg.Database); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	if err := errors.ValidateCollectionName(cfg.Collection); err != nil {
		return nil, fmt.Errorf("collection: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	s := newMongoSink(client.Database(cfg.Database).Collection(cfg.Collection), cfg.ChunkSize)
	s.client = client
	return s, nil
}

func newMongoSink(coll inserter, chunkSize int) *MongoSink {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &MongoSink{
		coll:      coll,
		chunkSize: chunkSize,
		now:       time.Now,
		offsets:   make(map[string]int),
	}
}

// Documents converts a batch into documents, numbering rows from offset.
func Documents(b Batch, offset int, at time.Time) []Document {
	docs := make([]Document, len(b.Rows))
	for i, r := range b.Rows {
		docs[i] = documentFor(b, r, offset+i, at)
	}
	return docs
}

func documentFor(b Batch, r *row.Row, index int, at time.Time) Document {
	return Document{
		RunID:     b.RunID,
		MaxNumber: b.Config.MaxNumber(),
		RowLength: b.Config.RowLength(),
		Index:     index,
		Key:       r.String(),
		Numbers:   r.Numbers(),
		CreatedAt: at,
	}
}

// Write implements Sink. Rows are inserted in chunks of ChunkSize.
func (s *MongoSink) Write(ctx context.Context, b Batch) error {
	docs := Documents(b, s.offsets[b.RunID], s.now().UTC())
	for start := 0; start < len(docs); start += s.chunkSize {
		end := min(start+s.chunkSize, len(docs))
		chunk := make([]interface{}, 0, end-start)
		for _, d := range docs[start:end] {
			chunk = append(chunk, d)
		}
		if _, err := s.coll.InsertMany(ctx, chunk); err != nil {
			return errors.Wrap(errors.ErrCodeNetwork, err, "insert rows %d-%d", start, end-1)
		}
		s.offsets[b.RunID] += end - start
	}
	return nil
}

// Close disconnects the client, if the sink owns one.
func (s *MongoSink) Close() error {
	if s.client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Sink = (*MongoSink)(nil)
