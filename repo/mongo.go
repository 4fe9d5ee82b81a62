package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	writeTimeout = time.Second
	readTimeout  = 2 * time.Second
)

// SolveRepo handles the persistence of solve records in MongoDB.
type SolveRepo struct {
	collection *mongo.Collection
}

// NewSolveRepo creates a SolveRepo over the given database and collection.
func NewSolveRepo(client *mongo.Client, dbName, collectionName string) *SolveRepo {
	return NewSolveRepoFromCollection(client.Database(dbName).Collection(collectionName))
}

// NewSolveRepoFromCollection wraps an existing collection handle.
func NewSolveRepoFromCollection(c *mongo.Collection) *SolveRepo {
	return &SolveRepo{collection: c}
}

// solveDoc is the stored shape of a Record. The id is kept as its string
// form so documents stay readable in the shell.
type solveDoc struct {
	ID            string    `bson:"_id"`
	Hash          string    `bson:"hash"`
	MinCost       int64     `bson:"minCost"`
	TileCount     int       `bson:"tileCount"`
	NoRoute       bool      `bson:"noRoute"`
	Width         int       `bson:"width"`
	Height        int       `bson:"height"`
	Cached        bool      `bson:"cached"`
	CreatedAt     time.Time `bson:"createdAt"`
	ElapsedMicros int64     `bson:"elapsedMicros"`
}

func toDoc(r *Record) solveDoc {
	return solveDoc{
		ID:            r.ID.String(),
		Hash:          r.Hash,
		MinCost:       r.MinCost,
		TileCount:     r.TileCount,
		NoRoute:       r.NoRoute,
		Width:         r.Width,
		Height:        r.Height,
		Cached:        r.Cached,
		CreatedAt:     r.CreatedAt,
		ElapsedMicros: r.ElapsedMicros,
	}
}

func (d solveDoc) record() (*Record, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("repo: stored id %q: %w", d.ID, err)
	}
	return &Record{
		ID:            id,
		Hash:          d.Hash,
		MinCost:       d.MinCost,
		TileCount:     d.TileCount,
		NoRoute:       d.NoRoute,
		Width:         d.Width,
		Height:        d.Height,
		Cached:        d.Cached,
		CreatedAt:     d.CreatedAt,
		ElapsedMicros: d.ElapsedMicros,
	}, nil
}

// Save inserts or replaces a record.
func (s *SolveRepo) Save(ctx context.Context, r *Record) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	doc := toDoc(r)
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("repo: saving %s: %w", r.ID, err)
	}

	return nil
}

// ByID retrieves a record by its id.
func (s *SolveRepo) ByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var doc solveDoc
	if err := s.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("repo: loading %s: %w", id, err)
	}

	return doc.record()
}

// Recent returns up to limit records, newest first.
func (s *SolveRepo) Recent(ctx context.Context, limit int) ([]*Record, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(int64(limit))
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repo: listing: %w", err)
	}
	defer cur.Close(ctx)

	var docs []solveDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repo: decoding list: %w", err)
	}
	out := make([]*Record, 0, len(docs))
	for _, d := range docs {
		r, err := d.record()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, nil
}

// EnsureIndexes creates the indexes Recent and hash lookups rely on.
func (s *SolveRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "hash", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("repo: creating indexes: %w", err)
	}

	return nil
}
