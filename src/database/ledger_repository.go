package database

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Backend-Schoolhub/src/logger"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/fees"
)

// LedgerRepository appends ledger batches in a transaction and streams changes.
// Transactions and change streams need a replica set.
type LedgerRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
	log    *logrus.Entry
}

func NewLedgerRepository(client *mongo.Client, db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{
		client: client,
		coll:   db.Collection(LedgerCollection),
		log:    logger.Module("ledger-repository"),
	}
}

func (r *LedgerRepository) AppendLedgerEntries(ctx context.Context, entries []models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.coll.InsertMany(sc, docs)
	})
	return err
}

func ledgerFilter(f fees.LedgerFilter) bson.M {
	filter := bson.M{}
	if f.PersonID != "" {
		filter["personId"] = f.PersonID
	}
	if f.ClassName != "" {
		filter["className"] = f.ClassName
	}
	date := bson.M{}
	if f.Window.From != "" {
		date["$gte"] = f.Window.From
	}
	if f.Window.To != "" {
		date["$lte"] = f.Window.To
	}
	if len(date) > 0 {
		filter["date"] = date
	}
	return filter
}

func (r *LedgerRepository) ListLedgerEntries(ctx context.Context, f fees.LedgerFilter) ([]models.LedgerEntry, int64, error) {
	filter := ledgerFilter(f)

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "date", Value: 1},
		{Key: "createdAt", Value: 1},
		{Key: "monthIndex", Value: 1},
	})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.LedgerEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

type ledgerChangeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID string `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument *models.LedgerEntry `bson:"fullDocument"`
}

// Subscribe opens a change stream on ledger_entries; the channel closes when ctx is done or
// the stream fails.
func (r *LedgerRepository) Subscribe(ctx context.Context) (<-chan models.LedgerChange, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "operationType", Value: bson.D{
			{Key: "$in", Value: bson.A{"insert", "update", "replace", "delete"}},
		}}}}},
	}
	stream, err := r.coll.Watch(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	out := make(chan models.LedgerChange, 64)
	go func() {
		defer close(out)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev ledgerChangeEvent
			if err := stream.Decode(&ev); err != nil {
				logger.LogError(r.log, "Subscribe", "decode change event", nil, err)
				continue
			}
			change := models.LedgerChange{
				Type:    changeType(ev.OperationType),
				EntryID: ev.DocumentKey.ID,
				At:      time.Now(),
			}
			if ev.FullDocument != nil {
				change.PersonID = ev.FullDocument.PersonID
			}
			select {
			case out <- change:
			case <-ctx.Done():
				return
			}
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			logger.LogError(r.log, "Subscribe", "change stream stopped", nil, err)
		}
	}()
	return out, nil
}

func changeType(op string) models.LedgerChangeType {
	switch op {
	case "insert":
		return models.LedgerInserted
	case "delete":
		return models.LedgerDeleted
	default:
		return models.LedgerUpdated
	}
}
