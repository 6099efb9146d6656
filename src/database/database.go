package database

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"Backend-Schoolhub/src/logger"
)

const (
	PersonsCollection    = "persons"
	RecordsCollection    = "attendance_records"
	LedgerCollection     = "ledger_entries"
	connectTimeout       = 10 * time.Second
	indexCreationTimeout = 30 * time.Second
)

var (
	client     *mongo.Client
	once       sync.Once // ✅ ป้องกันการรัน ConnectMongoDB() ซ้ำ
	connectErr error
)

// ConnectMongoDB เชื่อมต่อกับ MongoDB แค่ครั้งเดียว (decimal codec ลงทะเบียนไว้ใน registry)
func ConnectMongoDB(mongoURI string) (*mongo.Client, error) {
	if mongoURI == "" {
		return nil, errors.New("MONGO_URI environment variable not set")
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		clientOptions := options.Client().
			ApplyURI(mongoURI).
			SetRegistry(NewRegistry())

		client, connectErr = mongo.Connect(ctx, clientOptions)
		if connectErr != nil {
			return
		}

		// ตรวจสอบการเชื่อมต่อ
		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			return
		}
		logger.Module("database").Info("✅ MongoDB connected successfully")
	})

	return client, connectErr
}

// EnsureIndexes สร้าง index ที่ core พึ่งพา; unique {personId, date} กัน record ซ้ำ
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexCreationTimeout)
	defer cancel()

	if _, err := db.Collection(RecordsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "personId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_person_date"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("by_date"),
		},
	}); err != nil {
		return err
	}

	if _, err := db.Collection(LedgerCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "personId", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "className", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "batchId", Value: 1}}},
	}); err != nil {
		return err
	}

	_, err := db.Collection(PersonsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "kind", Value: 1}, {Key: "className", Value: 1}, {Key: "section", Value: 1}}},
		{Keys: bson.D{{Key: "secondaryId", Value: 1}}},
	})
	return err
}

// Disconnect ปิด client ตอน shutdown
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
