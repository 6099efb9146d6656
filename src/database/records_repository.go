package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Backend-Schoolhub/src/models"
)

// RecordRepository relies on the uniq_person_date index for one record per (personId, date).
type RecordRepository struct {
	coll *mongo.Collection
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{coll: db.Collection(RecordsCollection)}
}

func keyFilter(personID, date string) bson.M {
	return bson.M{"personId": personID, "date": date}
}

func (r *RecordRepository) GetRecord(ctx context.Context, personID, date string) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := r.coll.FindOne(ctx, keyFilter(personID, date)).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) InsertRecord(ctx context.Context, rec models.AttendanceRecord) (*models.AttendanceRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrRecordExists
		}
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepository) UpsertStatus(ctx context.Context, rec models.AttendanceRecord) (*models.AttendanceRecord, error) {
	update := bson.M{
		"$set": bson.M{
			"status":     rec.Status,
			"recordedBy": rec.RecordedBy,
			"updatedAt":  rec.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":      uuid.NewString(),
			"kind":     rec.Kind,
			"source":   rec.Source,
			"markedAt": rec.MarkedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var out models.AttendanceRecord
	err := r.coll.FindOneAndUpdate(ctx, keyFilter(rec.PersonID, rec.Date), update, opts).Decode(&out)
	if mongo.IsDuplicateKeyError(err) {
		// upsert ชนกับ insert พร้อมกัน รอบสองจะเจอ document แล้ว update ได้
		err = r.coll.FindOneAndUpdate(ctx, keyFilter(rec.PersonID, rec.Date), update, opts).Decode(&out)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetExitTime only matches records whose exitTime is missing or null.
func (r *RecordRepository) SetExitTime(ctx context.Context, personID, date string, exit time.Time) (bool, error) {
	filter := keyFilter(personID, date)
	filter["exitTime"] = nil
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"exitTime": exit, "updatedAt": exit},
	})
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

func (r *RecordRepository) ListRecords(ctx context.Context, date string) ([]models.AttendanceRecord, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"date": date}, options.Find().SetSort(bson.D{{Key: "personId", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]models.AttendanceRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
