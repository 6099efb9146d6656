package database

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Backend-Schoolhub/src/models"
)

// PersonRepository อ่าน roster จาก collection persons
type PersonRepository struct {
	coll *mongo.Collection
}

func NewPersonRepository(db *mongo.Database) *PersonRepository {
	return &PersonRepository{coll: db.Collection(PersonsCollection)}
}

// GetRoster returns active persons in scope ordered by class, section and secondary id.
func (r *PersonRepository) GetRoster(ctx context.Context, scope models.RosterScope) ([]models.Person, error) {
	filter := bson.M{"active": true}
	if scope.Kind != "" {
		filter["kind"] = scope.Kind
	}
	if scope.ClassName != "" {
		filter["className"] = scope.ClassName
	}
	if scope.Section != "" {
		filter["section"] = scope.Section
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "className", Value: 1},
		{Key: "section", Value: 1},
		{Key: "secondaryId", Value: 1},
		{Key: "_id", Value: 1},
	})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	persons := make([]models.Person, 0)
	if err := cursor.All(ctx, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

// GetPerson returns nil, nil when the id is unknown.
func (r *PersonRepository) GetPerson(ctx context.Context, id string) (*models.Person, error) {
	var p models.Person
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPersons ใช้ตอน seed roster
func (r *PersonRepository) UpsertPersons(ctx context.Context, persons []models.Person) error {
	if len(persons) == 0 {
		return nil
	}
	writes := make([]mongo.WriteModel, 0, len(persons))
	for _, p := range persons {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(p).
			SetUpsert(true))
	}
	_, err := r.coll.BulkWrite(ctx, writes)
	return err
}

func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
