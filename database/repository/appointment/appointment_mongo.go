package appointmentRepo

import (
	"context"
	"log"
	"time"

	"clinicdesk/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	appointmentsCollection = "appointments"
	slotCountersCollection = "slot_counters"
)

// MongoAppointmentRepo is the Mongo-backed appointment repository.
type MongoAppointmentRepo struct {
	apptColl    *mongo.Collection
	counterColl *mongo.Collection
}

// NewMongoAppointmentRepo builds a repository over the configured database
// and makes sure the slot-counter uniqueness index exists.
func NewMongoAppointmentRepo() *MongoAppointmentRepo {
	repo := &MongoAppointmentRepo{
		apptColl:    database.Collection(appointmentsCollection),
		counterColl: database.Collection(slotCountersCollection),
	}
	if err := repo.ensureIndexes(); err != nil {
		log.Fatalf("failed to create appointment indexes: %v", err)
	}
	return repo
}

// ensureIndexes creates the unique (date, time) index on slot counters.
// Reservation correctness depends on it: the upsert in ReserveSlot turns into
// a duplicate-key error, not a second counter, when the slot is contested.
func (repo *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := repo.counterColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
