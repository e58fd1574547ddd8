package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Find returns all stored appointments.
func (repo *MongoAppointmentRepo) Find(ctx context.Context) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.apptColl.Find(ctxWithTimeout, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var appointments []models.Appointment
	if err := cursor.All(ctxWithTimeout, &appointments); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appointments, nil
}

// Insert stores a new appointment document.
func (repo *MongoAppointmentRepo) Insert(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	if _, err := repo.apptColl.InsertOne(ctxWithTimeout, appt); err != nil {
		return nil, fmt.Errorf("error creating appointment: %w", err)
	}
	return appt, nil
}

// ReserveSlot claims one unit of capacity in the (date, time) bucket with a
// conditional upsert. The filter only matches a counter still below
// maxPerSlot; when the counter exists but is full the filter misses, the
// upsert collides with the unique (date, time) index and Mongo reports a
// duplicate key. A duplicate key on the first attempt can also mean two
// callers raced to create the counter, so we retry once — after that the
// counter definitely exists and a second collision means the slot is full.
func (repo *MongoAppointmentRepo) ReserveSlot(ctx context.Context, date, timeLabel string, maxPerSlot int) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"date":  date,
		"time":  timeLabel,
		"count": bson.M{"$lt": maxPerSlot},
	}
	update := bson.M{"$inc": bson.M{"count": 1}}
	opts := options.FindOneAndUpdate().SetUpsert(true)

	for attempt := 0; attempt < 2; attempt++ {
		err := repo.counterColl.FindOneAndUpdate(ctxWithTimeout, filter, update, opts).Err()
		if err == nil || err == mongo.ErrNoDocuments {
			// ErrNoDocuments just means the upsert created the counter.
			return nil
		}
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		return fmt.Errorf("error reserving slot %s %s: %w", date, timeLabel, err)
	}
	return ErrSlotFull
}

// ReleaseSlot undoes a reservation whose appointment insert failed.
func (repo *MongoAppointmentRepo) ReleaseSlot(ctx context.Context, date, timeLabel string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"date": date, "time": timeLabel, "count": bson.M{"$gt": 0}}
	update := bson.M{"$inc": bson.M{"count": -1}}
	if _, err := repo.counterColl.UpdateOne(ctxWithTimeout, filter, update); err != nil {
		return fmt.Errorf("error releasing slot %s %s: %w", date, timeLabel, err)
	}
	return nil
}
