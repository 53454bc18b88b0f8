package recordsRepo

import (
	"context"

	"salonflow/database"
	"salonflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRecordRepository archives confirmed bookings. The archive is
// write-mostly: the flow only reads it back for support lookups.
type BookingRecordRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (string, error)
	GetByID(ctx context.Context, id string) (*models.BookingRecord, error)
	GetByBookingID(ctx context.Context, bookingID string) (*models.BookingRecord, error)
	DeleteByID(ctx context.Context, id string) error
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a BookingRecordRepository backed by MongoDB.
func NewMongoRecordRepo() BookingRecordRepository {
	db := database.MongoClient.Database("salonflow")
	return &mongoRecordRepo{
		coll: db.Collection("booking_records"),
	}
}
