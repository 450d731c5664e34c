package bookingRecordRepo

import (
	"context"
	"fmt"
	"time"

	"infinitewash/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type mongoBookingRecordRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRecordRepo(db *mongo.Database, logger *zap.Logger) BookingRecordRepository {
	repo := &mongoBookingRecordRepo{coll: db.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create booking indexes", zap.Error(err))
	}
	return repo
}

func (r *mongoBookingRecordRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *mongoBookingRecordRepo) Create(ctx context.Context, record *models.BookingRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create booking record: %w", err)
	}
	return nil
}

func (r *mongoBookingRecordRepo) GetByID(ctx context.Context, id string) (*models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.BookingRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", id, err)
	}
	return &record, nil
}

func (r *mongoBookingRecordRepo) GetAll(ctx context.Context, f ListFilter) ([]models.BookingRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Date != "" {
		filter["date"] = f.Date
	}
	if f.DriverID != "" {
		filter["driver_id"] = f.DriverID
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "time", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	records := []models.BookingRecord{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return records, nil
}

func (r *mongoBookingRecordRepo) SetFields(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	for k, v := range fields {
		set[k] = v
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoBookingRecordRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if !since.IsZero() {
		filter["created_at"] = bson.M{"$gte": since}
	}
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}

func (r *mongoBookingRecordRepo) Revenue(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": bson.M{"$ne": models.BookingCancelled}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_amount"}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, fmt.Errorf("failed to decode revenue: %w", err)
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}

func (r *mongoBookingRecordRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s bookings: %w", status, err)
	}
	return n, nil
}

func (r *mongoBookingRecordRepo) CustomerTotals(ctx context.Context) ([]models.CustomerTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	isStatus := func(status models.BookingStatus) bson.M {
		return bson.M{"$eq": bson.A{"$status", status}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":             bson.M{"$toLower": "$customer.email"},
			"name":            bson.M{"$last": "$customer.name"},
			"phone":           bson.M{"$last": "$customer.phone"},
			"total_bookings":  bson.M{"$sum": 1},
			"completed":       bson.M{"$sum": bson.M{"$cond": bson.A{isStatus(models.BookingCompleted), 1, 0}}},
			"total_spent":     bson.M{"$sum": bson.M{"$cond": bson.A{isStatus(models.BookingCancelled), 0, "$total_amount"}}},
			"last_booking_at": bson.M{"$max": "$created_at"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_booking_at", Value: -1}}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate customers: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Email         string    `bson:"_id"`
		Name          string    `bson:"name"`
		Phone         string    `bson:"phone"`
		TotalBookings int64     `bson:"total_bookings"`
		Completed     int64     `bson:"completed"`
		TotalSpent    float64   `bson:"total_spent"`
		LastBookingAt time.Time `bson:"last_booking_at"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}
	out := make([]models.CustomerTotals, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.CustomerTotals{
			Email:             row.Email,
			Name:              row.Name,
			Phone:             row.Phone,
			TotalBookings:     row.TotalBookings,
			CompletedBookings: row.Completed,
			TotalSpent:        row.TotalSpent,
			LastBookingAt:     row.LastBookingAt,
		})
	}
	return out, nil
}

func (r *mongoBookingRecordRepo) BusyDriverIDs(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "driver_id", bson.M{
		"status":    models.BookingInProgress,
		"driver_id": bson.M{"$nin": bson.A{"", nil}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list busy drivers: %w", err)
	}
	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
