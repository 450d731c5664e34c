package driverRepo

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

// MongoDriverRepo implements DriverRepository using MongoDB.
type MongoDriverRepo struct {
	coll *mongo.Collection
}

// NewMongoDriverRepo creates the repository over the "drivers" collection of db.
func NewMongoDriverRepo(db *mongo.Database, logger *zap.Logger) DriverRepository {
	repo := &MongoDriverRepo{coll: db.Collection("drivers")}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create driver indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoDriverRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

func (r *MongoDriverRepo) Create(ctx context.Context, driver *models.Driver) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, driver); err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *MongoDriverRepo) GetByID(ctx context.Context, id string) (*models.Driver, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoDriverRepo) GetByEmail(ctx context.Context, email string) (*models.Driver, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoDriverRepo) findOne(ctx context.Context, filter bson.M) (*models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var driver models.Driver
	if err := r.coll.FindOne(ctx, filter).Decode(&driver); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch driver: %w", err)
	}
	return &driver, nil
}

func (r *MongoDriverRepo) GetAll(ctx context.Context) ([]models.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve drivers: %w", err)
	}
	defer cursor.Close(ctx)

	drivers := []models.Driver{}
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, fmt.Errorf("failed to decode drivers: %w", err)
	}
	return drivers, nil
}

func (r *MongoDriverRepo) Update(ctx context.Context, driver *models.Driver) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": driver.ID}, bson.M{"$set": driver})
	if err != nil {
		return fmt.Errorf("failed to update driver with id %s: %w", driver.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoDriverRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete driver with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoDriverRepo) CountByStatus(ctx context.Context, status models.DriverStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"status": status})
	if err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return n, nil
}
