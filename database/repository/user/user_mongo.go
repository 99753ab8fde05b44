package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"facilitybot/database"
	"facilitybot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.MongoClient.Database("facilitybot").Collection("users")
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{
			{Key: "rank_and_name", Value: 1},
			{Key: "company", Value: 1},
		}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "admin", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Upsert creates or refreshes a profile keyed by Telegram user ID.
func (r *MongoUserRepo) Upsert(profile *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	profile.UpdatedAt = now

	filter := bson.M{"user_id": profile.UserID}
	update := bson.M{
		"$set": bson.M{
			"rank_and_name": profile.RankAndName,
			"company":       profile.Company,
			"username":      profile.Username,
			"updated_at":    profile.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"user_id":    profile.UserID,
			"admin":      false,
			"created_at": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", profile.UserID, err)
	}
	return nil
}

// GetByID retrieves a profile by Telegram user ID; nil when absent.
func (r *MongoUserRepo) GetByID(userID int64) (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var profile models.UserProfile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	return &profile, nil
}

// GetByRankNameCompany retrieves a profile by its unique rank/name + company
// pair; nil when absent. Used by the admin booking flow.
func (r *MongoUserRepo) GetByRankNameCompany(rankAndName, company string) (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"rank_and_name": rankAndName, "company": company}
	var profile models.UserProfile
	if err := r.coll.FindOne(ctx, filter).Decode(&profile); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user %s/%s: %w", rankAndName, company, err)
	}
	return &profile, nil
}

// UpdateUsername refreshes the stored Telegram username.
func (r *MongoUserRepo) UpdateUsername(userID int64, username string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"username": username, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to update username for %d: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}

// ListAdmins retrieves all profiles flagged as admins.
func (r *MongoUserRepo) ListAdmins() ([]models.UserProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"admin": true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve admins: %w", err)
	}
	defer cursor.Close(ctx)

	var admins []models.UserProfile
	for cursor.Next(ctx) {
		var p models.UserProfile
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode admin profile: %w", err)
		}
		admins = append(admins, p)
	}
	return admins, nil
}

// SetAdmin flips the admin flag on a profile.
func (r *MongoUserRepo) SetAdmin(userID int64, admin bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"admin": admin, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to set admin flag for %d: %w", userID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %d not found", userID)
	}
	return nil
}
