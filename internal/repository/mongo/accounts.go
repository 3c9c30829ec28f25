package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/articlepost/account-service/internal/core/domain"
	"github.com/articlepost/account-service/internal/repository"
)

const accountsCollection = "users"

// AccountRepository persists accounts in a MongoDB collection.
type AccountRepository struct {
	collection *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{collection: db.Collection(accountsCollection)}
}

// EnsureIndexes creates the unique indexes backing conflict detection.
// Safe to call on every startup; index creation is idempotent.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "userName", Value: 1}}, Options: unique},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
	})
	if err != nil {
		return fmt.Errorf("create account indexes: %w", err)
	}
	return nil
}

func (r *AccountRepository) Insert(ctx context.Context, account domain.Account) error {
	if _, err := r.collection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindConflicting(ctx context.Context, email, userName, phone string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"userName": userName},
		bson.M{"phone": phone},
	}})
}

func (r *AccountRepository) GetByResetDigest(ctx context.Context, digest string, now time.Time) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{
		"passwordResetToken":   digest,
		"passwordResetExpires": bson.M{"$gt": now},
	})
}

func (r *AccountRepository) RecordLogin(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$inc": bson.M{"loginCount": 1},
		"$set": bson.M{
			"lastLoginDate": at,
			"updatedAt":     at,
		},
	})
}

func (r *AccountRepository) UpdatePassword(ctx context.Context, id string, passwordHash string, changedAt time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"password":          passwordHash,
			"passwordChangedAt": changedAt,
			"updatedAt":         changedAt,
		},
	})
}

func (r *AccountRepository) SetResetToken(ctx context.Context, id string, digest string, expiresAt, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"passwordResetToken":   digest,
			"passwordResetExpires": expiresAt,
			"updatedAt":            at,
		},
	})
}

func (r *AccountRepository) ClearResetToken(ctx context.Context, id string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
		"$set": bson.M{"updatedAt": at},
	})
}

func (r *AccountRepository) UpdatePasswordAndClearReset(ctx context.Context, id string, passwordHash string, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"password":          passwordHash,
			"passwordChangedAt": at,
			"updatedAt":         at,
		},
		"$unset": bson.M{
			"passwordResetToken":   "",
			"passwordResetExpires": "",
		},
	})
}

func (r *AccountRepository) UpdateProfileImage(ctx context.Context, id string, image domain.ProfileImage, at time.Time) error {
	return r.updateOne(ctx, id, bson.M{
		"$set": bson.M{
			"profileImage": image,
			"updatedAt":    at,
		},
	})
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var account domain.Account
	if err := r.collection.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return &account, nil
}

func (r *AccountRepository) updateOne(ctx context.Context, id string, update bson.M) error {
	res, err := r.collection.UpdateByID(ctx, id, update)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
