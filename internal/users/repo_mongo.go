package users

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"resume-builder/internal/shared/storage/mongodb"
)

// MongoRepo stores users in the "users" collection. Emails are stored
// lower-cased so the unique index is case-insensitive.
type MongoRepo struct {
	coll *mongo.Collection
}

func NewMongoRepo(database *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: database.Collection("users")}
}

// EnsureIndexes creates the unique email index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureUniqueIndex(ctx, r.coll, "email")
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"date"`
}

func (d userDoc) toModel() User {
	return User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *MongoRepo) Create(ctx context.Context, user User) (User, error) {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		CreatedAt:    user.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongodb.IsDuplicateKey(err) {
			return User{}, ErrDuplicate
		}
		return User{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) GetByID(ctx context.Context, userID string) (User, error) {
	oid, ok := mongodb.ParseID(userID)
	if !ok {
		return User{}, ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	pattern := "^" + regexp.QuoteMeta(email) + "$"
	return r.findOne(ctx, bson.M{"email": primitive.Regex{Pattern: pattern, Options: "i"}})
}

func (r *MongoRepo) findOne(ctx context.Context, filter bson.M) (User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return doc.toModel(), nil
}

var _ Repo = (*MongoRepo)(nil)
