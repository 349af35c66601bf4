package resumes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resume-builder/internal/shared/storage/mongodb"
)

const collectionName = "resumes"

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo binds the repo to the resumes collection of database.
func NewMongoRepo(database *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: database.Collection(collectionName)}
}

// EnsureIndexes creates the owner listing index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "updatedAt", Value: -1}},
		Options: options.Index().SetName("user_updatedAt"),
	})
	if err != nil {
		return fmt.Errorf("create index resumes.user_updatedAt: %w", err)
	}
	return nil
}

type resumeDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	Owner          string             `bson:"user"`
	Template       string             `bson:"template"`
	Name           string             `bson:"name"`
	PersonalInfo   PersonalInfo       `bson:"personalInfo"`
	Summary        string             `bson:"summary,omitempty"`
	Education      []Education        `bson:"education"`
	Experience     []Experience       `bson:"experience"`
	Skills         []string           `bson:"skills"`
	Certifications []Certification    `bson:"certifications"`
	Languages      []Language         `bson:"languages"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toDoc(res Resume, id primitive.ObjectID) resumeDoc {
	res = res.normalize()
	return resumeDoc{
		ID:             id,
		Owner:          res.Owner,
		Template:       res.Template,
		Name:           res.Name,
		PersonalInfo:   res.PersonalInfo,
		Summary:        res.Summary,
		Education:      res.Education,
		Experience:     res.Experience,
		Skills:         res.Skills,
		Certifications: res.Certifications,
		Languages:      res.Languages,
		CreatedAt:      res.CreatedAt,
		UpdatedAt:      res.UpdatedAt,
	}
}

func (d resumeDoc) toModel() Resume {
	return Resume{
		ID:             d.ID.Hex(),
		Owner:          d.Owner,
		Template:       d.Template,
		Name:           d.Name,
		PersonalInfo:   d.PersonalInfo,
		Summary:        d.Summary,
		Education:      d.Education,
		Experience:     d.Experience,
		Skills:         d.Skills,
		Certifications: d.Certifications,
		Languages:      d.Languages,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}.normalize()
}

func (r *MongoRepo) Create(ctx context.Context, res Resume) (Resume, error) {
	doc := toDoc(res, primitive.NewObjectID())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return Resume{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	oid, ok := mongodb.ParseID(id)
	if !ok {
		return Resume{}, ErrInvalidID
	}
	var doc resumeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) ListByOwner(ctx context.Context, ownerID string) ([]Resume, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"user": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Resume{}
	for cur.Next(ctx) {
		var doc resumeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cur.Err()
}

func (r *MongoRepo) Update(ctx context.Context, res Resume) (Resume, error) {
	oid, ok := mongodb.ParseID(res.ID)
	if !ok {
		return Resume{}, ErrInvalidID
	}
	doc := toDoc(res, oid)
	update := bson.M{"$set": bson.M{
		"template":       doc.Template,
		"name":           doc.Name,
		"personalInfo":   doc.PersonalInfo,
		"summary":        doc.Summary,
		"education":      doc.Education,
		"experience":     doc.Experience,
		"skills":         doc.Skills,
		"certifications": doc.Certifications,
		"languages":      doc.Languages,
		"updatedAt":      doc.UpdatedAt,
	}}
	var stored resumeDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&stored)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return stored.toModel(), nil
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	oid, ok := mongodb.ParseID(id)
	if !ok {
		return ErrInvalidID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*MongoRepo)(nil)
