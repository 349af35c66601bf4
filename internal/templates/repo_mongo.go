package templates

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"resume-builder/internal/shared/storage/mongodb"
)

const collectionName = "templates"

// MongoRepo implements Repo on a MongoDB collection.
type MongoRepo struct {
	coll *mongo.Collection
}

// NewMongoRepo binds the repo to the templates collection of database.
func NewMongoRepo(database *mongo.Database) *MongoRepo {
	return &MongoRepo{coll: database.Collection(collectionName)}
}

// EnsureIndexes creates the unique name index.
func (r *MongoRepo) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureUniqueIndex(ctx, r.coll, "name")
}

type templateDoc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Description  string             `bson:"description,omitempty"`
	PreviewImage string             `bson:"previewImage,omitempty"`
	IsPremium    bool               `bson:"isPremium"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func toDoc(t Template, id primitive.ObjectID) templateDoc {
	return templateDoc{
		ID:           id,
		Name:         t.Name,
		Description:  t.Description,
		PreviewImage: t.PreviewImage,
		IsPremium:    t.IsPremium,
		CreatedAt:    t.CreatedAt,
	}
}

func (d templateDoc) toModel() Template {
	return Template{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Description:  d.Description,
		PreviewImage: d.PreviewImage,
		IsPremium:    d.IsPremium,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *MongoRepo) Create(ctx context.Context, t Template) (Template, error) {
	doc := toDoc(t, primitive.NewObjectID())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongodb.IsDuplicateKey(err) {
			return Template{}, ErrDuplicate
		}
		return Template{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (Template, error) {
	oid, ok := mongodb.ParseID(id)
	if !ok {
		return Template{}, ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoRepo) GetByIDs(ctx context.Context, ids []string) (map[string]Template, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := mongodb.ParseID(id); ok {
			oids = append(oids, oid)
		}
	}
	out := make(map[string]Template, len(oids))
	if len(oids) == 0 {
		return out, nil
	}
	docs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
	if err != nil {
		return nil, err
	}
	for _, t := range docs {
		out[t.ID] = t
	}
	return out, nil
}

func (r *MongoRepo) FindByName(ctx context.Context, name string) (Template, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoRepo) List(ctx context.Context) ([]Template, error) {
	return r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
}

func (r *MongoRepo) Update(ctx context.Context, t Template) (Template, error) {
	oid, ok := mongodb.ParseID(t.ID)
	if !ok {
		return Template{}, ErrInvalidID
	}
	update := bson.M{"$set": bson.M{
		"name":         t.Name,
		"description":  t.Description,
		"previewImage": t.PreviewImage,
		"isPremium":    t.IsPremium,
	}}
	var doc templateDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return Template{}, ErrNotFound
		case mongodb.IsDuplicateKey(err):
			return Template{}, ErrDuplicate
		}
		return Template{}, err
	}
	return doc.toModel(), nil
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

func (r *MongoRepo) Replace(ctx context.Context, catalog []Template) ([]Template, error) {
	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return []Template{}, nil
	}
	docs := make([]any, 0, len(catalog))
	out := make([]Template, 0, len(catalog))
	for _, t := range catalog {
		doc := toDoc(t, primitive.NewObjectID())
		docs = append(docs, doc)
		out = append(out, doc.toModel())
	}
	if _, err := r.coll.InsertMany(ctx, docs); err != nil {
		if mongodb.IsDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return out, nil
}

func (r *MongoRepo) findOne(ctx context.Context, filter bson.M) (Template, error) {
	var doc templateDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Template{}, ErrNotFound
		}
		return Template{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Template, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Template{}
	for cur.Next(ctx) {
		var doc templateDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toModel())
	}
	return out, cur.Err()
}

var _ Repo = (*MongoRepo)(nil)
