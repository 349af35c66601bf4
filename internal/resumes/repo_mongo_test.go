package resumes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const resumesNS = "resume_builder.resumes"

func toBSOND(tb testing.TB, v any) bson.D {
	tb.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(tb, err)
	var d bson.D
	require.NoError(tb, bson.Unmarshal(raw, &d))
	return d
}

func storedResumeDoc(id primitive.ObjectID, owner string, updatedAt time.Time) resumeDoc {
	return toDoc(Resume{
		Owner:        owner,
		Template:     "tpl-1",
		Name:         "Dev Resume",
		PersonalInfo: PersonalInfo{FullName: "Jane Doe", Email: "jane@x.com"},
		Education: []Education{{
			Institution: "MIT",
			StartDate:   NewDate(time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)),
		}},
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}, id)
}

func TestMongoRepoMalformedIDs(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no round trip for non object ids", func(mt *mtest.T) {
		repo := NewMongoRepo(mt.DB)
		ctx := context.Background()

		_, err := repo.GetByID(ctx, "not-an-object-id")
		assert.ErrorIs(mt, err, ErrInvalidID)
		_, err = repo.Update(ctx, Resume{ID: "123"})
		assert.ErrorIs(mt, err, ErrInvalidID)
		assert.ErrorIs(mt, repo.Delete(ctx, ""), ErrInvalidID)
	})
}

func TestMongoRepoGetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	updated := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	mt.Run("decodes sections and dates", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, resumesNS, mtest.FirstBatch,
			toBSOND(mt.T, storedResumeDoc(oid, "user-1", updated))))

		res, err := NewMongoRepo(mt.DB).GetByID(context.Background(), oid.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, oid.Hex(), res.ID)
		assert.Equal(mt, "user-1", res.Owner)
		assert.Equal(mt, time.UTC, res.UpdatedAt.Location())
		require.Len(mt, res.Education, 1)
		require.NotNil(mt, res.Education[0].StartDate)
		assert.True(mt, res.Education[0].StartDate.Equal(time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)))
		assert.Equal(mt, []string{}, res.Skills)
	})

	mt.Run("absent document is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, resumesNS, mtest.FirstBatch))

		_, err := NewMongoRepo(mt.DB).GetByID(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoRepoListByOwnerKeepsServerOrder(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list", func(mt *mtest.T) {
		newer, older := primitive.NewObjectID(), primitive.NewObjectID()
		base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, resumesNS, mtest.FirstBatch,
			toBSOND(mt.T, storedResumeDoc(newer, "user-1", base.Add(time.Hour))),
			toBSOND(mt.T, storedResumeDoc(older, "user-1", base)),
		))

		items, err := NewMongoRepo(mt.DB).ListByOwner(context.Background(), "user-1")
		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, newer.Hex(), items[0].ID)
		assert.Equal(mt, older.Hex(), items[1].ID)
	})

	mt.Run("empty list is not nil", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, resumesNS, mtest.FirstBatch))

		items, err := NewMongoRepo(mt.DB).ListByOwner(context.Background(), "user-9")
		require.NoError(mt, err)
		assert.NotNil(mt, items)
		assert.Empty(mt, items)
	})
}

func TestMongoRepoUpdate(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("returns stored document", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		stored := storedResumeDoc(oid, "user-1", at)
		stored.Skills = []string{"go"}
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toBSOND(mt.T, stored)}))

		res, err := NewMongoRepo(mt.DB).Update(context.Background(), stored.toModel())
		require.NoError(mt, err)
		assert.Equal(mt, []string{"go"}, res.Skills)
		assert.True(mt, res.UpdatedAt.Equal(at))
	})

	mt.Run("absent document is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := NewMongoRepo(mt.DB).Update(context.Background(), Resume{ID: primitive.NewObjectID().Hex()})
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestMongoRepoDelete(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))
		assert.NoError(mt, NewMongoRepo(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex()))
	})

	mt.Run("nothing deleted is not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))
		err := NewMongoRepo(mt.DB).Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}

func TestResumeDocBSONRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	at := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	doc := storedResumeDoc(oid, "user-1", at)
	doc.Experience = []Experience{{Company: "Acme", StartDate: NewDate(at), Current: true}}
	doc.Certifications = []Certification{{Name: "CKA", Date: NewDate(at)}}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var decoded resumeDoc
	require.NoError(t, bson.Unmarshal(raw, &decoded))

	res := decoded.toModel()
	assert.Equal(t, oid.Hex(), res.ID)
	require.Len(t, res.Experience, 1)
	assert.True(t, res.Experience[0].Current)
	assert.True(t, res.Experience[0].StartDate.Equal(at))
	assert.Nil(t, res.Experience[0].EndDate)
	require.Len(t, res.Certifications, 1)
	assert.True(t, res.Certifications[0].Date.Equal(at))
	owner, err := bson.Raw(raw).LookupErr("user")
	require.NoError(t, err)
	assert.Equal(t, "user-1", owner.StringValue())
}
