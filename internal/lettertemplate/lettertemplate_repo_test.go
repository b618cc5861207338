package lettertemplate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func templateDoc(name string, t Type, active bool) bson.D {
	return bson.D{
		{Key: "_id", Value: primitive.NewObjectID()},
		{Key: "name", Value: name},
		{Key: "type", Value: string(t)},
		{Key: "subject", Value: "Hello {{name}}"},
		{Key: "bodyContent", Value: "<p>{{name}}</p>"},
		{Key: "variables", Value: bson.A{"name"}},
		{Key: "isActive", Value: active},
		{Key: "isLocked", Value: false},
		{Key: "isFixedPdf", Value: false},
		{Key: "createdAt", Value: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Key: "updatedAt", Value: time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
	}
}

func TestRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find all decodes every batch", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, templateDoc("appointment", TypeAppointmentLetter, true))
		second := mtest.CreateCursorResponse(1, ns, mtest.NextBatch, templateDoc("offer", TypeOfferLetter, false))
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, second, last)

		got, err := NewRepository(mt.Coll).FindAll(ctx, ListFilter{})
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, "appointment", got[0].Name)
		assert.Equal(mt, TypeOfferLetter, got[1].Type)
		assert.False(mt, got[1].IsActive)
		assert.Equal(mt, []string{"name"}, got[0].Variables)
	})

	mt.Run("find by name", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, templateDoc("offer", TypeOfferLetter, true)))

		got, err := NewRepository(mt.Coll).FindByName(ctx, "offer")
		require.NoError(mt, err)
		assert.Equal(mt, "offer", got.Name)
		assert.Equal(mt, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), got.UpdatedAt.UTC())
	})

	mt.Run("find active by type with no match", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := NewRepository(mt.Coll).FindActiveByType(ctx, TypeRelievingLetter)
		assert.True(mt, errors.Is(err, mongo.ErrNoDocuments))
	})

	mt.Run("upsert returns the stored document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: templateDoc("offer", TypeOfferLetter, true)},
		))

		now := time.Now().UTC()
		got, err := NewRepository(mt.Coll).Upsert(ctx, &LetterTemplate{
			Name:        "offer",
			Type:        TypeOfferLetter,
			BodyContent: "<p>{{name}}</p>",
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		require.NoError(mt, err)
		assert.Equal(mt, "offer", got.Name)
		assert.False(mt, got.ID.IsZero())
	})

	mt.Run("upsert against a locked name hits the unique index", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error collection: letter_templates index: uq_letter_template_name",
		}))

		_, err := NewRepository(mt.Coll).Upsert(ctx, &LetterTemplate{Name: "offer", Type: TypeOfferLetter})
		require.Error(mt, err)
		assert.True(mt, mongo.IsDuplicateKeyError(err))
	})

	mt.Run("set active on missing document", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := NewRepository(mt.Coll).SetActive(ctx, "ghost", true, time.Now())
		assert.True(mt, errors.Is(err, mongo.ErrNoDocuments))
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, NewRepository(mt.Coll).EnsureIndexes(ctx))
	})
}
