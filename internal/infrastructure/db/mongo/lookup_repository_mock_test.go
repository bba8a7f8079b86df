package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/iss-spotter/iss-spotter/internal/core/domain"
)

func lookupDoc(id string, started time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "mode", Value: "self"},
		{Key: "state", Value: "have_passes"},
		{Key: "ip", Value: "1.2.3.4"},
		{Key: "passes", Value: bson.A{bson.D{{Key: "risetime", Value: int64(100)}, {Key: "duration", Value: int64(50)}}}},
		{Key: "started_at", Value: started},
		{Key: "finished_at", Value: started.Add(time.Second)},
	}
}

func TestLookupRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	started := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewLookupRepository(mt.DB)

		err := repo.Insert(context.Background(), &domain.Lookup{ID: "a", State: domain.StateHavePasses, StartedAt: started})

		require.NoError(mt, err)
		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "insert", ev.CommandName)
		assert.Equal(mt, lookupsCollection, ev.Command.Lookup("insert").StringValue())
	})

	mt.Run("insert error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))
		repo := NewLookupRepository(mt.DB)

		err := repo.Insert(context.Background(), &domain.Lookup{ID: "a"})

		assert.Error(mt, err)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + lookupsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, lookupDoc("a", started)))
		repo := NewLookupRepository(mt.DB)

		l, err := repo.FindByID(context.Background(), "a")

		require.NoError(mt, err)
		assert.Equal(mt, "a", l.ID)
		assert.Equal(mt, domain.StateHavePasses, l.State)
		assert.Equal(mt, domain.PassList{{RiseTime: 100, Duration: 50}}, l.Passes)
		assert.True(mt, started.Equal(l.StartedAt))
	})

	mt.Run("find by id not found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + lookupsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewLookupRepository(mt.DB)

		l, err := repo.FindByID(context.Background(), "missing")

		assert.Nil(mt, l)
		assert.ErrorIs(mt, err, domain.ErrLookupNotFound)
	})

	mt.Run("list recent", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + lookupsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			lookupDoc("newer", started.Add(time.Hour)),
			lookupDoc("older", started),
		))
		repo := NewLookupRepository(mt.DB)

		items, err := repo.ListRecent(context.Background(), 2)

		require.NoError(mt, err)
		require.Len(mt, items, 2)
		assert.Equal(mt, "newer", items[0].ID)
		assert.Equal(mt, "older", items[1].ID)

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "find", ev.CommandName)
		assert.Equal(mt, int64(2), ev.Command.Lookup("limit").AsInt64())
		assert.Equal(mt, int64(-1), ev.Command.Lookup("sort", "started_at").AsInt64())
	})

	mt.Run("list recent empty", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + lookupsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewLookupRepository(mt.DB)

		items, err := repo.ListRecent(context.Background(), 20)

		require.NoError(mt, err)
		assert.Empty(mt, items)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, EnsureIndexes(context.Background(), mt.DB))

		ev := mt.GetStartedEvent()
		require.NotNil(mt, ev)
		assert.Equal(mt, "createIndexes", ev.CommandName)
	})
}
