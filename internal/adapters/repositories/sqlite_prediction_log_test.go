package repositories

import (
	"context"
	"database/sql"
	"delivery-time-service/internal/platform/obs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	_ "modernc.org/sqlite"
)

func openTestSqlite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, InitSchema(context.Background(), db, SQLite))
	return db
}

func TestSqlitePredictionLogRoundTrip(t *testing.T) {
	db := openTestSqlite(t)
	log := NewSqlitePredictionLog(db)
	ctx := context.Background()

	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	require.NoError(t, log.Record(ctx, testRecord("a", base)))
	require.NoError(t, log.Record(ctx, testRecord("b", base.Add(500*time.Millisecond))))
	require.NoError(t, log.Record(ctx, testRecord("c", base.Add(time.Second))))

	recs, err := log.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "c", recs[0].ID)
	assert.Equal(t, "b", recs[1].ID)
	assert.True(t, recs[1].CreatedAt.Equal(base.Add(500*time.Millisecond)))
	assert.Equal(t, []string{"distance", "Delivery_person_Age"}, recs[0].Features.Names)
	assert.Equal(t, []float64{4.2, 31}, recs[0].Features.Values)
	assert.Equal(t, "0 hours and 42 minutes", recs[0].Formatted)
}

func TestSqlitePredictionLogDuplicateID(t *testing.T) {
	db := openTestSqlite(t)
	log := NewSqlitePredictionLog(db)
	ctx := context.Background()

	require.NoError(t, log.Record(ctx, testRecord("dup", time.Now())))
	assert.Error(t, log.Record(ctx, testRecord("dup", time.Now())))
}

func TestInitSchemaSqliteIsIdempotent(t *testing.T) {
	db := openTestSqlite(t)
	assert.NoError(t, InitSchema(context.Background(), db, SQLite))
}

func TestSqlitePredictionLogTimesOperations(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := obs.WithLogger(context.Background(), zap.New(core))
	log := NewSqlitePredictionLog(openTestSqlite(t))

	require.NoError(t, log.Record(ctx, testRecord("a", time.Now())))
	_, err := log.Recent(ctx, 5)
	require.NoError(t, err)

	ops := []string{}
	for _, e := range logs.FilterMessage("operation done").All() {
		ops = append(ops, e.ContextMap()["op"].(string))
	}
	assert.Equal(t, []string{"prediction.log.Record", "prediction.log.Recent"}, ops)
}
