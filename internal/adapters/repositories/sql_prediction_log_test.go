package repositories

import (
	"context"
	"delivery-time-service/internal/domain"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord(id string, at time.Time) domain.PredictionRecord {
	return domain.PredictionRecord{
		ID:           id,
		CreatedAt:    at,
		ModelVersion: "rf-1",
		Features: domain.FeatureVector{
			Names:  []string{"distance", "Delivery_person_Age"},
			Values: []float64{4.2, 31},
		},
		Minutes:   42.5,
		Formatted: "0 hours and 42 minutes",
	}
}

func TestSQLPredictionLogRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	rec := testRecord("6f1c7c1e-0000-4000-8000-000000000001", at)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO predictions")).
		WithArgs(rec.ID, at, "rf-1",
			`[{"name":"distance","value":4.2},{"name":"Delivery_person_Age","value":31}]`,
			42.5, "0 hours and 42 minutes").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewSQLPredictionLog(db).Record(context.Background(), rec)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLPredictionLogRecordError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO predictions")).
		WillReturnError(errors.New("connection reset"))

	err = NewSQLPredictionLog(db).Record(context.Background(), testRecord("id-1", time.Now()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id-1")
}

func TestSQLPredictionLogRecordRequiresID(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewSQLPredictionLog(db).Record(context.Background(), testRecord("", time.Now()))
	assert.Error(t, err)
}

func TestSQLPredictionLogRecent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "created_at", "model_version", "features", "minutes", "formatted"}).
		AddRow("id-2", at.Add(time.Minute), "rf-1", []byte(`[{"name":"a","value":1}]`), 30.0, "0 hours and 30 minutes").
		AddRow("id-1", at, "rf-1", []byte(`[{"name":"a","value":2}]`), 90.0, "1 hours and 30 minutes")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, created_at, model_version, features, minutes, formatted")).
		WithArgs(2).
		WillReturnRows(rows)

	recs, err := NewSQLPredictionLog(db).Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "id-2", recs[0].ID)
	assert.Equal(t, []string{"a"}, recs[0].Features.Names)
	assert.Equal(t, []float64{2}, recs[1].Features.Values)
	assert.Equal(t, 90.0, recs[1].Minutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLPredictionLogRecentBadFeatures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "created_at", "model_version", "features", "minutes", "formatted"}).
		AddRow("id-1", time.Now(), "rf-1", []byte(`{not json`), 30.0, "0 hours and 30 minutes")
	mock.ExpectQuery("SELECT").WithArgs(5).WillReturnRows(rows)

	_, err = NewSQLPredictionLog(db).Recent(context.Background(), 5)
	assert.Error(t, err)
}

func TestSQLPredictionLogRecentZeroLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	recs, err := NewSQLPredictionLog(db).Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchemaPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS predictions")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_predictions_created_at")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS estimate_cache")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, InitSchema(context.Background(), db, Postgres))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInitSchemaUnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	assert.Error(t, InitSchema(context.Background(), db, Dialect("oracle")))
	assert.Error(t, InitSchema(context.Background(), nil, Postgres))
}
