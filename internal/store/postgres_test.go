package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InfostatusAu/ai-olympics-charmander-sub000/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresFromPool(mock), mock
}

func TestPostgresCreateRun(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(pgxmock.AnyArg(), "acme", "comprehensive", "queued", pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	run, err := st.CreateRun(context.Background(), "acme", model.ModeComprehensive)
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, model.RunStatusQueued, run.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdateRunStatusNotFound(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE runs SET status").
		WithArgs("collecting", pgxmock.AnyArg(), "missing-id").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := st.UpdateRunStatus(context.Background(), "missing-id", model.RunStatusCollecting)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCompleteRun(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec("UPDATE runs SET status").
		WithArgs("complete", pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "run-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := st.CompleteRun(context.Background(), "run-1", sampleAggregate(), sampleEnhancement())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetRun(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	aggJSON := []byte(`{"company":"acme","quality_score":55,"data":{"apollo_data":{"k":"v"}}}`)
	rows := pgxmock.NewRows([]string{"id", "company", "mode", "status", "aggregate", "enhancement", "created_at", "updated_at"}).
		AddRow("run-1", "acme", "deep", "complete", aggJSON, []byte(nil), now, now)

	mock.ExpectQuery("SELECT id, company, mode, status").
		WithArgs("run-1").
		WillReturnRows(rows)

	run, err := st.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, model.ModeDeep, run.Mode)
	require.NotNil(t, run.Aggregate)
	assert.Equal(t, 55, run.Aggregate.QualityScore)
	assert.Nil(t, run.Enhancement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListRunsWithFilter(t *testing.T) {
	st, mock := newMockStore(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "company", "mode", "status", "aggregate", "enhancement", "created_at", "updated_at"}).
		AddRow("run-1", "acme", "quick", "complete", []byte(nil), []byte(nil), now, now)

	mock.ExpectQuery("SELECT id, company, mode, status, aggregate, enhancement, created_at, updated_at FROM runs WHERE status").
		WithArgs("complete").
		WillReturnRows(rows)

	runs, err := st.ListRuns(context.Background(), RunFilter{Status: model.RunStatusComplete})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "acme", runs[0].Company)
	assert.NoError(t, mock.ExpectationsWereMet())
}
