package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/mesa-scheduler/internal/domain/reservation"
	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization failure", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"wrapped deadlock", errs.Wrap(&pgconn.PgError{Code: "40P01"}, "acquire booking lock"), true},
		{"unique violation", &pgconn.PgError{Code: "23505"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

func TestWrapMarksNotFound(t *testing.T) {
	assert.NoError(t, wrap(nil, "get reservation"))

	err := wrap(gorm.ErrRecordNotFound, "get reservation")
	assert.True(t, errs.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "get reservation")

	other := wrap(errors.New("connection reset"), "list tables")
	assert.False(t, errs.Is(other, domain.ErrNotFound))
	assert.True(t, errs.Is(other, ErrDatabase))
}

func TestStatusUpdateTouchesOnlyStatusColumns(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=mesa dbname=mesa sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)

	res := &models.Reservation{
		ID:           10,
		RestaurantID: 1,
		TableID:      1,
		LinkedTables: []uint{1, 2},
		Date:         "2026-10-20",
		SlotTime:     "20:00",
		Status:       models.ReservationConfirmed,
		Tags:         []string{},
	}

	sql := statusUpdate(db, res).Statement.SQL.String()

	for _, col := range statusColumns {
		assert.Contains(t, sql, `"`+col+`"`)
	}
	for _, col := range []string{"table_id", "linked_tables", "date", "slot_time", "party_size", "shift_id"} {
		assert.NotContains(t, sql, `"`+col+`"`)
	}
	assert.Contains(t, sql, "restaurant_id = ")
}
