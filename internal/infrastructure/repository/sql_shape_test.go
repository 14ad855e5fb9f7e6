package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB opens gorm with the postgres dialector over sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock, mockDB
}

func TestProductRepository_DecrementStock_IsConditional(t *testing.T) {
	t.Run("succeeds when a row is affected", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectExec(`UPDATE "products" SET "current_stock"=current_stock - \$1,"updated_at"=\$2 WHERE id = \$3 AND current_stock >= \$4`).
			WithArgs(3, sqlmock.AnyArg(), id, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := NewProductRepository(db).DecrementStock(context.Background(), id, 3)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports insufficient stock when no row matches", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "products" SET "current_stock"=current_stock - \$1`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := NewProductRepository(db).DecrementStock(context.Background(), uuid.New(), 11)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates driver errors", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "products"`).WillReturnError(sql.ErrConnDone)

		ok, err := NewProductRepository(db).DecrementStock(context.Background(), uuid.New(), 1)

		assert.ErrorIs(t, err, sql.ErrConnDone)
		assert.False(t, ok)
	})
}

func TestProductRepository_IncrementStock_Unbounded(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE "products" SET "current_stock"=current_stock \+ \$1,"updated_at"=\$2 WHERE id = \$3`).
		WithArgs(4, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewProductRepository(db).IncrementStock(context.Background(), id, 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleSequenceRepository_Next_IncrementsExistingCounter(t *testing.T) {
	db, mock, mockDB := newMockDB(t)
	defer mockDB.Close()

	mock.ExpectExec(`UPDATE "sale_sequences" SET "last_value"=last_value \+ 1 WHERE day = \$1`).
		WithArgs("20261017").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "sale_sequences" WHERE day = \$1`).
		WithArgs("20261017", 1).
		WillReturnRows(sqlmock.NewRows([]string{"day", "last_value"}).AddRow("20261017", 8))

	n, err := NewSaleSequenceRepository(db).Next(context.Background(), "20261017", "V-20261017-")

	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
