package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopdesk/backend/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSequenceRepository(t *testing.T) (*GormSequenceRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSequenceRepository(gormDB), mock, mockDB
}

func TestGormSequenceRepository_NextSQL(t *testing.T) {
	fy := billing.NewFinancialYear(2025)

	t.Run("advances the counter with a single update", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "invoice_sequences" SET "last_sequence"=last_sequence \+ 1,"updated_at"=\$1 WHERE financial_year = \$2 AND prefix = \$3`).
			WithArgs(sqlmock.AnyArg(), "25-26", "AGT").
			WillReturnResult(sqlmock.NewResult(0, 1))

		mock.ExpectQuery(`SELECT \* FROM "invoice_sequences" WHERE financial_year = \$1 AND prefix = \$2 ORDER BY .* LIMIT .*`).
			WithArgs("25-26", "AGT", 1).
			WillReturnRows(sqlmock.NewRows([]string{"financial_year", "prefix", "last_sequence"}).
				AddRow("25-26", "AGT", 8))

		seq, err := repo.Next(context.Background(), fy, "AGT")
		require.NoError(t, err)
		assert.Equal(t, 8, seq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing counter row triggers the seed path", func(t *testing.T) {
		repo, mock, mockDB := newMockSequenceRepository(t)
		defer mockDB.Close()

		mock.ExpectExec(`UPDATE "invoice_sequences"`).
			WithArgs(sqlmock.AnyArg(), "25-26", "AGT").
			WillReturnResult(sqlmock.NewResult(0, 0))

		mock.ExpectQuery(`SELECT "invoice_number" FROM "sales" WHERE invoice_number LIKE \$1`).
			WithArgs("25-26/AGT-%").
			WillReturnRows(sqlmock.NewRows([]string{"invoice_number"}).
				AddRow("25-26/AGT-044").
				AddRow("25-26/AGT-045").
				AddRow("garbage"))

		mock.ExpectExec(`INSERT INTO "invoice_sequences"`).
			WithArgs("25-26", "AGT", 46, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		seq, err := repo.Next(context.Background(), fy, "AGT")
		require.NoError(t, err)
		assert.Equal(t, 46, seq)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
