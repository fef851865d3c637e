package connection_test

import (
	"context"
	"testing"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/connection"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestBindTx_RunsStatementsInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE leaves SET employee_name`).
		WithArgs("Jane", "e-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	bound := connection.BindTx(gormDB, tx)
	res := bound.WithContext(context.Background()).
		Exec("UPDATE leaves SET employee_name = ? WHERE employee_id = ?", "Jane", "e-1")
	require.NoError(t, res.Error)
	assert.Equal(t, int64(2), res.RowsAffected)

	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBindTx_NilTxReturnsSameHandle(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	assert.Same(t, gormDB, connection.BindTx(gormDB, nil))
}
