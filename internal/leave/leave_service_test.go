package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/kartikey1112/hrms-dashboard/internal/leave"
	leaveerrors "github.com/kartikey1112/hrms-dashboard/internal/leave/errors"
	leaveMock "github.com/kartikey1112/hrms-dashboard/internal/leave/mock"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/pagination"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leave.Service
	repo    *leaveMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := leaveMock.NewMockRepository(ctrl)
	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: leave.NewService(db, repo),
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.NewString()

	t.Run("success - name taken from employee and status defaults to pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			Type:       "Annual",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-03",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeName(ctx, employeeID).Return("Jane Roe", nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, l *leave.Leave) error {
				assert.Equal(t, "Jane Roe", l.EmployeeName)
				assert.Equal(t, leave.StatusPending, l.Status)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, "2026-03-01", resp.StartDate)
		assert.Equal(t, "2026-03-03", resp.EndDate)
		assert.Equal(t, employeeID, resp.EmployeeID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - end before start", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			Type:       "Sick",
			StartDate:  "2026-03-05",
			EndDate:    "2026-03-01",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative - unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().EmployeeName(ctx, employeeID).Return("", gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, leave.CreateLeaveRequest{
			EmployeeID: employeeID,
			Type:       "Sick",
			StartDate:  "2026-03-01",
			EndDate:    "2026-03-01",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_List(t *testing.T) {
	ctx := context.Background()
	q := leave.ListQuery{Search: "ann", Status: "Pending", Params: pagination.Params{Page: 1, Limit: 20}}

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, q).Return([]leave.Leave{{ID: uuid.New(), Type: "Annual"}}, int64(1), nil)

		res, err := deps.service.List(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Total)
		assert.Equal(t, "Annual", res.Leaves[0].Type)
	})

	t.Run("negative - upstream failure", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, q).Return(nil, int64(0), errors.New("timeout"))

		_, err := deps.service.List(ctx, q)
		assert.Equal(t, http.StatusInternalServerError, apperror.ToHTTP(err).Status)
	})
}

func TestLeaveService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success - pending to approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		l := &leave.Leave{ID: id, Status: leave.StatusPending}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(l, nil)
		deps.repo.EXPECT().UpdateStatus(ctx, l).Return(nil)

		resp, err := deps.service.UpdateStatus(ctx, id.String(), leave.StatusApproved)

		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative - already decided", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&leave.Leave{ID: id, Status: leave.StatusRejected}, nil)

		_, err := deps.service.UpdateStatus(ctx, id.String(), leave.StatusApproved)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})

	t.Run("negative - unknown leave", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateStatus(ctx, id, leave.StatusRejected)

		assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
	})
}

func TestLeaveService_SyncEmployeeName(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.repo.EXPECT().UpdateEmployeeName(ctx, "emp-1", "Jane Roe").Return(int64(3), nil)

	n, err := deps.service.SyncEmployeeName(ctx, "emp-1", "Jane Roe")

	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
