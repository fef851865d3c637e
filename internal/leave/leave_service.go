package leave

import (
	"context"
	"database/sql"
	"errors"
	"time"

	leaveerrors "github.com/kartikey1112/hrms-dashboard/internal/leave/errors"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, q ListQuery) (ListResult, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	UpdateStatus(ctx context.Context, id, status string) (LeaveResponse, error)
	SyncEmployeeName(ctx context.Context, employeeID, name string) (int64, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, startDate, endDate, err := validateCreateRequest(req)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	name, err := qtx.EmployeeName(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		log.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if req.EmployeeName != "" {
		name = req.EmployeeName
	}

	status := req.Status
	if status == "" {
		status = StatusPending
	}

	l := &Leave{
		ID:           uuid.New(),
		EmployeeID:   employeeID,
		EmployeeName: name,
		Type:         req.Type,
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       status,
	}

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, q ListQuery) (ListResult, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	rows, total, err := s.repo.FindPage(ctx, q)
	if err != nil {
		log.Error("list leaves failed", zap.Error(err))
		return ListResult{}, leaveerrors.Query(err)
	}
	return ListResult{Leaves: mapToListResponse(rows), Total: total}, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("target_status", status),
	)

	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err)
	}
	if !isAllowedStatusTransition(l.Status, status) {
		log.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = status
	if err := qtx.UpdateStatus(ctx, l); err != nil {
		log.Error("transition leave status persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("transition leave status commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	log.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", status),
	)
	return mapToResponse(*l), nil
}

func (s *service) SyncEmployeeName(ctx context.Context, employeeID, name string) (int64, error) {
	n, err := s.repo.UpdateEmployeeName(ctx, employeeID, name)
	if err != nil {
		s.logger.Error("sync employee name failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return 0, err
	}
	return n, nil
}

func isAllowedStatusTransition(current, target string) bool {
	return current == StatusPending && (target == StatusApproved || target == StatusRejected)
}

func validateCreateRequest(req CreateLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrEmployeeNotFound
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	return LeaveResponse{
		ID:           l.ID.String(),
		EmployeeID:   l.EmployeeID.String(),
		EmployeeName: l.EmployeeName,
		Type:         l.Type,
		StartDate:    l.StartDate.Format(dateLayout),
		EndDate:      l.EndDate.Format(dateLayout),
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
