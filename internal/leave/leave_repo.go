package leave

import (
	"context"
	"database/sql"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/connection"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/search"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *Leave) error
	FindPage(ctx context.Context, q ListQuery) ([]Leave, int64, error)
	FindByID(ctx context.Context, id string) (*Leave, error)
	UpdateStatus(ctx context.Context, l *Leave) error
	EmployeeName(ctx context.Context, employeeID string) (string, error)
	UpdateEmployeeName(ctx context.Context, employeeID, name string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.BindTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindPage(ctx context.Context, q ListQuery) ([]Leave, int64, error) {
	base := r.db.WithContext(ctx).Model(&Leave{})
	if q.Search != "" {
		p := search.ContainsPattern(q.Search)
		base = base.Where("(employee_name ILIKE ? OR type ILIKE ?)", p, p)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var leaves []Leave
	err := base.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&leaves).Error
	if err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Leave, error) {
	var l Leave
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) UpdateStatus(ctx context.Context, l *Leave) error {
	l.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"status":     l.Status,
			"updated_at": l.UpdatedAt,
		}).Error
}

// EmployeeName returns gorm.ErrRecordNotFound when the employee does not exist.
func (r *repository) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Limit(1).
		Pluck("name", &names).Error
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", gorm.ErrRecordNotFound
	}
	return names[0], nil
}

func (r *repository) UpdateEmployeeName(ctx context.Context, employeeID, name string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Leave{}).
		Where("employee_id = ? AND employee_name <> ?", employeeID, name).
		Updates(map[string]any{
			"employee_name": name,
			"updated_at":    time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}
