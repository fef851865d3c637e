package employee

import (
	"context"
	"database/sql"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/connection"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/search"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	FindPage(ctx context.Context, q ListQuery) ([]Employee, int64, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id string) error
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

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindPage(ctx context.Context, q ListQuery) ([]Employee, int64, error) {
	base := r.db.WithContext(ctx).Model(&Employee{})
	if q.Search != "" {
		p := search.ContainsPattern(q.Search)
		base = base.Where(
			"(name ILIKE ? OR email ILIKE ? OR department ILIKE ? OR role ILIKE ?)",
			p, p, p, p,
		)
	}
	if q.Department != "" {
		base = base.Where("department = ?", q.Department)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []Employee
	err := base.
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset()).
		Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
