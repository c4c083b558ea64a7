package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/pkg/pagination"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type RegressionModelRepository interface {
	// CreateVersion assigns the next version number for m.Name and inserts m.
	// When m.Active is set, other versions with the same name are deactivated.
	CreateVersion(ctx context.Context, m *domain.RegressionModel) error
	GetActive(ctx context.Context, name string) (*domain.RegressionModel, error)
	List(ctx context.Context, filter domain.RegressionModelFilter) ([]domain.RegressionModel, error)
}

type regressionModelRepository struct {
	db *gorm.DB
}

func NewRegressionModelRepository(db *gorm.DB) RegressionModelRepository {
	return &regressionModelRepository{db: db}
}

func (r *regressionModelRepository) CreateVersion(ctx context.Context, m *domain.RegressionModel) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		latest, err := latestVersion(tx, m.Name)
		if err != nil {
			return err
		}
		m.Version = latest + 1

		if m.Active {
			if err := deactivate(tx, m.Name); err != nil {
				return err
			}
		}

		return tx.Create(m).Error
	})
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

// latestVersion returns the highest version registered under name, or 0.
func latestVersion(tx *gorm.DB, name string) (int, error) {
	var v int
	err := tx.Model(&domain.RegressionModel{}).
		Where("name = ?", name).
		Select("COALESCE(MAX(version), 0)").
		Scan(&v).Error
	return v, err
}

// deactivate clears the active flag on every version of name.
func deactivate(tx *gorm.DB, name string) error {
	return tx.Model(&domain.RegressionModel{}).
		Where("name = ? AND active = ?", name, true).
		Update("active", false).Error
}

// isUniqueViolation reports whether a concurrent insert took the same (name, version).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func (r *regressionModelRepository) GetActive(ctx context.Context, name string) (*domain.RegressionModel, error) {
	var m domain.RegressionModel
	err := r.db.WithContext(ctx).
		Where("name = ? AND active = ?", name, true).
		Order("version DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *regressionModelRepository) List(ctx context.Context, filter domain.RegressionModelFilter) ([]domain.RegressionModel, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")

	if filter.Name != "" {
		query = query.Where("name = ?", filter.Name)
	}

	cursor, err := pagination.DecodeCursor(filter.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var models []domain.RegressionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	return models, nil
}
