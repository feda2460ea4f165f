package repositories

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"dispatch-dashboard/internal/entities"
	apperrors "dispatch-dashboard/pkg/errors"
)

type StaffRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*entities.Staff, error)
	FindByID(ctx context.Context, id uint64) (*entities.Staff, error)
}

type StaffRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewStaffRepository(storage *pgxpool.Pool, logger *zap.Logger) StaffRepositoryInterface {
	return &StaffRepository{storage: storage, logger: logger}
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (*entities.Staff, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *StaffRepository) FindByID(ctx context.Context, id uint64) (*entities.Staff, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *StaffRepository) findOne(ctx context.Context, where sq.Eq) (*entities.Staff, error) {
	query, args, err := sq.Select("id", "email", "full_name", "password_hash").
		From("staff").
		Where(where).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	staff := &entities.Staff{}
	err = r.storage.QueryRow(ctx, query, args...).
		Scan(&staff.ID, &staff.Email, &staff.FullName, &staff.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, err
	}

	return staff, nil
}
