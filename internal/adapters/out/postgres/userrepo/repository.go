package userrepo

import (
	"context"
	"errors"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/user"
	"shopsecure/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

// GormUserRepository implements ports.UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Add returns user.ErrEmailAlreadyRegistered when the unique email index rejects
// the row, so concurrent sign-ups with one address cannot both succeed.
func (r *GormUserRepository) Add(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return user.ErrEmailAlreadyRegistered
		}
		return err
	}

	return nil
}

func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	dto := fromDomain(u)
	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "password_hash", "role", "failed_logins").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *GormUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.take(r.db.WithContext(ctx), id.String(), "id = ?", id.Bytes())
}

func (r *GormUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	return r.take(r.db.WithContext(ctx), email.String(), "email = ?", email.String())
}

func (r *GormUserRepository) GetByEmailForUpdate(ctx context.Context, email kernel.Email) (*user.User, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.take(db, email.String(), "email = ?", email.String())
}

func (r *GormUserRepository) take(db *gorm.DB, what string, query string, args ...any) (*user.User, error) {
	var dto UserDTO
	if err := db.Where(query, args...).Take(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("user", what)
		}
		return nil, err
	}

	return toDomain(dto)
}
