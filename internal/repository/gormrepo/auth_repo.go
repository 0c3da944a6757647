// internal/repository/gormrepo/auth_repo.go
package gormrepo

import (
	"context"
	"time"

	"carsales-service/internal/domain/auth"

	"gorm.io/gorm"
)

// ========== Users ==========

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *auth.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*auth.User, error) {
	var u auth.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	var u auth.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context, filters *auth.UserListFilters) ([]auth.User, error) {
	q := r.db.WithContext(ctx)
	skip, limit := page(0, 0)
	if filters != nil {
		if filters.Role != nil {
			q = q.Where("role = ?", *filters.Role)
		}
		skip, limit = page(filters.Skip, filters.Limit)
	}
	var list []auth.User
	err := q.Order("id ASC").Offset(skip).Limit(limit).Find(&list).Error
	return list, translate(err)
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id int64, hash string) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(&auth.User{}).Where("id = ?", id).Update("password_hash", hash))
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return affectedOrNotFound(r.db.WithContext(ctx).Model(&auth.User{}).Where("id = ?", id).Update("is_active", active))
}

// ========== Revoked tokens ==========

type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Add(ctx context.Context, t *auth.BlacklistedToken) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *TokenRepository) Exists(ctx context.Context, jti string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&auth.BlacklistedToken{}).Where("jti = ?", jti).Count(&n).Error
	return n > 0, translate(err)
}

func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&auth.BlacklistedToken{})
	return res.RowsAffected, translate(res.Error)
}
