package gormstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jhoicas/inventario-ledger-api/internal/domain"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación GORM de UserRepository.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepository construye el adaptador.
func NewUserRepository(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un usuario.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	m := userModel{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapNotDuplicate("insert user", err, domain.ErrEmailAlreadyExists)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.take(ctx, "id = ?", id)
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.take(ctx, "LOWER(email) = ?", strings.ToLower(email))
}

// UpdateLastLogin registra la fecha del último login.
func (r *UserRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	err := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"last_login": at, "updated_at": at}).Error
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}

func (r *UserRepo) take(ctx context.Context, cond string, arg string) (*entity.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Take(&m).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return m.toEntity(), nil
}
