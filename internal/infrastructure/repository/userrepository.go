package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ticketdesk/ticketdesk/internal/domain/user"
	vo "github.com/ticketdesk/ticketdesk/internal/domain/user/valueobjects"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/mappers"
	"github.com/ticketdesk/ticketdesk/internal/infrastructure/persistence/models"
	"github.com/ticketdesk/ticketdesk/internal/shared/db"
	apperrors "github.com/ticketdesk/ticketdesk/internal/shared/errors"
)

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := mappers.UserToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("email already registered", u.Email())
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return u.SetID(model.ID)
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return mappers.UserToEntity(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("email = ?", user.NormalizeEmail(email)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return mappers.UserToEntity(&model)
}

func (r *UserRepositoryImpl) ListActive(ctx context.Context) ([]*user.User, error) {
	var list []*models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	return mappers.UsersToEntities(list)
}

func (r *UserRepositoryImpl) ListActiveByRole(ctx context.Context, role vo.Role) ([]*user.User, error) {
	var list []*models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("is_active = ? AND role = ?", true, role.String()).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active users by role: %w", err)
	}
	return mappers.UsersToEntities(list)
}

func (r *UserRepositoryImpl) ListClients(ctx context.Context, managerID uint) ([]*user.User, error) {
	var list []*models.UserModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("manager_id = ?", managerID).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return mappers.UsersToEntities(list)
}

func (r *UserRepositoryImpl) UpdateManager(ctx context.Context, userID uint, managerID *uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		UpdateColumn("manager_id", managerID)
	if result.Error != nil {
		return fmt.Errorf("failed to update manager: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// MySQL reports 0 rows when the value is unchanged.
		var count int64
		if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if count == 0 {
			return apperrors.NewNotFoundError("user not found")
		}
	}
	return nil
}
