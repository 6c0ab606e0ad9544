package repository

import (
	"context"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByAddress(ctx context.Context, address string) (*entity.User, error)
	UpdateByID(ctx context.Context, id string, user entity.User) error
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByAddress(ctx context.Context, address string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "address=?", address).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, user entity.User) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Updates(user).Error
}
