package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"gorm.io/gorm"
)

// UserRepository 用户仓储
type UserRepository struct {
	base
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{base{db: db}}
}

// FindByID 不存在时返回 gorm.ErrRecordNotFound
func (r *UserRepository) FindByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.conn(ctx, tx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, tx *gorm.DB, username string) (*model.User, error) {
	var user model.User
	if err := r.conn(ctx, tx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, tx *gorm.DB, email string) (*model.User, error) {
	var user model.User
	if err := r.conn(ctx, tx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDs 批量查询，缺失的ID直接忽略
func (r *UserRepository) FindByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*model.User, error) {
	var users []*model.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.conn(ctx, tx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ExistsByUsername 用户名是否被 except 以外的用户占用
func (r *UserRepository) ExistsByUsername(ctx context.Context, tx *gorm.DB, username string, except uuid.UUID) (bool, error) {
	return r.exists(ctx, tx, "username = ?", username, except)
}

// ExistsByEmail 邮箱是否被 except 以外的用户占用
func (r *UserRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string, except uuid.UUID) (bool, error) {
	return r.exists(ctx, tx, "email = ?", email, except)
}

func (r *UserRepository) exists(ctx context.Context, tx *gorm.DB, query string, value string, except uuid.UUID) (bool, error) {
	var count int64
	q := r.conn(ctx, tx).Model(&model.User{}).Where(query, value)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(ctx context.Context, tx *gorm.DB, user *model.User) error {
	return r.conn(ctx, tx).Create(user).Error
}

func (r *UserRepository) Save(ctx context.Context, tx *gorm.DB, user *model.User) error {
	return r.conn(ctx, tx).Save(user).Error
}
