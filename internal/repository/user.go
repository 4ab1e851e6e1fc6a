package repository

import (
	"errors"
	"fmt"

	"github.com/ryeonng/class-jpa-blog-v2/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrUsernameTaken 用户名已被注册
	ErrUsernameTaken = errors.New("username already taken")
	// ErrLoginFailed 用户名或密码不匹配
	ErrLoginFailed = errors.New("username or password mismatch")
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository 负责用户的持久化
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Save 保存新用户，用户名重复时返回 ErrUsernameTaken
func (r *UserRepository) Save(user *models.User) error {
	var count int64
	if err := r.DB.Model(&models.User{}).
		Where("username = ?", user.Username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("count username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}

	if err := r.DB.Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID 按主键查询用户
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// FindByUsernameAndPassword 按用户名和密码精确匹配。
// 任何未命中都折叠为 ErrLoginFailed。
func (r *UserRepository) FindByUsernameAndPassword(username, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.Where("username = ? AND password = ?", username, password).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoginFailed
		}
		return nil, fmt.Errorf("find user by credentials: %w", err)
	}
	return &user, nil
}

// UpdateByID 修改密码和邮箱，返回修改后的用户。
// id 来自已验证的会话，调用方保证该行存在。
func (r *UserRepository) UpdateByID(id uint, password, email string) (*models.User, error) {
	user, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	user.Password = password
	user.Email = email
	if err := r.DB.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
