package services

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "github.com/aihub/docqa-go/internal/errors"
	"github.com/aihub/docqa-go/internal/models"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserService 用户服务
type UserService struct {
	db       *gorm.DB
	validate *validator.Validate
}

// NewUserService 创建用户服务
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		db:       db,
		validate: validator.New(),
	}
}

// Register 注册新用户
func (s *UserService) Register(req RegisterRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.NewValidationError("注册参数无效").WithCause(err)
	}

	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? OR email = ?", req.Username, req.Email).
		Count(&count).Error; err != nil {
		return nil, apperrors.NewSystemError(apperrors.ErrCodeDatabaseError, "查询用户失败").WithCause(err)
	}
	if count > 0 {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeConflict, "用户名或邮箱已存在")
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewSystemError(apperrors.ErrCodeInternalServer, "密码加密失败").WithCause(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.NewSystemError(apperrors.ErrCodeDatabaseError, "创建用户失败").WithCause(err)
	}

	return user, nil
}

// Authenticate 校验用户名与密码
func (s *UserService) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewBusinessError(apperrors.ErrCodeUnauthorized, "用户名或密码错误")
		}
		return nil, apperrors.NewSystemError(apperrors.ErrCodeDatabaseError, "查询用户失败").WithCause(err)
	}

	if !CheckPassword(user.PasswordHash, password) {
		return nil, apperrors.NewBusinessError(apperrors.ErrCodeUnauthorized, "用户名或密码错误")
	}

	return &user, nil
}

// GetByID 按ID查询用户
func (s *UserService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user")
		}
		return nil, apperrors.NewSystemError(apperrors.ErrCodeDatabaseError, "查询用户失败").WithCause(err)
	}
	return &user, nil
}

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验密码
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
