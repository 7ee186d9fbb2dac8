package service

import (
	"errors"

	"homepage-go/internal/api/dto"
	"homepage-go/internal/model"
	"homepage-go/pkg/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNameTaken      = errors.New("用户名已被占用")
	ErrInvalidCredentials = errors.New("用户名或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
)

type AuthService struct {
	users userStore
}

func NewAuthService(users userStore) *AuthService {
	return &AuthService{users: users}
}

// Register 注册用户
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthData, error) {
	exists, err := s.users.ExistsByUserName(req.UserName)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserNameTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserName: req.UserName,
		Password: hash,
		Nickname: req.Nickname,
		UserRole: "user",
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	return s.buildAuthData(user)
}

// Login 登录
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthData, error) {
	user, err := s.users.GetByUserName(req.UserName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.buildAuthData(user)
}

// GetUser 获取用户信息
func (s *AuthService) GetUser(userID int64) (*dto.UserInfo, error) {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	info := toUserInfo(user)
	return &info, nil
}

func (s *AuthService) buildAuthData(user *model.User) (*dto.AuthData, error) {
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &dto.AuthData{Token: token, User: toUserInfo(user)}, nil
}

func toUserInfo(user *model.User) dto.UserInfo {
	return dto.UserInfo{
		ID:       user.ID,
		UserName: user.UserName,
		Nickname: user.Nickname,
		Avatar:   user.Avatar,
		UserRole: user.UserRole,
	}
}
