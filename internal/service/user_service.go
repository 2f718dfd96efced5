package service

import (
	"context"
	"errors"

	"github.com/haierkeys/block-note-service/internal/domain"
	"github.com/haierkeys/block-note-service/internal/dto"
	"github.com/haierkeys/block-note-service/pkg/app"
	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/timex"
	"github.com/haierkeys/block-note-service/pkg/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 用户服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserRegisterRequest, clientIP string) (*User, error)

	// Login 用户登录，account 支持邮箱或用户名
	Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*User, error)

	// ChangePassword 修改密码
	ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*User, error)
}

// User 用户响应对象
type User struct {
	UID       int64      `json:"uid"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Nickname  string     `json:"nickname"`
	Avatar    string     `json:"avatar"`
	Token     string     `json:"token,omitempty"`
	CreatedAt timex.Time `json:"createdAt"`
	UpdatedAt timex.Time `json:"updatedAt"`
}

type userService struct {
	userRepo     domain.UserRepository
	tokenManager app.TokenManager
	config       *Config
	logger       *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(
	userRepo domain.UserRepository,
	tokenManager app.TokenManager,
	config *Config,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		tokenManager: tokenManager,
		config:       config,
		logger:       logger,
	}
}

func userToDTO(d *domain.User) *User {
	if d == nil {
		return nil
	}
	return &User{
		UID:       d.UID,
		Email:     d.Email,
		Username:  d.Username,
		Nickname:  d.Nickname,
		Avatar:    d.Avatar,
		CreatedAt: timex.Time(d.CreatedAt),
		UpdatedAt: timex.Time(d.UpdatedAt),
	}
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserRegisterRequest, clientIP string) (*User, error) {
	if s.config == nil || !s.config.RegisterIsEnable {
		return nil, code.ErrorUserRegisterDisabled
	}

	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserNameInvalid
	}
	if params.Password != params.ConfirmPassword {
		return nil, code.ErrorUserPasswordNotMatch
	}

	emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if emailUser != nil {
		return nil, code.ErrorUserEmailExists
	}

	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if nameUser != nil {
		return nil, code.ErrorUserNameExists
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Email:    params.Email,
		Username: params.Username,
		Nickname: params.Nickname,
		Password: password,
	})
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}

	s.logger.Info("user registered",
		zap.Int64("uid", user.UID), zap.String("username", user.Username))

	result := userToDTO(user)
	token, err := s.tokenManager.Generate(user.UID, user.Nickname, clientIP)
	if err != nil {
		return nil, code.ErrorUserTokenGenerate.WithDetails(err.Error())
	}
	result.Token = token
	return result, nil
}

// findByAccount resolves an account string to a user, email first then
// username. Lookup misses come back as nil without an error so the
// caller can answer uniformly.
// findByAccount 依次按邮箱与用户名解析账号
func (s *userService) findByAccount(ctx context.Context, account string) (*domain.User, error) {
	if util.IsValidEmail(account) {
		user, err := s.userRepo.GetByEmail(ctx, account)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if user != nil {
			return user, nil
		}
	}
	user, err := s.userRepo.GetByUsername(ctx, account)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return user, nil
}

// Login 用户登录。账号不存在与密码错误统一返回登录失败，
// 不泄露账号是否存在
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest, clientIP string) (*User, error) {
	user, err := s.findByAccount(ctx, params.Account)
	if err != nil {
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	if user == nil || !user.IsActive() {
		return nil, code.ErrorUserLoginFailed
	}
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginFailed
	}

	token, err := s.tokenManager.Generate(user.UID, user.Nickname, clientIP)
	if err != nil {
		return nil, code.ErrorUserTokenGenerate.WithDetails(err.Error())
	}

	result := userToDTO(user)
	result.Token = token
	return result, nil
}

// ChangePassword 修改密码
func (s *userService) ChangePassword(ctx context.Context, uid int64, params *dto.UserChangePasswordRequest) error {
	if params.Password != params.ConfirmPassword {
		return code.ErrorUserPasswordNotMatch
	}

	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotExist
		}
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if !util.CheckPasswordHash(user.Password, params.OldPassword) {
		return code.ErrorUserOldPasswordFailed
	}

	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	if err := s.userRepo.UpdatePassword(ctx, password, uid); err != nil {
		return code.ErrorDBQuery.WithDetails(err.Error())
	}
	return nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*User, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotExist
		}
		return nil, code.ErrorDBQuery.WithDetails(err.Error())
	}
	return userToDTO(user), nil
}

var _ UserService = (*userService)(nil)
