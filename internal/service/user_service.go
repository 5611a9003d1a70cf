package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/domain"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/model"
	"github.com/nsxzhou1114/realworld-api/pkg/auth"
	"github.com/nsxzhou1114/realworld-api/pkg/errcode"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserService 用户注册、登录与资料维护
type UserService struct {
	store
	tokens *auth.JWT
	hasher *auth.PasswordHasher
	logger *zap.SugaredLogger
}

func NewUserService(db *gorm.DB, tokens *auth.JWT, hasher *auth.PasswordHasher) *UserService {
	return &UserService{
		store:  newStore(db),
		tokens: tokens,
		hasher: hasher,
		logger: logger.GetSugaredLogger(),
	}
}

// Register 用户注册，成功后直接签发令牌
func (s *UserService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.User, error) {
	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	row := &model.User{
		ID:       uuid.New(),
		Email:    strings.TrimSpace(req.Email),
		Username: strings.TrimSpace(req.Username),
		Password: hashed,
	}
	err = s.transaction(ctx, func(tx *gorm.DB) error {
		if err := s.assertAvailable(ctx, tx, row.Email, row.Username, uuid.Nil); err != nil {
			return err
		}
		if err := s.users.Create(ctx, tx, row); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errcode.Conflict("Email or username is already taken")
			}
			return fmt.Errorf("创建用户失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("新用户注册: %s", row.Username)
	return s.view(row)
}

// Login 邮箱密码登录
func (s *UserService) Login(ctx context.Context, req dto.LoginRequest) (*dto.User, error) {
	row, err := s.users.FindByEmail(ctx, nil, req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errcode.InvalidCredentials("Invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(row.Password, req.Password) {
		return nil, errcode.InvalidCredentials("Invalid email or password")
	}
	return s.view(row)
}

// Current 当前登录用户，沿用请求携带的令牌
func (s *UserService) Current(ctx context.Context, userID uuid.UUID, token string) (*dto.User, error) {
	row, err := s.findByID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	view := domain.NewArena().AddUser(row).View(token)
	return &view, nil
}

// Update 部分更新当前用户，空白字段不修改
func (s *UserService) Update(ctx context.Context, userID uuid.UUID, token string, req dto.UserUpdateRequest) (*dto.User, error) {
	var row *model.User
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		var err error
		row, err = s.findByID(ctx, tx, userID)
		if err != nil {
			return err
		}

		email, username := strings.TrimSpace(req.Email), strings.TrimSpace(req.Username)
		if err := s.assertAvailable(ctx, tx, email, username, row.ID); err != nil {
			return err
		}

		var hashed string
		if strings.TrimSpace(req.Password) != "" {
			if hashed, err = s.hasher.Hash(req.Password); err != nil {
				return err
			}
		}
		row.Update(email, username, hashed, req.Bio, req.Image)

		if err := s.users.Save(ctx, tx, row); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errcode.Conflict("Email or username is already taken")
			}
			return fmt.Errorf("更新用户失败: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("用户资料已更新: %s", row.Username)
	view := domain.NewArena().AddUser(row).View(token)
	return &view, nil
}

// Logout 注销令牌
func (s *UserService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		if errors.Is(err, auth.ErrTokenInvalid) {
			return errcode.Unauthenticated("Invalid token")
		}
		return err
	}

	s.logger.Info("令牌已注销")
	return nil
}

func (s *UserService) findByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.User, error) {
	if id == uuid.Nil {
		return nil, errcode.Unauthenticated("Authentication required")
	}
	row, err := s.users.FindByID(ctx, tx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errcode.NotFound("User not found by id: `%s`", id)
	}
	return row, err
}

// assertAvailable 邮箱和用户名不能被 except 以外的用户占用，空值跳过
func (s *UserService) assertAvailable(ctx context.Context, tx *gorm.DB, email, username string, except uuid.UUID) error {
	if email != "" {
		taken, err := s.users.ExistsByEmail(ctx, tx, email, except)
		if err != nil {
			return err
		}
		if taken {
			return errcode.Conflict(fmt.Sprintf("Email `%s` is already registered", email))
		}
	}
	if username != "" {
		taken, err := s.users.ExistsByUsername(ctx, tx, username, except)
		if err != nil {
			return err
		}
		if taken {
			return errcode.Conflict(fmt.Sprintf("Username `%s` is already taken", username))
		}
	}
	return nil
}

func (s *UserService) view(row *model.User) (*dto.User, error) {
	token, err := s.tokens.Issue(row.ID)
	if err != nil {
		return nil, fmt.Errorf("签发令牌失败: %w", err)
	}
	view := domain.NewArena().AddUser(row).View(token)
	return &view, nil
}
