package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nsxzhou1114/realworld-api/internal/domain"
	"github.com/nsxzhou1114/realworld-api/internal/dto"
	"github.com/nsxzhou1114/realworld-api/internal/logger"
	"github.com/nsxzhou1114/realworld-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileService 用户资料与关注
type ProfileService struct {
	store
	logger *zap.SugaredLogger
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		store:  newStore(db),
		logger: logger.GetSugaredLogger(),
	}
}

// Get 查看者视角下的用户资料
func (s *ProfileService) Get(ctx context.Context, viewerID uuid.UUID, username string) (*dto.Profile, error) {
	arena := domain.NewArena()
	viewer, err := s.viewer(ctx, nil, arena, viewerID)
	if err != nil {
		return nil, err
	}
	target, err := s.userByName(ctx, nil, arena, username)
	if err != nil {
		return nil, err
	}

	profile := target.ProjectProfile(viewer)
	return &profile, nil
}

// Follow 关注用户，重复关注无副作用
func (s *ProfileService) Follow(ctx context.Context, actorID uuid.UUID, username string) (*dto.Profile, error) {
	return s.change(ctx, actorID, username, (*domain.User).Follow)
}

// Unfollow 取消关注
func (s *ProfileService) Unfollow(ctx context.Context, actorID uuid.UUID, username string) (*dto.Profile, error) {
	return s.change(ctx, actorID, username, (*domain.User).Unfollow)
}

func (s *ProfileService) change(ctx context.Context, actorID uuid.UUID, username string, apply func(*domain.User, *domain.User) dto.Profile) (*dto.Profile, error) {
	var (
		profile dto.Profile
		changes repository.Changes
	)
	err := s.transaction(ctx, func(tx *gorm.DB) error {
		arena := domain.NewArena()
		actor, err := s.actor(ctx, tx, arena, actorID)
		if err != nil {
			return err
		}
		target, err := s.userByName(ctx, tx, arena, username)
		if err != nil {
			return err
		}

		profile = apply(actor, target)
		changes, err = s.relations.Flush(ctx, tx, arena.Graph)
		return err
	})
	if err != nil {
		return nil, err
	}

	changes.Observe()
	s.logger.Infof("关注状态已更新: %s -> %s following=%t", actorID, profile.Username, profile.Following)
	return &profile, nil
}
