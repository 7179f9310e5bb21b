package service

import (
	"context"

	"github.com/go-demo/studyhub/internal/model"
	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo    *repository.UserRepository
	roomRepo    *repository.RoomRepository
	messageRepo *repository.MessageRepository
	topicRepo   *repository.TopicRepository
	logger      *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	roomRepo *repository.RoomRepository,
	messageRepo *repository.MessageRepository,
	topicRepo *repository.TopicRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		roomRepo:    roomRepo,
		messageRepo: messageRepo,
		topicRepo:   topicRepo,
		logger:      logger,
	}
}

// Profile is the user page payload: the user, the rooms they host,
// their messages, and every topic for the filter UI.
type Profile struct {
	User         *model.User
	Rooms        []*model.RoomWithTopic
	RoomMessages []*model.MessageWithRoom
	Topics       []*model.Topic
}

// GetProfile retrieves a user's profile page data
func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		s.logger.Error("Failed to get user", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	rooms, err := s.roomRepo.ListByHostID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list hosted rooms", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	messages, err := s.messageRepo.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list user messages", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	topics, err := s.topicRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list topics", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	return &Profile{
		User:         user,
		Rooms:        rooms,
		RoomMessages: messages,
		Topics:       topics,
	}, nil
}

// UpdateBio updates the current user's bio
func (s *UserService) UpdateBio(ctx context.Context, userID, bio string) error {
	if err := s.userRepo.UpdateBio(ctx, userID, bio); err != nil {
		if err == repository.ErrUserNotFound {
			return apperrors.ErrUserNotFound
		}
		s.logger.Error("Failed to update bio", zap.Error(err))
		return apperrors.ErrInternal
	}
	return nil
}

// DeleteAccount deletes the current user. The user's messages and
// participant rows go with them; rooms they hosted survive hostless.
func (s *UserService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if err == repository.ErrUserNotFound {
			return apperrors.ErrUserNotFound
		}
		s.logger.Error("Failed to delete user", zap.Error(err))
		return apperrors.ErrInternal
	}

	s.logger.Info("User account deleted", zap.String("user_id", userID))

	return nil
}
