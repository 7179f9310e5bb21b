package service

import (
	"context"

	"github.com/go-demo/studyhub/internal/model"
	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/repository"
	"go.uber.org/zap"
)

type MessageService struct {
	messageRepo *repository.MessageRepository
	roomRepo    *repository.RoomRepository
	logger      *zap.Logger
}

func NewMessageService(
	messageRepo *repository.MessageRepository,
	roomRepo *repository.RoomRepository,
	logger *zap.Logger,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		roomRepo:    roomRepo,
		logger:      logger,
	}
}

// Post creates a message in a room and adds the poster to the room's
// participant set. The body is stored as submitted; an empty body is
// accepted. Posting counts as room activity, so the room's updated_at
// is bumped to keep listings ordered by freshness.
func (s *MessageService) Post(ctx context.Context, roomID, userID, body string) (*model.Message, error) {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if err == repository.ErrRoomNotFound {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	msg := &model.Message{
		RoomID: roomID,
		UserID: userID,
		Body:   body,
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to create message", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	if err := s.roomRepo.AddParticipant(ctx, roomID, userID); err != nil {
		s.logger.Error("Failed to add participant", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	if err := s.roomRepo.Touch(ctx, roomID); err != nil {
		s.logger.Warn("Failed to bump room activity", zap.Error(err))
	}

	s.logger.Info("Message posted",
		zap.String("message_id", msg.ID),
		zap.String("room_id", roomID),
		zap.String("user_id", userID),
	)

	return msg, nil
}

// GetByID retrieves a message with author info
func (s *MessageService) GetByID(ctx context.Context, id string) (*model.MessageWithUser, error) {
	msg, err := s.messageRepo.GetByIDWithUser(ctx, id)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			return nil, apperrors.ErrMessageNotFound
		}
		s.logger.Error("Failed to get message", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	return msg, nil
}

// Delete deletes a message. Author only. The author stays in the
// room's participant set; membership is additive only.
func (s *MessageService) Delete(ctx context.Context, messageID, userID string) error {
	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			return apperrors.ErrMessageNotFound
		}
		s.logger.Error("Failed to get message", zap.Error(err))
		return apperrors.ErrInternal
	}

	if msg.UserID != userID {
		return apperrors.ErrNotMessageAuthor
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		s.logger.Error("Failed to delete message", zap.Error(err))
		return apperrors.ErrInternal
	}

	s.logger.Info("Message deleted",
		zap.String("message_id", messageID),
		zap.String("deleted_by", userID),
	)

	return nil
}
