package service

import (
	"context"
	"database/sql"

	"github.com/go-demo/studyhub/internal/model"
	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/repository"
	"go.uber.org/zap"
)

type RoomService struct {
	roomRepo    *repository.RoomRepository
	topicRepo   *repository.TopicRepository
	messageRepo *repository.MessageRepository
	logger      *zap.Logger
}

func NewRoomService(
	roomRepo *repository.RoomRepository,
	topicRepo *repository.TopicRepository,
	messageRepo *repository.MessageRepository,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		roomRepo:    roomRepo,
		topicRepo:   topicRepo,
		messageRepo: messageRepo,
		logger:      logger,
	}
}

// BrowseResult is the home listing payload: the filtered rooms, every
// topic for the filter UI, the filtered room count, and the activity
// feed of messages matched by topic name.
type BrowseResult struct {
	Rooms        []*model.RoomWithTopic
	Topics       []*model.Topic
	RoomCount    int
	RoomMessages []*model.MessageWithRoom
}

// Browse lists rooms where the query matches topic name, room name or
// description, plus the topic-matched message feed. An empty query
// matches everything. The two filters are independent: the feed can
// contain messages from rooms absent from the room list and vice versa.
func (s *RoomService) Browse(ctx context.Context, query string) (*BrowseResult, error) {
	rooms, err := s.roomRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search rooms", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	topics, err := s.topicRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list topics", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	roomMessages, err := s.messageRepo.ListByTopicQuery(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list topic feed", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	return &BrowseResult{
		Rooms:        rooms,
		Topics:       topics,
		RoomCount:    len(rooms),
		RoomMessages: roomMessages,
	}, nil
}

// CreateRoomInput represents room creation input. TopicName is free
// text resolved get-or-create; HostID is always the current user.
type CreateRoomInput struct {
	HostID      string
	Name        string
	TopicName   string
	Description string
}

// Create creates a new room hosted by the current user
func (s *RoomService) Create(ctx context.Context, input *CreateRoomInput) (*model.Room, error) {
	topic, err := s.topicRepo.GetOrCreateByName(ctx, input.TopicName)
	if err != nil {
		s.logger.Error("Failed to resolve topic", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	room := &model.Room{
		HostID:  sql.NullString{String: input.HostID, Valid: true},
		TopicID: sql.NullString{String: topic.ID, Valid: true},
		Name:    input.Name,
	}
	if input.Description != "" {
		room.Description = sql.NullString{String: input.Description, Valid: true}
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		s.logger.Error("Failed to create room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.ID),
		zap.String("name", room.Name),
		zap.String("host_id", input.HostID),
	)

	return room, nil
}

// RoomDetail is the room page payload: the room with topic/host info,
// its messages in insertion order, and its participant set.
type RoomDetail struct {
	Room         *model.RoomWithTopic
	Messages     []*model.MessageWithUser
	Participants []*model.ParticipantWithUser
}

// GetDetail retrieves a room with its messages and participants
func (s *RoomService) GetDetail(ctx context.Context, roomID string) (*RoomDetail, error) {
	room, err := s.roomRepo.GetByIDWithTopic(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	messages, err := s.messageRepo.ListByRoomID(ctx, roomID)
	if err != nil {
		s.logger.Error("Failed to list room messages", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	participants, err := s.roomRepo.ListParticipants(ctx, roomID)
	if err != nil {
		s.logger.Error("Failed to list participants", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	return &RoomDetail{
		Room:         room,
		Messages:     messages,
		Participants: participants,
	}, nil
}

// UpdateRoomInput represents room update input. The host is not
// reassignable; UserID is only used for the authorization check.
type UpdateRoomInput struct {
	RoomID      string
	UserID      string
	Name        string
	TopicName   string
	Description string
}

// Update applies the creation field set to an existing room. Only the
// host may update, even for reads of the prefilled form.
func (s *RoomService) Update(ctx context.Context, input *UpdateRoomInput) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, input.RoomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	if !room.IsHostedBy(input.UserID) {
		return nil, apperrors.ErrNotRoomHost
	}

	topic, err := s.topicRepo.GetOrCreateByName(ctx, input.TopicName)
	if err != nil {
		s.logger.Error("Failed to resolve topic", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	room.Name = input.Name
	room.TopicID = sql.NullString{String: topic.ID, Valid: true}
	room.Description = sql.NullString{String: input.Description, Valid: input.Description != ""}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		s.logger.Error("Failed to update room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	return room, nil
}

// GetForEdit fetches a room for the host's prefilled edit form. The
// host-only check applies to this read as well.
func (s *RoomService) GetForEdit(ctx context.Context, roomID, userID string) (*model.RoomWithTopic, error) {
	room, err := s.roomRepo.GetByIDWithTopic(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return nil, apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return nil, apperrors.ErrInternal
	}

	if !room.IsHostedBy(userID) {
		return nil, apperrors.ErrNotRoomHost
	}

	return room, nil
}

// Delete deletes a room. Host only; messages cascade with the room.
func (s *RoomService) Delete(ctx context.Context, roomID, userID string) error {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return apperrors.ErrRoomNotFound
		}
		s.logger.Error("Failed to get room", zap.Error(err))
		return apperrors.ErrInternal
	}

	if !room.IsHostedBy(userID) {
		return apperrors.ErrNotRoomHost
	}

	if err := s.roomRepo.Delete(ctx, roomID); err != nil {
		s.logger.Error("Failed to delete room", zap.Error(err))
		return apperrors.ErrInternal
	}

	s.logger.Info("Room deleted",
		zap.String("room_id", roomID),
		zap.String("deleted_by", userID),
	)

	return nil
}
