package service

import (
	"context"

	"github.com/go-demo/studyhub/internal/model"
	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/repository"
	"go.uber.org/zap"
)

type TopicService struct {
	topicRepo *repository.TopicRepository
	logger    *zap.Logger
}

func NewTopicService(topicRepo *repository.TopicRepository, logger *zap.Logger) *TopicService {
	return &TopicService{
		topicRepo: topicRepo,
		logger:    logger,
	}
}

// Search lists topics matching the query with their room counts. An
// empty query lists every topic.
func (s *TopicService) Search(ctx context.Context, query string) ([]*model.TopicWithRoomCount, error) {
	topics, err := s.topicRepo.Search(ctx, query)
	if err != nil {
		s.logger.Error("Failed to search topics", zap.Error(err))
		return nil, apperrors.ErrInternal
	}
	return topics, nil
}
