package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-demo/studyhub/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrTopicNotFound = errors.New("topic not found")
)

type TopicRepository struct {
	db *sqlx.DB
}

func NewTopicRepository(db *sqlx.DB) *TopicRepository {
	return &TopicRepository{db: db}
}

// GetOrCreateByName resolves a free-text topic name to a topic row,
// inserting one when none exists. The schema does not enforce name
// uniqueness, so two concurrent resolvers may both insert; the oldest
// row wins on subsequent lookups and duplicates are left alone.
func (r *TopicRepository) GetOrCreateByName(ctx context.Context, name string) (*model.Topic, error) {
	var topic model.Topic
	query := `SELECT * FROM topics WHERE name = $1 ORDER BY created_at LIMIT 1`

	err := r.db.GetContext(ctx, &topic, query, name)
	if err == nil {
		return &topic, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to look up topic: %w", err)
	}

	insert := `INSERT INTO topics (name) VALUES ($1) RETURNING id, name, created_at`
	if err := r.db.QueryRowxContext(ctx, insert, name).StructScan(&topic); err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}

	return &topic, nil
}

// GetByID retrieves a topic by ID
func (r *TopicRepository) GetByID(ctx context.Context, id string) (*model.Topic, error) {
	var topic model.Topic
	query := `SELECT * FROM topics WHERE id = $1`

	if err := r.db.GetContext(ctx, &topic, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTopicNotFound
		}
		return nil, fmt.Errorf("failed to get topic by id: %w", err)
	}

	return &topic, nil
}

// ListAll lists every topic
func (r *TopicRepository) ListAll(ctx context.Context) ([]*model.Topic, error) {
	query := `SELECT * FROM topics ORDER BY name, created_at`

	var topics []*model.Topic
	if err := r.db.SelectContext(ctx, &topics, query); err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}

	return topics, nil
}

// Search lists topics whose name contains the query (case-insensitive),
// with the number of rooms tagged by each. An empty query matches all.
func (r *TopicRepository) Search(ctx context.Context, query string) ([]*model.TopicWithRoomCount, error) {
	searchQuery := `
		SELECT t.*, COUNT(r.id) AS room_count
		FROM topics t
		LEFT JOIN rooms r ON r.topic_id = t.id
		WHERE t.name ILIKE $1
		GROUP BY t.id
		ORDER BY t.name, t.created_at`

	var topics []*model.TopicWithRoomCount
	pattern := "%" + query + "%"

	if err := r.db.SelectContext(ctx, &topics, searchQuery, pattern); err != nil {
		return nil, fmt.Errorf("failed to search topics: %w", err)
	}

	return topics, nil
}
