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
	ErrMessageNotFound = errors.New("message not found")
)

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepository(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	query := `
		INSERT INTO messages (room_id, user_id, body)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		msg.RoomID,
		msg.UserID,
		msg.Body,
	).Scan(&msg.ID, &msg.CreatedAt, &msg.UpdatedAt)
}

// GetByID retrieves a message by ID
func (r *MessageRepository) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	query := `SELECT * FROM messages WHERE id = $1`

	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message by id: %w", err)
	}

	return &msg, nil
}

// GetByIDWithUser retrieves a message by ID with author info
func (r *MessageRepository) GetByIDWithUser(ctx context.Context, id string) (*model.MessageWithUser, error) {
	var msg model.MessageWithUser
	query := `
		SELECT m.*, u.username
		FROM messages m
		INNER JOIN users u ON m.user_id = u.id
		WHERE m.id = $1`

	if err := r.db.GetContext(ctx, &msg, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message with user: %w", err)
	}

	return &msg, nil
}

// Delete deletes a message
func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM messages WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrMessageNotFound
	}

	return nil
}

// ListByRoomID retrieves a room's messages in insertion order
func (r *MessageRepository) ListByRoomID(ctx context.Context, roomID string) ([]*model.MessageWithUser, error) {
	query := `
		SELECT m.*, u.username
		FROM messages m
		INNER JOIN users u ON m.user_id = u.id
		WHERE m.room_id = $1
		ORDER BY m.created_at`

	var messages []*model.MessageWithUser
	if err := r.db.SelectContext(ctx, &messages, query, roomID); err != nil {
		return nil, fmt.Errorf("failed to list room messages: %w", err)
	}

	return messages, nil
}

// ListByUserID retrieves a user's messages, newest first
func (r *MessageRepository) ListByUserID(ctx context.Context, userID string) ([]*model.MessageWithRoom, error) {
	query := `
		SELECT m.*, u.username, r.name AS room_name
		FROM messages m
		INNER JOIN users u ON m.user_id = u.id
		INNER JOIN rooms r ON m.room_id = r.id
		WHERE m.user_id = $1
		ORDER BY m.created_at DESC`

	var messages []*model.MessageWithRoom
	if err := r.db.SelectContext(ctx, &messages, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list user messages: %w", err)
	}

	return messages, nil
}

// ListByTopicQuery retrieves messages whose room's topic name contains
// the query (case-insensitive), newest first. This feed is independent
// of the room search filter: a message can appear here even when its
// room only matched by name or description, and vice versa. The topics
// join is inner: messages in topic-less rooms never appear, even for an
// empty query.
func (r *MessageRepository) ListByTopicQuery(ctx context.Context, query string) ([]*model.MessageWithRoom, error) {
	feedQuery := `
		SELECT m.*, u.username, r.name AS room_name
		FROM messages m
		INNER JOIN users u ON m.user_id = u.id
		INNER JOIN rooms r ON m.room_id = r.id
		INNER JOIN topics t ON r.topic_id = t.id
		WHERE t.name ILIKE $1
		ORDER BY m.created_at DESC`

	var messages []*model.MessageWithRoom
	pattern := "%" + query + "%"

	if err := r.db.SelectContext(ctx, &messages, feedQuery, pattern); err != nil {
		return nil, fmt.Errorf("failed to list topic feed: %w", err)
	}

	return messages, nil
}

// CountByRoomID counts messages in a room
func (r *MessageRepository) CountByRoomID(ctx context.Context, roomID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM messages WHERE room_id = $1`

	if err := r.db.GetContext(ctx, &count, query, roomID); err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}

	return count, nil
}
