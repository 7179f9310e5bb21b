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
	ErrRoomNotFound = errors.New("room not found")
)

// roomListColumns is the shared projection for room listings: topic and
// host info plus the participant count, in the default activity order.
const roomListColumns = `
	r.*, t.name AS topic_name, u.username AS host_username,
	COUNT(p.user_id) AS participant_count`

const roomListJoins = `
	FROM rooms r
	LEFT JOIN topics t ON r.topic_id = t.id
	LEFT JOIN users u ON r.host_id = u.id
	LEFT JOIN room_participants p ON p.room_id = r.id`

const roomListGroupOrder = `
	GROUP BY r.id, t.name, u.username
	ORDER BY r.updated_at DESC, r.created_at DESC`

type RoomRepository struct {
	db *sqlx.DB
}

func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *model.Room) error {
	query := `
		INSERT INTO rooms (host_id, topic_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		room.HostID,
		room.TopicID,
		room.Name,
		room.Description,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

// GetByID retrieves a room by ID
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	query := `SELECT * FROM rooms WHERE id = $1`

	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room by id: %w", err)
	}

	return &room, nil
}

// GetByIDWithTopic retrieves a room with topic name, host username and
// participant count
func (r *RoomRepository) GetByIDWithTopic(ctx context.Context, id string) (*model.RoomWithTopic, error) {
	var room model.RoomWithTopic
	query := `SELECT` + roomListColumns + roomListJoins + `
		WHERE r.id = $1
		GROUP BY r.id, t.name, u.username`

	if err := r.db.GetContext(ctx, &room, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room with topic: %w", err)
	}

	return &room, nil
}

// Update updates a room's name, topic and description. The host column
// is never touched here; hosts are not reassignable.
func (r *RoomRepository) Update(ctx context.Context, room *model.Room) error {
	query := `
		UPDATE rooms
		SET name = $2, topic_id = $3, description = $4, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		room.ID,
		room.Name,
		room.TopicID,
		room.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// Touch bumps the room's updated_at so activity reorders listings
func (r *RoomRepository) Touch(ctx context.Context, id string) error {
	query := `UPDATE rooms SET updated_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to touch room: %w", err)
	}

	return nil
}

// Delete deletes a room. Messages and participant rows cascade with it.
func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM rooms WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrRoomNotFound
	}

	return nil
}

// Search lists rooms where the query is a case-insensitive substring of
// the topic name, the room name, or the description. An empty query
// matches every room. Results follow the default activity ordering.
func (r *RoomRepository) Search(ctx context.Context, query string) ([]*model.RoomWithTopic, error) {
	searchQuery := `SELECT` + roomListColumns + roomListJoins + `
		WHERE t.name ILIKE $1
		   OR r.name ILIKE $1
		   OR COALESCE(r.description, '') ILIKE $1` + roomListGroupOrder

	var rooms []*model.RoomWithTopic
	pattern := "%" + query + "%"

	if err := r.db.SelectContext(ctx, &rooms, searchQuery, pattern); err != nil {
		return nil, fmt.Errorf("failed to search rooms: %w", err)
	}

	return rooms, nil
}

// ListByHostID lists rooms hosted by a user
func (r *RoomRepository) ListByHostID(ctx context.Context, hostID string) ([]*model.RoomWithTopic, error) {
	query := `SELECT` + roomListColumns + roomListJoins + `
		WHERE r.host_id = $1` + roomListGroupOrder

	var rooms []*model.RoomWithTopic
	if err := r.db.SelectContext(ctx, &rooms, query, hostID); err != nil {
		return nil, fmt.Errorf("failed to list hosted rooms: %w", err)
	}

	return rooms, nil
}

// AddParticipant inserts the user into the room's participant set.
// The insert is idempotent: adding an existing participant is a no-op.
func (r *RoomRepository) AddParticipant(ctx context.Context, roomID, userID string) error {
	query := `
		INSERT INTO room_participants (room_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (room_id, user_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, roomID, userID); err != nil {
		return fmt.Errorf("failed to add participant: %w", err)
	}

	return nil
}

// ListParticipants lists the room's participants with user info
func (r *RoomRepository) ListParticipants(ctx context.Context, roomID string) ([]*model.ParticipantWithUser, error) {
	query := `
		SELECT p.*, u.username
		FROM room_participants p
		INNER JOIN users u ON p.user_id = u.id
		WHERE p.room_id = $1
		ORDER BY p.joined_at`

	var participants []*model.ParticipantWithUser
	if err := r.db.SelectContext(ctx, &participants, query, roomID); err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	return participants, nil
}

// IsParticipant checks if the user is in the room's participant set
func (r *RoomRepository) IsParticipant(ctx context.Context, roomID, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM room_participants WHERE room_id = $1 AND user_id = $2)`

	if err := r.db.GetContext(ctx, &exists, query, roomID, userID); err != nil {
		return false, fmt.Errorf("failed to check participant: %w", err)
	}

	return exists, nil
}

// CountParticipants counts the room's participants
func (r *RoomRepository) CountParticipants(ctx context.Context, roomID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM room_participants WHERE room_id = $1`

	if err := r.db.GetContext(ctx, &count, query, roomID); err != nil {
		return 0, fmt.Errorf("failed to count participants: %w", err)
	}

	return count, nil
}
