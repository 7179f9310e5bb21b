package service

import (
	"context"
	"strings"
	"testing"

	apperrors "github.com/go-demo/studyhub/internal/pkg/errors"
	"github.com/go-demo/studyhub/internal/repository"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func setupTestRoomService(t *testing.T) (*RoomService, *MessageService, *sqlx.DB, string) {
	t.Helper()

	dsn := "host=localhost port=5432 user=postgres password=postgres dbname=studyhub_test sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Skipf("Skipping test, could not connect to test database: %v", err)
	}

	roomRepo := repository.NewRoomRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	logger := zap.NewNop()

	roomService := NewRoomService(roomRepo, topicRepo, messageRepo, logger)
	messageService := NewMessageService(messageRepo, roomRepo, logger)
	prefix := repository.GenerateUniquePrefix()
	return roomService, messageService, db, prefix
}

func TestRoomService_Create(t *testing.T) {
	service, _, db, prefix := setupTestRoomService(t)
	defer db.Close()
	defer repository.CleanupTestDataByPrefix(t, db, prefix)

	host := repository.CreateIsolatedTestUser(t, db, prefix, "host")
	ctx := context.Background()

	room, err := service.Create(ctx, &CreateRoomInput{
		HostID:      host.ID,
		Name:        prefix + "_study",
		TopicName:   prefix + "_golang",
		Description: "weekly reading",
	})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}

	if room.ID == "" {
		t.Error("Expected room ID to be set")
	}
	if room.GetHostID() != host.ID {
		t.Errorf("Expected host %s, got %s", host.ID, room.GetHostID())
	}

	// The topic was created on the fly, a second room reuses it
	second, err := service.Create(ctx, &CreateRoomInput{
		HostID:    host.ID,
		Name:      prefix + "_study2",
		TopicName: prefix + "_golang",
	})
	if err != nil {
		t.Fatalf("Failed to create second room: %v", err)
	}
	if second.TopicID.String != room.TopicID.String {
		t.Error("Expected both rooms to share the same topic")
	}
}

func TestRoomService_Browse(t *testing.T) {
	service, messageService, db, prefix := setupTestRoomService(t)
	defer db.Close()
	defer repository.CleanupTestDataByPrefix(t, db, prefix)

	host := repository.CreateIsolatedTestUser(t, db, prefix, "host")
	ctx := context.Background()

	room, err := service.Create(ctx, &CreateRoomInput{
		HostID:    host.ID,
		Name:      prefix + "_algorithms",
		TopicName: prefix + "_CompSci",
	})
	if err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}

	if _, err := messageService.Post(ctx, room.ID, host.ID, "first post"); err != nil {
		t.Fatalf("Failed to post message: %v", err)
	}

	// Topic match is case-insensitive and fills both rooms and feed
	result, err := service.Browse(ctx, strings.ToLower(prefix)+"_compsci")
	if err != nil {
		t.Fatalf("Failed to browse: %v", err)
	}

	if result.RoomCount != 1 {
		t.Errorf("Expected room count 1, got %d", result.RoomCount)
	}
	if len(result.Rooms) != 1 || result.Rooms[0].ID != room.ID {
		t.Error("Expected the created room in the listing")
	}
	if len(result.RoomMessages) != 1 || result.RoomMessages[0].Body != "first post" {
		t.Error("Expected the posted message in the feed")
	}

	// A name-only match lists the room but not its messages
	result, err = service.Browse(ctx, prefix+"_algo")
	if err != nil {
		t.Fatalf("Failed to browse: %v", err)
	}
	if len(result.Rooms) != 1 {
		t.Errorf("Expected 1 room by name, got %d", len(result.Rooms))
	}
	if len(result.RoomMessages) != 0 {
		t.Errorf("Expected no feed entries for a name-only match, got %d", len(result.RoomMessages))
	}
}

func TestRoomService_GetDetail(t *testing.T) {
	service, messageService, db, prefix := setupTestRoomService(t)
	defer db.Close()
	defer repository.CleanupTestDataByPrefix(t, db, prefix)

	host := repository.CreateIsolatedTestUser(t, db, prefix, "host")
	ctx := context.Background()

	room, _ := service.Create(ctx, &CreateRoomInput{
		HostID:    host.ID,
		Name:      prefix + "_study",
		TopicName: prefix + "_golang",
	})

	_, _ = messageService.Post(ctx, room.ID, host.ID, "hello")

	detail, err := service.GetDetail(ctx, room.ID)
	if err != nil {
		t.Fatalf("Failed to get room detail: %v", err)
	}

	if detail.Room.ID != room.ID {
		t.Error("Expected the requested room")
	}
	if len(detail.Messages) != 1 {
		t.Errorf("Expected 1 message, got %d", len(detail.Messages))
	}
	if len(detail.Participants) != 1 {
		t.Errorf("Expected 1 participant, got %d", len(detail.Participants))
	}

	// Test not found
	_, err = service.GetDetail(ctx, "00000000-0000-0000-0000-000000000000")
	if err != apperrors.ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound, got %v", err)
	}
}

func TestRoomService_Update_HostOnly(t *testing.T) {
	service, _, db, prefix := setupTestRoomService(t)
	defer db.Close()
	defer repository.CleanupTestDataByPrefix(t, db, prefix)

	host := repository.CreateIsolatedTestUser(t, db, prefix, "host")
	intruder := repository.CreateIsolatedTestUser(t, db, prefix, "intruder")
	ctx := context.Background()

	room, _ := service.Create(ctx, &CreateRoomInput{
		HostID:    host.ID,
		Name:      prefix + "_study",
		TopicName: prefix + "_golang",
	})

	// A non-host cannot update
	_, err := service.Update(ctx, &UpdateRoomInput{
		RoomID:    room.ID,
		UserID:    intruder.ID,
		Name:      prefix + "_hijacked",
		TopicName: prefix + "_golang",
	})
	if err != apperrors.ErrNotRoomHost {
		t.Errorf("Expected ErrNotRoomHost, got %v", err)
	}

	// The host can, and a new topic name creates the topic
	updated, err := service.Update(ctx, &UpdateRoomInput{
		RoomID:      room.ID,
		UserID:      host.ID,
		Name:        prefix + "_renamed",
		TopicName:   prefix + "_rust",
		Description: "now about rust",
	})
	if err != nil {
		t.Fatalf("Failed to update room: %v", err)
	}
	if updated.Name != prefix+"_renamed" {
		t.Errorf("Expected renamed room, got %s", updated.Name)
	}
	if updated.TopicID.String == room.TopicID.String {
		t.Error("Expected the topic to change")
	}
	// Ownership never moves through Update
	if updated.GetHostID() != host.ID {
		t.Errorf("Expected host %s, got %s", host.ID, updated.GetHostID())
	}
}

func TestRoomService_GetForEdit_HostOnly(t *testing.T) {
	service, _, db, prefix := setupTestRoomService(t)
	defer db.Close()
	defer repository.CleanupTestDataByPrefix(t, db, prefix)

	host := repository.CreateIsolatedTestUser(t, db, prefix, "host")
	intruder := repository.CreateIsolatedTestUser(t, db, prefix, "intruder")
	ctx := context.Background()

	room, _ := service.Create(ctx, &CreateRoomInput{
		HostID:    host.ID,
		Name:      prefix + "_study",
		TopicName: prefix + "_golang",
	})

	// Even reading the edit form is host-only
	_, err := service.GetForEdit(ctx, room.ID, intruder.ID)
	if err != apperrors.ErrNotRoomHost {
		t.Errorf("Expected ErrNotRoomHost, got %v", err)
	}

	found, err := service.GetForEdit(ctx, room.ID, host.ID)
	if err != nil {
		t.Fatalf("Failed to get room for edit: %v", err)
	}
	if found.ID != room.ID {
		t.Error("Expected the requested room")
	}
}

func TestRoomService_Delete_HostOnly(t *testing.T) {
	service, _, db, prefix := setupTestRoomService(t)
	defer db.Close()
	defer repository.CleanupTestDataByPrefix(t, db, prefix)

	host := repository.CreateIsolatedTestUser(t, db, prefix, "host")
	intruder := repository.CreateIsolatedTestUser(t, db, prefix, "intruder")
	ctx := context.Background()

	room, _ := service.Create(ctx, &CreateRoomInput{
		HostID:    host.ID,
		Name:      prefix + "_study",
		TopicName: prefix + "_golang",
	})

	err := service.Delete(ctx, room.ID, intruder.ID)
	if err != apperrors.ErrNotRoomHost {
		t.Errorf("Expected ErrNotRoomHost, got %v", err)
	}

	if err := service.Delete(ctx, room.ID, host.ID); err != nil {
		t.Fatalf("Failed to delete room: %v", err)
	}

	_, err = service.GetDetail(ctx, room.ID)
	if err != apperrors.ErrRoomNotFound {
		t.Errorf("Expected ErrRoomNotFound after delete, got %v", err)
	}
}
