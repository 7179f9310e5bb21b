package repository

import (
	"context"
	"testing"

	"github.com/go-demo/studyhub/internal/model"
	_ "github.com/lib/pq"
)

const messageNonExistentUUID = "00000000-0000-0000-0000-000000000000"

func TestMessageRepository_Create(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	msg := &model.Message{
		RoomID: room.ID,
		UserID: user.ID,
		Body:   "hello room",
	}

	err := repo.Create(ctx, msg)
	if err != nil {
		t.Fatalf("Failed to create message: %v", err)
	}

	if msg.ID == "" {
		t.Error("Expected message ID to be set")
	}
	if msg.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestMessageRepository_Create_EmptyBody(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	// Empty bodies are stored as-is
	msg := &model.Message{RoomID: room.ID, UserID: user.ID, Body: ""}
	if err := repo.Create(ctx, msg); err != nil {
		t.Fatalf("Expected empty body to be accepted: %v", err)
	}

	found, err := repo.GetByID(ctx, msg.ID)
	if err != nil {
		t.Fatalf("Failed to get message: %v", err)
	}
	if found.Body != "" {
		t.Errorf("Expected empty body, got %q", found.Body)
	}
}

func TestMessageRepository_GetByIDWithUser(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	msg := &model.Message{RoomID: room.ID, UserID: user.ID, Body: "hello"}
	_ = repo.Create(ctx, msg)

	found, err := repo.GetByIDWithUser(ctx, msg.ID)
	if err != nil {
		t.Fatalf("Failed to get message with user: %v", err)
	}
	if found.Username != user.Username {
		t.Errorf("Expected username %s, got %s", user.Username, found.Username)
	}

	// Test not found
	_, err = repo.GetByIDWithUser(ctx, messageNonExistentUUID)
	if err != ErrMessageNotFound {
		t.Errorf("Expected ErrMessageNotFound, got %v", err)
	}
}

func TestMessageRepository_Delete(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	roomRepo := NewRoomRepository(db)
	ctx := context.Background()

	msg := &model.Message{RoomID: room.ID, UserID: user.ID, Body: "hello"}
	_ = repo.Create(ctx, msg)
	_ = roomRepo.AddParticipant(ctx, room.ID, user.ID)

	err := repo.Delete(ctx, msg.ID)
	if err != nil {
		t.Fatalf("Failed to delete message: %v", err)
	}

	_, err = repo.GetByID(ctx, msg.ID)
	if err != ErrMessageNotFound {
		t.Errorf("Expected ErrMessageNotFound after delete, got %v", err)
	}

	// Deleting a message does not remove the author from participants
	isParticipant, _ := roomRepo.IsParticipant(ctx, room.ID, user.ID)
	if !isParticipant {
		t.Error("Expected author to remain a participant after message delete")
	}

	// Test delete non-existent
	err = repo.Delete(ctx, messageNonExistentUUID)
	if err != ErrMessageNotFound {
		t.Errorf("Expected ErrMessageNotFound, got %v", err)
	}
}

func TestMessageRepository_ListByRoomID(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	bodies := []string{"first", "second", "third"}
	for _, b := range bodies {
		msg := &model.Message{RoomID: room.ID, UserID: user.ID, Body: b}
		if err := repo.Create(ctx, msg); err != nil {
			t.Fatalf("Failed to create message: %v", err)
		}
	}

	messages, err := repo.ListByRoomID(ctx, room.ID)
	if err != nil {
		t.Fatalf("Failed to list room messages: %v", err)
	}

	if len(messages) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(messages))
	}

	// Room messages are in insertion order
	for i, b := range bodies {
		if messages[i].Body != b {
			t.Errorf("Expected message %d to be %q, got %q", i, b, messages[i].Body)
		}
	}
}

func TestMessageRepository_ListByUserID(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	other := CreateIsolatedTestUser(t, db, prefix, "other")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	_ = repo.Create(ctx, &model.Message{RoomID: room.ID, UserID: user.ID, Body: "older"})
	_ = repo.Create(ctx, &model.Message{RoomID: room.ID, UserID: user.ID, Body: "newer"})
	_ = repo.Create(ctx, &model.Message{RoomID: room.ID, UserID: other.ID, Body: "not mine"})

	messages, err := repo.ListByUserID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to list user messages: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(messages))
	}
	// Newest first, with the room name attached
	if messages[0].Body != "newer" {
		t.Errorf("Expected newest message first, got %q", messages[0].Body)
	}
	if messages[0].RoomName != room.Name {
		t.Errorf("Expected room name %s, got %s", room.Name, messages[0].RoomName)
	}
}

func TestMessageRepository_ListByTopicQuery(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	topic := CreateIsolatedTestTopic(t, db, prefix, "Golang")
	tagged := CreateIsolatedTestRoom(t, db, prefix, user, topic)
	repo := NewMessageRepository(db)
	roomRepo := NewRoomRepository(db)
	ctx := context.Background()

	untagged := &model.Room{Name: prefix + "_untagged"}
	if err := roomRepo.Create(ctx, untagged); err != nil {
		t.Fatalf("Failed to create room: %v", err)
	}

	_ = repo.Create(ctx, &model.Message{RoomID: tagged.ID, UserID: user.ID, Body: "on topic"})
	_ = repo.Create(ctx, &model.Message{RoomID: untagged.ID, UserID: user.ID, Body: "off topic"})

	// Only messages from rooms whose topic matches appear
	messages, err := repo.ListByTopicQuery(ctx, prefix+"_go")
	if err != nil {
		t.Fatalf("Failed to list topic feed: %v", err)
	}
	if len(messages) != 1 || messages[0].Body != "on topic" {
		t.Fatalf("Expected only the tagged room's message, got %d", len(messages))
	}

	// Empty query matches every topic, but topic-less rooms stay out
	// of the feed entirely
	messages, _ = repo.ListByTopicQuery(ctx, "")
	foundTagged := false
	for _, m := range messages {
		if m.RoomID == untagged.ID {
			t.Error("Expected untagged room's message to be excluded from the feed")
		}
		if m.RoomID == tagged.ID {
			foundTagged = true
		}
	}
	if !foundTagged {
		t.Error("Expected empty query to include the tagged room's message")
	}
}

func TestMessageRepository_CountByRoomID(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "author")
	room := CreateIsolatedTestRoom(t, db, prefix, user, nil)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = repo.Create(ctx, &model.Message{RoomID: room.ID, UserID: user.ID, Body: "msg"})
	}

	count, err := repo.CountByRoomID(ctx, room.ID)
	if err != nil {
		t.Fatalf("Failed to count messages: %v", err)
	}
	if count != 3 {
		t.Errorf("Expected 3 messages, got %d", count)
	}
}
