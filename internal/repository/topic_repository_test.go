package repository

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/go-demo/studyhub/internal/model"
	_ "github.com/lib/pq"
)

const topicNonExistentUUID = "00000000-0000-0000-0000-000000000000"

func TestTopicRepository_GetOrCreateByName(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	repo := NewTopicRepository(db)
	ctx := context.Background()

	name := prefix + "_golang"

	topic, err := repo.GetOrCreateByName(ctx, name)
	if err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}
	if topic.ID == "" {
		t.Error("Expected topic ID to be set")
	}

	// Second call returns the same row instead of inserting
	again, err := repo.GetOrCreateByName(ctx, name)
	if err != nil {
		t.Fatalf("Failed to resolve existing topic: %v", err)
	}
	if again.ID != topic.ID {
		t.Errorf("Expected same topic ID %s, got %s", topic.ID, again.ID)
	}
}

func TestTopicRepository_GetOrCreateByName_CaseSensitive(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	repo := NewTopicRepository(db)
	ctx := context.Background()

	lower, err := repo.GetOrCreateByName(ctx, prefix+"_python")
	if err != nil {
		t.Fatalf("Failed to create topic: %v", err)
	}

	// Topic resolution matches exactly; a differently-cased name is a
	// new topic even though searches are case-insensitive
	upper, err := repo.GetOrCreateByName(ctx, strings.ToUpper(prefix)+"_PYTHON")
	if err != nil {
		t.Fatalf("Failed to create upper-cased topic: %v", err)
	}

	if lower.ID == upper.ID {
		t.Error("Expected differently-cased names to create separate topics")
	}

	// Cleanup matches the lower-cased prefix only
	_, _ = db.ExecContext(ctx, "DELETE FROM topics WHERE id = $1", upper.ID)
}

func TestTopicRepository_GetByID(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	repo := NewTopicRepository(db)
	ctx := context.Background()

	topic := CreateIsolatedTestTopic(t, db, prefix, "golang")

	found, err := repo.GetByID(ctx, topic.ID)
	if err != nil {
		t.Fatalf("Failed to get topic: %v", err)
	}
	if found.Name != topic.Name {
		t.Errorf("Expected name %s, got %s", topic.Name, found.Name)
	}

	// Test not found
	_, err = repo.GetByID(ctx, topicNonExistentUUID)
	if err != ErrTopicNotFound {
		t.Errorf("Expected ErrTopicNotFound, got %v", err)
	}
}

func TestTopicRepository_Search(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "host")
	topicRepo := NewTopicRepository(db)
	roomRepo := NewRoomRepository(db)
	ctx := context.Background()

	golang := CreateIsolatedTestTopic(t, db, prefix, "Golang")
	_ = CreateIsolatedTestTopic(t, db, prefix, "Databases")

	// Two rooms tagged with the first topic
	for i := 0; i < 2; i++ {
		room := &model.Room{
			HostID:  sql.NullString{String: user.ID, Valid: true},
			TopicID: sql.NullString{String: golang.ID, Valid: true},
			Name:    prefix + "_room" + string(rune('a'+i)),
		}
		if err := roomRepo.Create(ctx, room); err != nil {
			t.Fatalf("Failed to create room: %v", err)
		}
	}

	// Substring match is case-insensitive
	results, err := topicRepo.Search(ctx, strings.ToUpper(prefix)+"_GO")
	if err != nil {
		t.Fatalf("Failed to search topics: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 topic, got %d", len(results))
	}
	if results[0].RoomCount != 2 {
		t.Errorf("Expected room count 2, got %d", results[0].RoomCount)
	}

	// Empty query matches every topic
	results, _ = topicRepo.Search(ctx, "")
	matched := 0
	for _, r := range results {
		if strings.HasPrefix(r.Name, prefix) {
			matched++
		}
	}
	if matched != 2 {
		t.Errorf("Expected empty query to match both topics, got %d", matched)
	}
}

func TestTopicRepository_DeleteSetsRoomTopicNull(t *testing.T) {
	db, prefix := SetupIsolatedTestDB(t)
	defer db.Close()
	defer CleanupTestDataByPrefix(t, db, prefix)

	user := CreateIsolatedTestUser(t, db, prefix, "host")
	topic := CreateIsolatedTestTopic(t, db, prefix, "golang")
	room := CreateIsolatedTestRoom(t, db, prefix, user, topic)
	roomRepo := NewRoomRepository(db)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "DELETE FROM topics WHERE id = $1", topic.ID); err != nil {
		t.Fatalf("Failed to delete topic: %v", err)
	}

	// The room survives with its topic cleared
	found, err := roomRepo.GetByID(ctx, room.ID)
	if err != nil {
		t.Fatalf("Expected room to survive topic delete: %v", err)
	}
	if found.TopicID.Valid {
		t.Error("Expected topic_id to be NULL after topic delete")
	}
}
