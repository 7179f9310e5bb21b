package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/go-demo/studyhub/internal/config"
	"github.com/go-demo/studyhub/internal/model"
	"github.com/go-demo/studyhub/internal/pkg/database"
	"github.com/go-demo/studyhub/internal/pkg/utils"
	"github.com/go-demo/studyhub/internal/repository"
	"go.uber.org/zap"
)

func main() {
	log.Println("Starting database seed...")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	logger := zap.NewNop()
	db, err := database.NewPostgres(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Seed users
	log.Println("Creating users...")
	users := []struct {
		username string
		email    string
		password string
		bio      string
	}{
		{"alice", "alice@example.com", "password123", "後端工程師，喜歡研究分散式系統"},
		{"bob", "bob@example.com", "password123", "正在準備轉職的前端新手"},
		{"charlie", "charlie@example.com", "password123", ""},
		{"diana", "diana@example.com", "password123", "資料科學愛好者"},
		{"evan", "evan@example.com", "password123", ""},
	}

	var createdUsers []*model.User
	for _, u := range users {
		hash, _ := utils.HashPassword(u.password)
		user := &model.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: hash,
		}
		if u.bio != "" {
			user.Bio = sql.NullString{String: u.bio, Valid: true}
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("User %s might already exist: %v", u.username, err)
			existing, _ := userRepo.GetByUsername(ctx, u.username)
			if existing != nil {
				createdUsers = append(createdUsers, existing)
			}
		} else {
			createdUsers = append(createdUsers, user)
			log.Printf("Created user: %s", u.username)
		}
	}

	if len(createdUsers) < 2 {
		log.Println("Not enough users, skipping room and message creation")
		return
	}

	// Seed topics
	log.Println("Creating topics...")
	topicNames := []string{"Go", "Python", "JavaScript", "資料庫", "演算法"}
	topics := make(map[string]*model.Topic)
	for _, name := range topicNames {
		topic, err := topicRepo.GetOrCreateByName(ctx, name)
		if err != nil {
			log.Printf("Failed to create topic %s: %v", name, err)
			continue
		}
		topics[name] = topic
		log.Printf("Topic ready: %s", name)
	}

	// Seed rooms
	log.Println("Creating rooms...")
	rooms := []struct {
		name        string
		description string
		topic       string
		hostIndex   int
	}{
		{"Go 讀書會", "每週讀一章 The Go Programming Language", "Go", 0},
		{"Python 新手村", "從零開始學 Python", "Python", 1},
		{"前端漫談", "", "JavaScript", 1},
		{"SQL 優化討論", "慢查詢分析與索引設計", "資料庫", 3},
		{"LeetCode 每日一題", "一起刷題互相討論", "演算法", 2},
	}

	var createdRooms []*model.Room
	for _, r := range rooms {
		if r.hostIndex >= len(createdUsers) {
			continue
		}

		topic, ok := topics[r.topic]
		if !ok {
			continue
		}

		host := createdUsers[r.hostIndex]
		room := &model.Room{
			HostID:  sql.NullString{String: host.ID, Valid: true},
			TopicID: sql.NullString{String: topic.ID, Valid: true},
			Name:    r.name,
		}
		if r.description != "" {
			room.Description = sql.NullString{String: r.description, Valid: true}
		}

		if err := roomRepo.Create(ctx, room); err != nil {
			log.Printf("Failed to create room %s: %v", r.name, err)
		} else {
			createdRooms = append(createdRooms, room)
			log.Printf("Created room: %s", r.name)
		}
	}

	// Seed messages, posting also grows each room's participant set
	log.Println("Creating messages...")
	messages := []struct {
		roomIndex int
		userIndex int
		body      string
	}{
		{0, 0, "大家好！這週讀第五章，有問題歡迎提出"},
		{0, 1, "goroutine 跟 thread 的差別有人能解釋一下嗎？"},
		{0, 2, "推薦搭配官方的 concurrency 教學一起看"},
		{1, 1, "今天開始學 list comprehension"},
		{1, 3, "建議先把 virtualenv 設定好再開始"},
		{2, 1, "最近的框架更新好快，跟不上了"},
		{3, 3, "EXPLAIN ANALYZE 的結果怎麼看？"},
		{3, 0, "先看 Seq Scan 出現在哪張表"},
		{4, 2, "今天的題目是 two sum，經典題"},
		{4, 4, "用 hash map 可以一次遍歷解決"},
	}

	for _, m := range messages {
		if m.roomIndex >= len(createdRooms) || m.userIndex >= len(createdUsers) {
			continue
		}

		room := createdRooms[m.roomIndex]
		user := createdUsers[m.userIndex]

		msg := &model.Message{
			RoomID: room.ID,
			UserID: user.ID,
			Body:   m.body,
		}

		if err := messageRepo.Create(ctx, msg); err != nil {
			log.Printf("Failed to create message: %v", err)
			continue
		}

		if err := roomRepo.AddParticipant(ctx, room.ID, user.ID); err != nil {
			log.Printf("Failed to add participant: %v", err)
		}
		_ = roomRepo.Touch(ctx, room.ID)

		log.Printf("Created message in %s", room.Name)

		// Small delay to ensure different timestamps
		time.Sleep(10 * time.Millisecond)
	}

	log.Println("Seed completed successfully!")
	fmt.Println("\n--- Test Accounts ---")
	fmt.Println("All accounts have password: password123")
	for _, u := range users {
		fmt.Printf("Username: %s, Email: %s\n", u.username, u.email)
	}
}
