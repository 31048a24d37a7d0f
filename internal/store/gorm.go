package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
)

type chatRecord struct {
	ID              string `gorm:"primaryKey;size:64"`
	PersonalityID   string `gorm:"size:64;not null;uniqueIndex:idx_chats_personality"`
	LastMessage     *string
	LastMessageTime *time.Time
	UnreadCount     int `gorm:"not null;default:0"`
}

func (chatRecord) TableName() string { return "chats" }

type messageRecord struct {
	ID         string    `gorm:"primaryKey;size:32"`
	ChatID     string    `gorm:"size:64;not null;index:idx_messages_chat_created,priority:1"`
	SenderType string    `gorm:"size:8;not null"`
	SenderName string    `gorm:"size:128;not null"`
	Content    string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime:false;index:idx_messages_chat_created,priority:2"`
	Status     string    `gorm:"size:16;not null"`
	Type       string    `gorm:"size:16;not null"`
}

func (messageRecord) TableName() string { return "messages" }

// GormStore persists chats and messages in a relational database through gorm.
type GormStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) a SQLite database at path. ":memory:" gives a
// private in-memory database.
func OpenSQLite(path string, logger zerolog.Logger) (*GormStore, error) {
	if path == "" {
		path = "persona-chat.db"
	}
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %w", ErrUnavailable, err)
	}
	if path == ":memory:" {
		// Every pooled connection would otherwise see its own empty database.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return newGormStore(db)
}

// OpenPostgres connects to PostgreSQL using a libpq-style DSN or URL.
func OpenPostgres(dsn string, logger zerolog.Logger) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(logger))
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres: %w", ErrUnavailable, err)
	}
	return newGormStore(db)
}

func gormConfig(logger zerolog.Logger) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(&logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

func newGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&chatRecord{}, &messageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) FindChat(ctx context.Context, chatID string) (chat.Chat, error) {
	var rec chatRecord
	err := s.db.WithContext(ctx).Where("id = ?", chatID).Take(&rec).Error
	if err != nil {
		return chat.Chat{}, translate(err)
	}
	return rec.toChat(), nil
}

func (s *GormStore) FindChatByPersonality(ctx context.Context, personalityID string) (chat.Chat, error) {
	var rec chatRecord
	err := s.db.WithContext(ctx).Where("personality_id = ?", personalityID).Take(&rec).Error
	if err != nil {
		return chat.Chat{}, translate(err)
	}
	return rec.toChat(), nil
}

func (s *GormStore) InsertChat(ctx context.Context, c chat.Chat) error {
	rec := chatRecord{
		ID:              c.ID,
		PersonalityID:   c.PersonalityID,
		LastMessage:     c.LastMessage,
		LastMessageTime: c.LastMessageTime,
		UnreadCount:     c.UnreadCount,
	}
	return translate(s.db.WithContext(ctx).Create(&rec).Error)
}

func (s *GormStore) UpdateChatSummary(ctx context.Context, chatID, lastMessage string, at time.Time) error {
	res := s.db.WithContext(ctx).
		Model(&chatRecord{}).
		Where("id = ?", chatID).
		Updates(map[string]any{
			"last_message":      lastMessage,
			"last_message_time": at.UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) ListChats(ctx context.Context) ([]chat.Chat, error) {
	var recs []chatRecord
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]chat.Chat, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toChat())
	}
	return out, nil
}

func (s *GormStore) InsertMessage(ctx context.Context, msg *chat.Message) error {
	msg.Stamp(clock())
	rec := messageRecord{
		ID:         msg.ID,
		ChatID:     msg.ChatID,
		SenderType: string(msg.SenderType),
		SenderName: msg.SenderName,
		Content:    msg.Content,
		CreatedAt:  msg.Timestamp,
		Status:     string(msg.Status),
		Type:       string(msg.Type),
	}
	return translate(s.db.WithContext(ctx).Create(&rec).Error)
}

func (s *GormStore) ListMessages(ctx context.Context, chatID string, limit int) ([]chat.Message, error) {
	return s.listMessages(ctx, chatID, limit, "created_at asc, id asc")
}

func (s *GormStore) ListRecentMessages(ctx context.Context, chatID string, limit int) ([]chat.Message, error) {
	return s.listMessages(ctx, chatID, limit, "created_at desc, id desc")
}

func (s *GormStore) listMessages(ctx context.Context, chatID string, limit int, order string) ([]chat.Message, error) {
	q := s.db.WithContext(ctx).Where("chat_id = ?", chatID).Order(order)
	if limit > 0 {
		q = q.Limit(limit)
	}

	var recs []messageRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]chat.Message, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toMessage())
	}
	return out, nil
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return translate(err)
	}
	return translate(sqlDB.PingContext(ctx))
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r chatRecord) toChat() chat.Chat {
	c := chat.Chat{
		ID:            r.ID,
		PersonalityID: r.PersonalityID,
		LastMessage:   r.LastMessage,
		UnreadCount:   r.UnreadCount,
	}
	if r.LastMessageTime != nil {
		t := r.LastMessageTime.UTC()
		c.LastMessageTime = &t
	}
	return c
}

func (r messageRecord) toMessage() chat.Message {
	return chat.Message{
		ID:         r.ID,
		ChatID:     r.ChatID,
		SenderType: chat.SenderType(r.SenderType),
		SenderName: r.SenderName,
		Content:    r.Content,
		Timestamp:  r.CreatedAt.UTC(),
		Status:     chat.Status(r.Status),
		Type:       chat.Type(r.Type),
	}
}

// translate maps gorm errors onto the store sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

// isUniqueViolation catches drivers that do not implement gorm's error translator.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
