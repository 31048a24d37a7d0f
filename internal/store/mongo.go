package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zhouzirui/persona-chat/backend/internal/model/chat"
)

// chatDocument mirrors the layout of the "chats" collection.
type chatDocument struct {
	ID              string     `bson:"id"`
	AIPersonality   string     `bson:"ai_personality"`
	LastMessage     *string    `bson:"last_message,omitempty"`
	LastMessageTime *time.Time `bson:"last_message_time,omitempty"`
	UnreadCount     int        `bson:"unread_count"`
}

// messageDocument mirrors the layout of the "messages" collection.
type messageDocument struct {
	ID            string    `bson:"id"`
	ChatID        string    `bson:"chat_id"`
	SenderType    string    `bson:"sender_type"`
	SenderName    string    `bson:"sender_name"`
	Content       string    `bson:"content"`
	Timestamp     time.Time `bson:"timestamp"`
	MessageStatus string    `bson:"message_status"`
	MessageType   string    `bson:"message_type"`
}

// MongoStore persists chats and messages in two MongoDB collections.
type MongoStore struct {
	client   *mongo.Client
	chats    *mongo.Collection
	messages *mongo.Collection
}

// OpenMongo connects to uri, selects database and ensures the indexes the
// query patterns rely on.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		return nil, errors.New("mongo: database name is required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: connect mongo: %w", ErrUnavailable, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping mongo: %w", ErrUnavailable, err)
	}

	db := client.Database(database)
	s := &MongoStore{
		client:   client,
		chats:    db.Collection("chats"),
		messages: db.Collection("messages"),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.chats.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ai_personality", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("create chat indexes: %w", err)
	}

	_, err = s.messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "chat_id", Value: 1}, {Key: "timestamp", Value: 1}, {Key: "id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create message indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) FindChat(ctx context.Context, chatID string) (chat.Chat, error) {
	return s.findChat(ctx, bson.M{"id": chatID})
}

func (s *MongoStore) FindChatByPersonality(ctx context.Context, personalityID string) (chat.Chat, error) {
	return s.findChat(ctx, bson.M{"ai_personality": personalityID})
}

func (s *MongoStore) findChat(ctx context.Context, filter bson.M) (chat.Chat, error) {
	var doc chatDocument
	if err := s.chats.FindOne(ctx, filter).Decode(&doc); err != nil {
		return chat.Chat{}, translateMongo(err)
	}
	return doc.toChat(), nil
}

func (s *MongoStore) InsertChat(ctx context.Context, c chat.Chat) error {
	doc := chatDocument{
		ID:              c.ID,
		AIPersonality:   c.PersonalityID,
		LastMessage:     c.LastMessage,
		LastMessageTime: c.LastMessageTime,
		UnreadCount:     c.UnreadCount,
	}
	_, err := s.chats.InsertOne(ctx, doc)
	return translateMongo(err)
}

func (s *MongoStore) UpdateChatSummary(ctx context.Context, chatID, lastMessage string, at time.Time) error {
	res, err := s.chats.UpdateOne(ctx,
		bson.M{"id": chatID},
		bson.M{"$set": bson.M{
			"last_message":      lastMessage,
			"last_message_time": at.UTC(),
		}},
	)
	if err != nil {
		return translateMongo(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListChats(ctx context.Context) ([]chat.Chat, error) {
	cur, err := s.chats.Find(ctx, bson.M{})
	if err != nil {
		return nil, translateMongo(err)
	}
	var docs []chatDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateMongo(err)
	}

	out := make([]chat.Chat, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toChat())
	}
	return out, nil
}

func (s *MongoStore) InsertMessage(ctx context.Context, msg *chat.Message) error {
	msg.Stamp(clock())
	doc := messageDocument{
		ID:            msg.ID,
		ChatID:        msg.ChatID,
		SenderType:    string(msg.SenderType),
		SenderName:    msg.SenderName,
		Content:       msg.Content,
		Timestamp:     msg.Timestamp,
		MessageStatus: string(msg.Status),
		MessageType:   string(msg.Type),
	}
	_, err := s.messages.InsertOne(ctx, doc)
	return translateMongo(err)
}

func (s *MongoStore) ListMessages(ctx context.Context, chatID string, limit int) ([]chat.Message, error) {
	return s.listMessages(ctx, chatID, limit, 1)
}

func (s *MongoStore) ListRecentMessages(ctx context.Context, chatID string, limit int) ([]chat.Message, error) {
	return s.listMessages(ctx, chatID, limit, -1)
}

func (s *MongoStore) listMessages(ctx context.Context, chatID string, limit int, direction int) ([]chat.Message, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "timestamp", Value: direction},
		{Key: "id", Value: direction},
	})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.messages.Find(ctx, bson.M{"chat_id": chatID}, opts)
	if err != nil {
		return nil, translateMongo(err)
	}
	var docs []messageDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateMongo(err)
	}

	out := make([]chat.Message, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.toMessage())
	}
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return translateMongo(s.client.Ping(ctx, nil))
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (d chatDocument) toChat() chat.Chat {
	c := chat.Chat{
		ID:            d.ID,
		PersonalityID: d.AIPersonality,
		LastMessage:   d.LastMessage,
		UnreadCount:   d.UnreadCount,
	}
	if d.LastMessageTime != nil {
		t := d.LastMessageTime.UTC()
		c.LastMessageTime = &t
	}
	return c
}

func (d messageDocument) toMessage() chat.Message {
	msg := chat.Message{
		ID:         d.ID,
		ChatID:     d.ChatID,
		SenderType: chat.SenderType(d.SenderType),
		SenderName: d.SenderName,
		Content:    d.Content,
		Timestamp:  d.Timestamp.UTC(),
		Status:     chat.Status(d.MessageStatus),
		Type:       chat.Type(d.MessageType),
	}
	if msg.Status == "" {
		msg.Status = chat.StatusSent
	}
	if msg.Type == "" {
		msg.Type = chat.TypeText
	}
	return msg
}

func translateMongo(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}
