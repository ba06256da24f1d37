package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/healthfitlab/fitsync/internal/entity"
)

// SaveChatMessage performs the optimistic local write for one chat message.
// Assistant replies arrive through the same path; callers that already hold
// a server-confirmed copy use ApplyChatMessages instead.
func (s *Store) SaveChatMessage(ctx context.Context, message entity.ChatMessage) (entity.ChatMessage, error) {
	const op = "store.save_chat_message"
	if _, err := entity.NewUserID(message.UserID); err != nil {
		return entity.ChatMessage{}, s.fail(op, "invalid_user_id", err)
	}
	if message.ID == "" {
		id, err := s.nextID(op)
		if err != nil {
			return entity.ChatMessage{}, err
		}
		message.ID = id
	}
	if message.Timestamp == "" {
		message.Timestamp = s.timestamp()
	}
	message.Synced = entity.SyncPending
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&message).Error; err != nil {
		return entity.ChatMessage{}, s.fail(op, "write_failed", err, zap.String("message_id", message.ID))
	}
	return message, nil
}

// ApplyChatMessages stores messages fetched from the server.
func (s *Store) ApplyChatMessages(ctx context.Context, messages []entity.ChatMessage) error {
	const op = "store.apply_chat_messages"
	if len(messages) == 0 {
		return nil
	}
	for i := range messages {
		messages[i].Synced = entity.SyncConfirmed
	}
	if err := s.db.WithContext(ctx).Clauses(replaceClause).Create(&messages).Error; err != nil {
		return s.fail(op, "write_failed", err, zap.Int("count", len(messages)))
	}
	return nil
}

// ChatMessages returns the user's conversation in chronological order.
func (s *Store) ChatMessages(ctx context.Context, userID string) ([]entity.ChatMessage, error) {
	const op = "store.chat_messages"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var messages []entity.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return messages, nil
}

// UnsyncedChatMessages returns messages still awaiting the bulk push.
func (s *Store) UnsyncedChatMessages(ctx context.Context, userID string) ([]entity.ChatMessage, error) {
	const op = "store.unsynced_chat_messages"
	if userID == "" {
		return nil, s.fail(op, "missing_user_id", entity.ErrInvalidUserID)
	}
	var messages []entity.ChatMessage
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND synced = ?", userID, entity.SyncPending).
		Order("timestamp ASC").
		Find(&messages).Error
	if err != nil {
		return nil, s.fail(op, "query_failed", err, zap.String("user_id", userID))
	}
	return messages, nil
}

// MarkChatMessagesSynced records server acknowledgement for the given ids.
func (s *Store) MarkChatMessagesSynced(ctx context.Context, ids []string) error {
	return s.markRowsSynced(ctx, "store.mark_chat_messages_synced", &entity.ChatMessage{}, ids)
}
