package service

import (
	"strings"

	"messaging-demo/backend/internal/models"

	"gorm.io/gorm"
)

// MessageService is the conversation store: persistence and bidirectional
// retrieval of messages between exactly two user identities.
type MessageService struct {
	db    *gorm.DB
	users *UserService
}

// NewMessageService creates a new message service
func NewMessageService(db *gorm.DB, users *UserService) *MessageService {
	return &MessageService{db: db, users: users}
}

// Send persists one message. Sender and receiver must both exist (checked
// even when equal) and the body must be non-empty. Nothing is written when
// a check fails.
func (s *MessageService) Send(senderID, receiverID uint, body string) error {
	missing, err := s.users.MissingUsers([]uint{senderID, receiverID})
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &UsersNotFoundError{MissingIDs: missing}
	}

	if strings.TrimSpace(body) == "" {
		return ErrEmptyMessage
	}

	message := models.Message{
		SenderUserID:   senderID,
		ReceiverUserID: receiverID,
		Message:        body,
	}
	return s.db.Create(&message).Error
}

// Conversation returns every message between the pair, in chronological
// reading order. Ties share a timestamp and fall back to insertion order.
func (s *MessageService) Conversation(userA, userB uint) ([]models.Message, error) {
	missing, err := s.users.MissingUsers([]uint{userA, userB})
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, &UsersNotFoundError{MissingIDs: missing}
	}

	var messages []models.Message
	err = s.pairQuery(userA, userB).
		Order("created_at ASC, message_id ASC").
		Find(&messages).Error
	return messages, err
}

// ConversationPage returns one ordinal slice of the conversation plus the
// total match count. Page boundaries depend only on position, never on
// timestamp values.
func (s *MessageService) ConversationPage(userA, userB uint, page, limit int) ([]models.Message, int64, error) {
	missing, err := s.users.MissingUsers([]uint{userA, userB})
	if err != nil {
		return nil, 0, err
	}
	if len(missing) > 0 {
		return nil, 0, &UsersNotFoundError{MissingIDs: missing}
	}

	var total int64
	if err := s.pairQuery(userA, userB).Model(&models.Message{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err = s.pairQuery(userA, userB).
		Order("created_at ASC, message_id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

// pairQuery matches messages where {sender, receiver} equals the unordered
// pair {a, b}.
func (s *MessageService) pairQuery(a, b uint) *gorm.DB {
	return s.db.Where(
		"(sender_user_id = ? AND receiver_user_id = ?) OR (sender_user_id = ? AND receiver_user_id = ?)",
		a, b, b, a,
	)
}
