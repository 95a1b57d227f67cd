package models

import (
	"time"
)

// Message represents one directed message between two users. Sender and
// receiver rows cascade-delete with their user.
type Message struct {
	MessageID      uint      `gorm:"primaryKey" json:"message_id"`
	SenderUserID   uint      `json:"sender_user_id"`
	ReceiverUserID uint      `json:"receiver_user_id"`
	Message        string    `gorm:"type:text" json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Sender   *User `gorm:"foreignKey:SenderUserID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver *User `gorm:"foreignKey:ReceiverUserID;constraint:OnDelete:CASCADE" json:"-"`
}

// MessageResponse is the wire shape of a message. Epoch is derived from
// the creation timestamp (floor seconds since Unix epoch), never stored.
type MessageResponse struct {
	MessageID      uint      `json:"message_id"`
	SenderUserID   uint      `json:"sender_user_id"`
	ReceiverUserID uint      `json:"receiver_user_id"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Epoch          int64     `json:"epoch"`
}

// ToResponse converts a Message to its wire shape, computing the epoch field
func (m *Message) ToResponse() MessageResponse {
	return MessageResponse{
		MessageID:      m.MessageID,
		SenderUserID:   m.SenderUserID,
		ReceiverUserID: m.ReceiverUserID,
		Message:        m.Message,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		Epoch:          m.CreatedAt.Unix(),
	}
}

// MessagesToResponse converts a chronological slice of messages
func MessagesToResponse(messages []Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, messages[i].ToResponse())
	}
	return out
}
