// Package api holds the two versioned request adapters of the messaging
// API. Version differences (field names, auth-derived vs explicit sender)
// live here; both versions share the same directory and store interfaces.
package api

import (
	"errors"
	"strconv"

	"messaging-demo/backend/internal/models"
	"messaging-demo/backend/internal/service"
	"messaging-demo/backend/pkg/envelope"

	"github.com/gin-gonic/gin"
)

// UserDirectory is the account lookup and listing surface shared by both
// API versions.
type UserDirectory interface {
	Register(req *models.RegisterRequest) (*models.User, error)
	Authenticate(email, password string) (*models.User, string, error)
	GetByID(id uint) (*models.User, error)
	ListExcluding(excludeID *uint) ([]models.User, error)
	ListPage(excludeID uint, page, limit int) ([]models.User, int64, error)
}

// ConversationStore is the pairwise message surface shared by both API
// versions.
type ConversationStore interface {
	Send(senderID, receiverID uint, body string) error
	Conversation(userA, userB uint) ([]models.Message, error)
	ConversationPage(userA, userB uint, page, limit int) ([]models.Message, int64, error)
}

// parseID parses a user id query value. Unparsable values become id 0,
// which no user carries, so they surface through the existence check.
func parseID(raw string) uint {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// authUserID extracts the authenticated user id placed by the JWT middleware
func authUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userId")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// writeStoreError maps a directory/store error onto the envelope contract
func writeStoreError(c *gin.Context, err error) {
	var notFound *service.UsersNotFoundError
	switch {
	case errors.As(err, &notFound):
		c.JSON(envelope.Error("404", "User(s) Not Found", "Could not find user(s): "+notFound.JoinIDs()))
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(envelope.Error("400", "Invalid Parameters", "Message text is required"))
	default:
		c.JSON(envelope.Error("400", "Request Failed", "The request could not be processed"))
	}
}
