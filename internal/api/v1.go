package api

import (
	"errors"
	"net/http"

	"messaging-demo/backend/internal/models"
	"messaging-demo/backend/internal/service"
	"messaging-demo/backend/pkg/envelope"
	"messaging-demo/backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// V1Handler serves the original API contract: explicit sender ids, raw
// token objects and unpaginated listings.
type V1Handler struct {
	users    UserDirectory
	messages ConversationStore
	log      *logger.Logger
}

// NewV1Handler creates a new v1 handler
func NewV1Handler(users UserDirectory, messages ConversationStore, log *logger.Logger) *V1Handler {
	return &V1Handler{users: users, messages: messages, log: log}
}

// RegisterRoutes registers the v1 routes on the given router
func (h *V1Handler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	v1 := r.Group("/api/v1")
	{
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)
		v1.GET("/profile", auth, h.Profile)
		v1.POST("/send_message", h.SendMessage)
		v1.GET("/view_messages", h.ViewMessages)
		v1.GET("/list_all_users", h.ListAllUsers)
	}
}

// Register handles user registration
func (h *V1Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(envelope.Error("400", "Registration Failed",
			"There was a problem creating the user, please try again later."))
		return
	}

	if _, err := h.users.Register(&req); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(envelope.Error("400", "Registration Failed", "Email already exists"))
			return
		}
		h.log.LogError(err, "Registration failed")
		c.JSON(envelope.Error("400", "Registration Failed",
			"There was a problem creating the user, please try again later."))
		return
	}

	c.JSON(envelope.Success("200", "Registration Successful", "User registered successfully", nil))
}

// Login authenticates a user and returns the raw token object
func (h *V1Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(envelope.Error("401", "Login Failed", "Invalid credentials"))
		return
	}

	_, token, err := h.users.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(envelope.Error("401", "Login Failed", "Invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"type":  "bearer",
		"token": token,
	})
}

// Profile returns the authenticated user's fields
func (h *V1Handler) Profile(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		c.JSON(envelope.Error("401", "Authentication Required", "Authentication is required"))
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		writeStoreError(c, &service.UsersNotFoundError{MissingIDs: []uint{userID}})
		return
	}

	c.JSON(http.StatusOK, user)
}

type v1SendMessageRequest struct {
	SenderUserID   uint   `json:"sender_user_id"`
	ReceiverUserID uint   `json:"receiver_user_id"`
	Message        string `json:"message"`
}

// SendMessage persists a message with an explicitly supplied sender id
func (h *V1Handler) SendMessage(c *gin.Context) {
	var req v1SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(envelope.Error("400", "Invalid Parameters", "Invalid request body"))
		return
	}

	if err := h.messages.Send(req.SenderUserID, req.ReceiverUserID, req.Message); err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(envelope.Success("200", "Message Sent", "Message was sent successfully", nil))
}

// ViewMessages returns the full conversation between two users in
// chronological order.
func (h *V1Handler) ViewMessages(c *gin.Context) {
	userA := parseID(c.Query("user_id_a"))
	userB := parseID(c.Query("user_id_b"))

	messages, err := h.messages.Conversation(userA, userB)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": models.MessagesToResponse(messages),
	})
}

// ListAllUsers returns every user, minus the requester when one is named
func (h *V1Handler) ListAllUsers(c *gin.Context) {
	var excludeID *uint
	if raw := c.Query("requester_user_id"); raw != "" {
		id := parseID(raw)
		excludeID = &id
	}

	users, err := h.users.ListExcluding(excludeID)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	entries := make([]models.DirectoryEntry, 0, len(users))
	for i := range users {
		entries = append(entries, users[i].ToDirectoryEntry())
	}

	c.JSON(http.StatusOK, gin.H{
		"users": entries,
	})
}
