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

// V2Handler serves the normalized contract: sender identity derived from
// the bearer token and paginated listings with envelope metadata.
type V2Handler struct {
	users    UserDirectory
	messages ConversationStore
	log      *logger.Logger
}

// NewV2Handler creates a new v2 handler
func NewV2Handler(users UserDirectory, messages ConversationStore, log *logger.Logger) *V2Handler {
	return &V2Handler{users: users, messages: messages, log: log}
}

// RegisterRoutes registers the v2 routes on the given router
func (h *V2Handler) RegisterRoutes(r gin.IRouter, auth gin.HandlerFunc) {
	v2 := r.Group("/api/v2")
	{
		v2.POST("/register", h.Register)
		v2.POST("/login", h.Login)
		v2.GET("/profile", auth, h.Profile)
		v2.POST("/message", auth, h.SendMessage)
		v2.GET("/messages", auth, h.ListMessages)
		v2.GET("/users", auth, h.ListUsers)
	}
}

// Register handles user registration
func (h *V2Handler) Register(c *gin.Context) {
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

// Login authenticates a user and returns the token only
func (h *V2Handler) Login(c *gin.Context) {
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
		"token": token,
	})
}

// Profile returns the authenticated user's fields
func (h *V2Handler) Profile(c *gin.Context) {
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

type v2SendMessageRequest struct {
	ReceiverUserID uint   `json:"receiver_user_id"`
	Message        string `json:"message"`
}

// SendMessage persists a message; the sender is the authenticated user
func (h *V2Handler) SendMessage(c *gin.Context) {
	senderID, ok := authUserID(c)
	if !ok {
		c.JSON(envelope.Error("401", "Authentication Required", "Authentication is required"))
		return
	}

	var req v2SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(envelope.Error("400", "Invalid Parameters", "Invalid request body"))
		return
	}

	if err := h.messages.Send(senderID, req.ReceiverUserID, req.Message); err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(envelope.Success("200", "Message Sent", "Message was sent successfully", nil))
}

// ListMessages returns one page of the conversation between the viewer and
// other_user_id. Pagination parameters are validated before the existence
// checks.
func (h *V2Handler) ListMessages(c *gin.Context) {
	viewerID, ok := authUserID(c)
	if !ok {
		c.JSON(envelope.Error("401", "Authentication Required", "Authentication is required"))
		return
	}

	page, limit, status, payload := envelope.ValidatePagination(
		c.Query("page"), c.Query("limit"), envelope.DefaultMaxLimit)
	if payload != nil {
		c.JSON(status, payload)
		return
	}

	otherID := parseID(c.Query("other_user_id"))

	messages, total, err := h.messages.ConversationPage(viewerID, otherID, page, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(envelope.Paginated(map[string]any{
		"messages": models.MessagesToResponse(messages),
	}, page, limit, total))
}

// ListUsers returns one page of the directory, newest joiners first,
// excluding the viewer.
func (h *V2Handler) ListUsers(c *gin.Context) {
	viewerID, ok := authUserID(c)
	if !ok {
		c.JSON(envelope.Error("401", "Authentication Required", "Authentication is required"))
		return
	}

	page, limit, status, payload := envelope.ValidatePagination(
		c.Query("page"), c.Query("limit"), envelope.DefaultMaxLimit)
	if payload != nil {
		c.JSON(status, payload)
		return
	}

	users, total, err := h.users.ListPage(viewerID, page, limit)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	entries := make([]models.DirectoryPageEntry, 0, len(users))
	for i := range users {
		entries = append(entries, users[i].ToDirectoryPageEntry())
	}

	c.JSON(envelope.Paginated(map[string]any{
		"users": entries,
	}, page, limit, total))
}
