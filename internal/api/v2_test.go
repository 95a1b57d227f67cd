package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestV2LoginReturnsTokenOnly(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	engine := newTestRouter(dir, newFakeStore(dir))

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v2/login",
		`{"email":"user1@example.com","password":"Test123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, resp["token"])
	assert.NotContains(t, resp, "type")
}

func TestV2SendMessageDerivesSenderFromAuth(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	dir.addUser("user2@example.com", "Test123", "User", "Two")
	store := newFakeStore(dir)
	engine := newTestRouter(dir, store)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v2/message",
		`{"receiver_user_id":2,"message":"Example text"}`, "1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "200", resp["success_code"])

	require.Len(t, store.messages, 1)
	assert.Equal(t, uint(1), store.messages[0].SenderUserID)
	assert.Equal(t, uint(2), store.messages[0].ReceiverUserID)
	assert.Equal(t, "Example text", store.messages[0].Message)

	// Without a token the store stays untouched
	w, _ = doRequest(t, engine, http.MethodPost, "/api/v2/message",
		`{"receiver_user_id":2,"message":"Example text"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Len(t, store.messages, 1)
}

func TestV2SendToMissingReceiver(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	store := newFakeStore(dir)
	engine := newTestRouter(dir, store)

	w, resp := doRequest(t, engine, http.MethodPost, "/api/v2/message",
		`{"receiver_user_id":99999,"message":"Example text"}`, "1")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Could not find user(s): 99999", resp["error_message"])
	assert.Empty(t, store.messages)
}

func TestV2ConversationPagination(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	dir.addUser("user2@example.com", "Test123", "User", "Two")
	store := newFakeStore(dir)
	engine := newTestRouter(dir, store)

	for i := 1; i <= 6; i++ {
		sender, receiver := "1", 2
		if i%2 == 0 {
			sender, receiver = "2", 1
		}
		w, _ := doRequest(t, engine, http.MethodPost, "/api/v2/message",
			fmt.Sprintf(`{"receiver_user_id":%d,"message":"Message %d"}`, receiver, i), sender)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v2/messages?other_user_id=2&page=1&limit=3", "", "1")
	assert.Equal(t, http.StatusOK, w.Code)

	messages := resp["messages"].([]any)
	require.Len(t, messages, 3)
	for i, m := range messages {
		assert.Equal(t, fmt.Sprintf("Message %d", i+1), m.(map[string]any)["message"])
	}

	pagination := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(6), pagination["total"])
	assert.Equal(t, float64(3), pagination["per_page"])
	assert.Equal(t, float64(1), pagination["current_page"])
	assert.Equal(t, float64(2), pagination["last_page"])
	assert.Equal(t, float64(1), pagination["from"])
	assert.Equal(t, float64(3), pagination["to"])

	// Second page holds messages 4 through 6
	_, resp = doRequest(t, engine, http.MethodGet, "/api/v2/messages?other_user_id=2&page=2&limit=3", "", "1")
	messages = resp["messages"].([]any)
	require.Len(t, messages, 3)
	for i, m := range messages {
		assert.Equal(t, fmt.Sprintf("Message %d", i+4), m.(map[string]any)["message"])
	}
	pagination = resp["pagination"].(map[string]any)
	assert.Equal(t, float64(4), pagination["from"])
	assert.Equal(t, float64(6), pagination["to"])
}

func TestV2PaginationValidationPrecedesExistence(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	engine := newTestRouter(dir, newFakeStore(dir))

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v2/messages?other_user_id=2&limit=10", "", "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Page number is required", resp["error_message"])

	w, resp = doRequest(t, engine, http.MethodGet, "/api/v2/messages?other_user_id=2&page=1", "", "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Limit is required", resp["error_message"])

	// Over-limit rejected before the missing other user is noticed
	w, resp = doRequest(t, engine, http.MethodGet, "/api/v2/messages?other_user_id=99999&page=1&limit=51", "", "1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Limit cannot exceed 50 items per page", resp["error_message"])
}

func TestV2PageBeyondLastKeepsLiteralArithmetic(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	dir.addUser("user2@example.com", "Test123", "User", "Two")
	engine := newTestRouter(dir, newFakeStore(dir))

	for i := 1; i <= 2; i++ {
		w, _ := doRequest(t, engine, http.MethodPost, "/api/v2/message",
			fmt.Sprintf(`{"receiver_user_id":2,"message":"Message %d"}`, i), "1")
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v2/messages?other_user_id=2&page=5&limit=10", "", "1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["messages"])

	pagination := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["total"])
	assert.Equal(t, float64(5), pagination["current_page"])
	assert.Equal(t, float64(1), pagination["last_page"])
	assert.Equal(t, float64(41), pagination["from"])
	assert.Equal(t, float64(2), pagination["to"])
}

func TestV2UsersNewestFirst(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	dir.addUser("user2@example.com", "Test123", "User", "Two")
	dir.addUser("user3@example.com", "Test123", "User", "Three")
	engine := newTestRouter(dir, newFakeStore(dir))

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v2/users?page=1&limit=10", "", "1")
	assert.Equal(t, http.StatusOK, w.Code)

	users := resp["users"].([]any)
	require.Len(t, users, 2)
	newest := users[0].(map[string]any)
	assert.Equal(t, float64(3), newest["user_id"])
	assert.Equal(t, "user3@example.com", newest["email"])
	assert.Contains(t, newest, "created_at")
	assert.NotContains(t, newest, "password")
	assert.Equal(t, float64(2), users[1].(map[string]any)["user_id"])

	pagination := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(2), pagination["total"])
	assert.Equal(t, float64(1), pagination["last_page"])
}

func TestV2UsersEmptyDirectory(t *testing.T) {
	dir := newFakeDirectory()
	dir.addUser("user1@example.com", "Test123", "User", "One")
	engine := newTestRouter(dir, newFakeStore(dir))

	w, resp := doRequest(t, engine, http.MethodGet, "/api/v2/users?page=1&limit=10", "", "1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["users"])

	pagination := resp["pagination"].(map[string]any)
	assert.Equal(t, float64(0), pagination["total"])
	assert.Equal(t, float64(1), pagination["last_page"])
	assert.Nil(t, pagination["from"])
	assert.Nil(t, pagination["to"])
}
