package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

// ============================================
// Lessons Endpoints
// ============================================

func TestClient_ListLessons(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/Lessons", r.URL.Path)
		json.NewEncoder(w).Encode([]catalog.Lesson{
			{ID: "l1", Subject: "Math", Location: "London", Price: 100, Spaces: 5},
		})
	})
	defer srv.Close()

	lessons, err := client.ListLessons(context.Background())

	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "l1", lessons[0].ID)
	assert.Equal(t, "Math", lessons[0].Subject)
	assert.Equal(t, 5, lessons[0].Spaces)
}

func TestClient_CreateLesson(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Lessons", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var lesson catalog.Lesson
		require.NoError(t, json.NewDecoder(r.Body).Decode(&lesson))
		lesson.ID = "assigned-1"
		json.NewEncoder(w).Encode(lesson)
	})
	defer srv.Close()

	created, err := client.CreateLesson(context.Background(), catalog.Lesson{Subject: "Art", Price: 50, Spaces: 2})

	require.NoError(t, err)
	assert.Equal(t, "assigned-1", created.ID)
	assert.Equal(t, "Art", created.Subject)
}

func TestClient_UpdateSpaces_SendsOnlySpaces(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/Lessons/l1", r.URL.Path)

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]int{"spaces": 3}, body)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	err := client.UpdateSpaces(context.Background(), "l1", 3)
	require.NoError(t, err)
}

func TestClient_DeleteLesson(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/Lessons/l9", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	defer srv.Close()

	require.NoError(t, client.DeleteLesson(context.Background(), "l9"))
}

// ============================================
// Orders Endpoint
// ============================================

func TestClient_SubmitOrder_WireFormat(t *testing.T) {
	var payload map[string]any
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/Orders", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusCreated)
	})
	defer srv.Close()

	o := &order.Order{
		Name:  "Alice",
		Phone: "0123456789",
		Items: []order.Item{
			{LessonID: "l1", Subject: "Math", UnitPrice: 100, Quantity: 2, TotalPrice: 200},
		},
		TotalAmount: 200,
		Date:        time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, client.SubmitOrder(context.Background(), o))

	assert.Equal(t, "Alice", payload["name"])
	assert.Equal(t, "0123456789", payload["phone"])
	assert.Equal(t, 200.0, payload["totalAmount"])
	assert.Equal(t, "2025-01-02T03:04:05Z", payload["date"])

	items := payload["items"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "l1", item["lessonId"])
	assert.Equal(t, 2.0, item["quantity"])
	assert.Equal(t, 200.0, item["totalPrice"])
}

// ============================================
// Failure Modes
// ============================================

func TestClient_NonSuccessStatusIsAPIError(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.ListLessons(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Contains(t, apiErr.Body, "boom")
}

func TestClient_ConnectionFailureIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := NewClient(srv.URL, time.Second)
	srv.Close()

	_, err := client.ListLessons(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.Error(t, apiErr.Unwrap())
}
