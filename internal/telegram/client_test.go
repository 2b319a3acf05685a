package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(serverURL string) *Client {
	return &Client{
		baseURL:    serverURL + "/bot-test/",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		backoff:    time.Millisecond,
	}
}

func TestGetUpdates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bot-test/getUpdates" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("offset"); got != "5" {
			t.Errorf("offset = %s, want 5", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok": true,
			"result": []map[string]interface{}{
				{
					"update_id": 5,
					"message": map[string]interface{}{
						"chat": map[string]interface{}{"id": 42},
						"from": map[string]interface{}{"id": 42, "first_name": "Alice"},
						"text": "/start",
					},
				},
			},
		})
	}))
	defer server.Close()

	updates, err := testClient(server.URL).GetUpdates(context.Background(), 5)
	if err != nil {
		t.Fatalf("GetUpdates() error: %v", err)
	}
	if len(updates) != 1 {
		t.Fatalf("got %d updates, want 1", len(updates))
	}
	u := updates[0]
	if u.UpdateID != 5 || u.Message == nil || u.Message.Text != "/start" || u.Message.From.FirstName != "Alice" {
		t.Errorf("decoded update = %+v, want update 5 with /start from Alice", u)
	}
}

func TestSendMessageRetriesOnServerError(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "result": map[string]interface{}{}})
	}))
	defer server.Close()

	if ok := testClient(server.URL).SendMessage(context.Background(), 42, "hello"); !ok {
		t.Errorf("SendMessage() = false, want success on the third attempt")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestSendMessageExhaustsRetryBudget(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	if ok := testClient(server.URL).SendMessage(context.Background(), 42, "hello"); ok {
		t.Errorf("SendMessage() = true, want failure after the retry budget")
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want exactly 3", attempts)
	}
}

func TestGetUpdatesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "description": "unauthorized"})
	}))
	defer server.Close()

	if _, err := testClient(server.URL).GetUpdates(context.Background(), 1); err == nil {
		t.Errorf("GetUpdates() error = nil, want an API error")
	}
}
