package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rssdigest/app/feed"
)

func TestFeishuNotifier_Send_Success(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"code": 0, "msg": "success"}`))
	}))
	defer server.Close()

	notifier := NewFeishuNotifier(server.URL)
	item := feed.Item{Title: "Test Title", URL: "https://example.com/1", FeedName: "Test Feed", Category: "tech"}

	if err := notifier.Send(context.Background(), item, "a summary"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("Expected valid JSON payload, got %v", err)
	}
	if payload["msg_type"] != "interactive" {
		t.Errorf("Expected msg_type 'interactive', got '%v'", payload["msg_type"])
	}
	if !strings.Contains(string(gotBody), "Test Title") {
		t.Error("Expected payload to contain the item title")
	}
	if !strings.Contains(string(gotBody), "a summary") {
		t.Error("Expected payload to contain the summary")
	}
}

func TestFeishuNotifier_Send_LegacyStatusCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"StatusCode": 0, "StatusMessage": "success"}`))
	}))
	defer server.Close()

	notifier := NewFeishuNotifier(server.URL)

	if err := notifier.Send(context.Background(), feed.Item{Title: "t"}, "s"); err != nil {
		t.Errorf("Expected legacy StatusCode response to succeed, got %v", err)
	}
}

func TestFeishuNotifier_Send_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code": 19001, "msg": "param invalid"}`))
	}))
	defer server.Close()

	notifier := NewFeishuNotifier(server.URL)

	err := notifier.Send(context.Background(), feed.Item{Title: "t"}, "s")
	if err == nil {
		t.Fatal("Expected error for rejected message, got nil")
	}
	if !strings.Contains(err.Error(), "param invalid") {
		t.Errorf("Expected rejection message in error, got '%v'", err)
	}
}

func TestFeishuNotifier_Send_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	notifier := NewFeishuNotifier(server.URL)

	if err := notifier.Send(context.Background(), feed.Item{Title: "t"}, "s"); err == nil {
		t.Error("Expected error on HTTP 502, got nil")
	}
}
