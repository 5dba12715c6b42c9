package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bogo-app/bogo/internal/config"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
	Auth   string
}

type testServer struct {
	server   *httptest.Server
	requests []recordedRequest
}

func newTestServer(t *testing.T, responses map[string]string) *testServer {
	t.Helper()
	ts := &testServer{}

	ts.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body bytes.Buffer
		body.ReadFrom(r.Body)

		ts.requests = append(ts.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.RequestURI(),
			Body:   body.String(),
			Auth:   r.Header.Get("Authorization"),
		})

		key := r.Method + " " + r.URL.Path
		if resp, ok := responses[key]; ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(resp))
			return
		}

		w.WriteHeader(404)
		w.Write([]byte(`{"error":{"message":"not found","type":"not_found"}}`))
	}))

	t.Cleanup(ts.server.Close)
	return ts
}

func (ts *testServer) client() *apiClient {
	return &apiClient{
		baseURL:    ts.server.URL,
		token:      "test-token",
		httpClient: ts.server.Client(),
	}
}

func TestSubmitCommand_Flow(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"PATCH /draft": `{"type":"daily","title":"출근 보고","content":"오전 회의 준비"}`,
		"POST /submit": `{"id":"p1","type":"daily","session":"AM","title":"출근 보고","content":"오전 회의 준비 및 자료 정리","keywords":["회의"],"status":"submitted"}`,
	})

	client := ts.client()

	resp, err := client.patch("/draft", map[string]any{"title": "출근 보고"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var draft map[string]any
	if err := decodeJSON(resp, &draft); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	resp, err = client.post("/submit", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var created reportView
	if err := decodeJSON(resp, &created); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if created.ID != "p1" || created.Session != "AM" {
		t.Errorf("created = %+v", created)
	}
	if len(ts.requests) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(ts.requests))
	}
	if ts.requests[0].Method != "PATCH" || ts.requests[0].Path != "/draft" {
		t.Errorf("first request = %s %s", ts.requests[0].Method, ts.requests[0].Path)
	}
	if ts.requests[0].Auth != "Bearer test-token" {
		t.Errorf("auth = %q", ts.requests[0].Auth)
	}

	var sentBody map[string]any
	if err := json.Unmarshal([]byte(ts.requests[0].Body), &sentBody); err != nil {
		t.Fatalf("body parse error: %v", err)
	}
	if sentBody["title"] != "출근 보고" {
		t.Errorf("body.title = %v", sentBody["title"])
	}
	if _, ok := sentBody["content"]; ok {
		t.Errorf("unset flag should not be sent: %v", sentBody)
	}
}

func TestListCommand_Decode(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /reports": `[{"id":"p2","type":"daily","session":"PM","title":"퇴근 보고","createdAt":"2024-03-06T18:10:00Z","status":"submitted"},
			{"id":"p1","type":"daily","session":"AM","title":"출근 보고","createdAt":"2024-03-06T08:40:00Z","status":"submitted"}]`,
	})

	client := ts.client()
	resp, err := client.get("/reports")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var list []reportView
	if err := decodeJSON(resp, &list); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(list))
	}
	if list[0].ID != "p2" || list[0].Session != "PM" {
		t.Errorf("list[0] = %+v", list[0])
	}
}

func TestShowCommand_Share(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /reports/p1/share": `{"id":"p1","text":"[2024-03-06 출근 보고] 제목\n\n내용\n\n#회의\n"}`,
	})

	client := ts.client()
	resp, err := client.get("/reports/p1/share")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result map[string]string
	if err := decodeJSON(resp, &result); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !strings.Contains(result["text"], "#회의") {
		t.Errorf("share text = %q", result["text"])
	}
}

func TestDeleteCommand_NotFound(t *testing.T) {
	ts := newTestServer(t, map[string]string{})

	client := ts.client()
	resp, err := client.delete("/reports/missing")
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}

	var result map[string]bool
	err = decodeJSON(resp, &result)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %q, want it to contain '404'", err.Error())
	}
}

func TestStatusCommand_Stopped(t *testing.T) {
	ts := newTestServer(t, map[string]string{})
	ts.server.Close()

	client := ts.client()
	_, err := client.get("/health")
	if err == nil {
		t.Fatal("expected error for stopped server")
	}
	if !strings.Contains(err.Error(), "not reachable") {
		t.Errorf("error = %q, want it to mention 'not reachable'", err.Error())
	}
}

func TestAPIClient_NoTokenOmitsHeader(t *testing.T) {
	ts := newTestServer(t, map[string]string{
		"GET /health": `{"status":"ok"}`,
	})

	client := ts.client()
	client.token = ""

	resp, err := client.get("/health")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if len(ts.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(ts.requests))
	}
	if ts.requests[0].Auth != "" {
		t.Errorf("auth = %q, want empty without token", ts.requests[0].Auth)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID(long) = %q", got)
	}
	if got := shortID("p1"); got != "p1" {
		t.Errorf("shortID(short) = %q", got)
	}
}

func TestNoColorFlag(t *testing.T) {
	old := noColor
	defer func() { noColor = old }()

	noColor = true
	result := colorize(colorGreen, "test message")
	if strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=true should not contain ANSI codes, got %q", result)
	}

	noColor = false
	result = colorize(colorGreen, "test message")
	if !strings.Contains(result, "\033[") {
		t.Errorf("colorize with noColor=false should contain ANSI codes, got %q", result)
	}
}

func TestConfigShowAll(t *testing.T) {
	cfg := config.Config{}
	cfg.Server.Port = 4700
	cfg.Store.DatabaseID = "db-1"

	keys := config.ShowAll(cfg)
	if len(keys) == 0 {
		t.Fatal("expected non-empty keys from ShowAll")
	}

	foundPort, foundSecret := false, false
	for _, k := range keys {
		if k.Key == "server.port" && k.Value == "4700" {
			foundPort = true
		}
		if k.Key == "store.api_key" {
			foundSecret = true
		}
	}
	if !foundPort {
		t.Error("expected to find server.port=4700 in ShowAll output")
	}
	if foundSecret {
		t.Error("secrets must not appear in ShowAll output")
	}
}
