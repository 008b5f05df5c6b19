package logging

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestIsSensitiveHeader(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"Authorization", true},
		{"authorization", true},
		{"Api-Key", true},
		{"X-API-KEY", true},
		{"Cookie", true},
		{"Content-Type", false},
		{"Accept", false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := isSensitiveHeader(tt.header); got != tt.want {
				t.Errorf("isSensitiveHeader(%q) = %v, want %v", tt.header, got, tt.want)
			}
		})
	}
}

func TestTruncateBody(t *testing.T) {
	if got := truncateBody([]byte("hello"), 100); got != "hello" {
		t.Errorf("truncateBody(small) = %q", got)
	}
	got := truncateBody([]byte(strings.Repeat("a", 200)), 50)
	if !strings.HasSuffix(got, "...[truncated]") || len(got) != 50+len("...[truncated]") {
		t.Errorf("truncateBody(large) = %q", got)
	}
}

func TestRedactSensitiveFields(t *testing.T) {
	input := map[string]interface{}{
		"model":   "gpt",
		"api_key": "key123",
		"messages": []interface{}{
			map[string]interface{}{"content": "hello", "access_token": "t"},
		},
	}

	result := redactSensitiveFields(input).(map[string]interface{})
	if result["model"] != "gpt" {
		t.Error("model should not be redacted")
	}
	if result["api_key"] != "[REDACTED]" {
		t.Error("api_key should be redacted")
	}
	msg := result["messages"].([]interface{})[0].(map[string]interface{})
	if msg["access_token"] != "[REDACTED]" || msg["content"] != "hello" {
		t.Errorf("nested message = %v", msg)
	}
}

func TestRoundTripper_LogsAndPreservesBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"echo":` + string(body) + `}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})
	client := &http.Client{Transport: NewLoggingRoundTripper(nil, NewHTTPLogger(logger), true)}

	req, _ := http.NewRequest(http.MethodPost, srv.URL, strings.NewReader(`{"api_key":"secret-value"}`))
	req.Header.Set("Authorization", "Bearer secret-value")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "secret-value") {
		t.Errorf("response body was not preserved: %q", body)
	}

	logged := buf.String()
	if !strings.Contains(logged, "HTTP request") || !strings.Contains(logged, "HTTP response") {
		t.Errorf("missing request/response entries: %q", logged)
	}
	if strings.Contains(logged, "Bearer secret-value") {
		t.Errorf("authorization header leaked: %q", logged)
	}
}
