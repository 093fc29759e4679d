package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"jzf-portal/internal/config"
)

func TestAnalyzeNotConfigured(t *testing.T) {
	svc := NewService(&config.Config{SessionTTLMins: 30}, zap.NewNop())

	_, err := svc.Analyze(context.Background(), "user-1", AnalyzeInput{
		FileName:    "nota.pdf",
		FileContent: "JVBERi0xLjQ=",
	})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("err = %v, want ErrNotConfigured", err)
	}
}

func TestAnalyzePostsAndCaches(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer segredo" {
			t.Errorf("authorization = %q", got)
		}

		var input AnalyzeInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if input.FileName != "nota.pdf" {
			t.Errorf("fileName = %q", input.FileName)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"cnpj":  "12.345.678/0001-90",
			"valor": 1530.50,
		})
	}))
	defer server.Close()

	svc := NewService(&config.Config{
		ExtractionURL:  server.URL,
		ExtractionKey:  "segredo",
		SessionTTLMins: 30,
	}, zap.NewNop())

	input := AnalyzeInput{FileName: "nota.pdf", FileContent: "JVBERi0xLjQ="}

	fields, err := svc.Analyze(context.Background(), "user-1", input)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if fields["cnpj"] != "12.345.678/0001-90" {
		t.Errorf("fields = %+v", fields)
	}

	// Same user and file hits the session cache, not the service.
	if _, err := svc.Analyze(context.Background(), "user-1", input); err != nil {
		t.Fatalf("cached Analyze: %v", err)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}

	// A different user pays its own call.
	if _, err := svc.Analyze(context.Background(), "user-2", input); err != nil {
		t.Fatalf("second user Analyze: %v", err)
	}
	if calls != 2 {
		t.Errorf("upstream calls = %d, want 2", calls)
	}
}

func TestAnalyzeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := NewService(&config.Config{ExtractionURL: server.URL, SessionTTLMins: 30}, zap.NewNop())

	_, err := svc.Analyze(context.Background(), "user-1", AnalyzeInput{FileName: "nota.pdf", FileContent: "x"})
	if err == nil {
		t.Fatal("expected error for upstream 500")
	}
}
