package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"jzf-portal/internal/config"
)

var ErrNotConfigured = errors.New("serviço de extração não configurado")

// AnalyzeInput carries the uploaded file and the caller's field hints.
type AnalyzeInput struct {
	FileName    string         `json:"fileName"`
	MimeType    string         `json:"mimeType"`
	FileContent string         `json:"fileContent"` // base64
	Hints       map[string]any `json:"hints,omitempty"`
}

// Service pre-fills structured fields from an uploaded file. Output is a
// best-effort suggestion; callers must never use it to gate a transition.
type Service interface {
	Analyze(ctx context.Context, userID string, input AnalyzeInput) (map[string]any, error)
}

type HTTPService struct {
	config   *config.Config
	client   *http.Client
	sessions *cache.Cache
	logger   *zap.Logger
}

func NewService(cfg *config.Config, logger *zap.Logger) Service {
	ttl := time.Duration(cfg.SessionTTLMins) * time.Minute
	return &HTTPService{
		config:   cfg,
		client:   &http.Client{Timeout: 60 * time.Second},
		sessions: cache.New(ttl, 2*ttl),
		logger:   logger,
	}
}

func sessionKey(userID, fileName string) string {
	return userID + "|" + fileName
}

// Analyze posts the file to the external extraction endpoint and caches the
// result per user and file so a resubmitted form does not pay the call twice.
func (s *HTTPService) Analyze(ctx context.Context, userID string, input AnalyzeInput) (map[string]any, error) {
	if s.config.ExtractionURL == "" {
		return nil, ErrNotConfigured
	}

	key := sessionKey(userID, input.FileName)
	if cached, ok := s.sessions.Get(key); ok {
		return cached.(map[string]any), nil
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to encode extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.ExtractionURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.ExtractionKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.ExtractionKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}

	var fields map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("failed to decode extraction response: %w", err)
	}

	s.sessions.Set(key, fields, cache.DefaultExpiration)
	s.logger.Info("extraction analysis completed",
		zap.String("userId", userID),
		zap.String("fileName", input.FileName),
		zap.Int("fieldCount", len(fields)))

	return fields, nil
}
