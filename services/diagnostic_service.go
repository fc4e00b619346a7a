package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/maa-telecom/repair-pos-api/config"
)

// FallbackDiagnostic is returned whenever the generative-text call fails for
// any reason. The shop floor sees this placeholder, never a raw error.
const FallbackDiagnostic = "AI Diagnostic unavailable at the moment. Please proceed with manual inspection."

// diagnosticPrompt is the fixed instructional preamble sent with every
// request. The two verbs come straight from the technicians' workflow:
// a checklist first, then a likely fix.
const diagnosticPrompt = `As a mobile repair expert for a shop called Maa Telecom, provide a concise diagnostic checklist and possible solution for the following mobile device issue.
Device Model: %s
Issue Description: %s

Keep it professional, bullet-pointed, and focused on hardware/software troubleshooting steps.`

// DiagnosticService produces a diagnostic suggestion for a device issue. It
// is a single-shot contract: one request, no retry, and a fixed fallback
// string instead of an error on any failure.
type DiagnosticService interface {
	// SuggestDiagnostic returns suggestion text for the given device and
	// issue, or FallbackDiagnostic when the underlying call fails.
	SuggestDiagnostic(ctx context.Context, deviceModel, issueDescription string) string
}

// GeminiDiagnosticService implements DiagnosticService against Google's
// generative-language API.
type GeminiDiagnosticService struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var diagnosticServiceInstance DiagnosticService

// InitDiagnosticService initializes the diagnostic service from config.
func InitDiagnosticService(cfg *config.Config) DiagnosticService {
	diagnosticServiceInstance = NewGeminiDiagnosticService(cfg)
	return diagnosticServiceInstance
}

// GetDiagnosticService returns the initialized diagnostic service instance.
func GetDiagnosticService() DiagnosticService {
	return diagnosticServiceInstance
}

// SetDiagnosticService sets the diagnostic service instance (primarily for testing).
func SetDiagnosticService(service DiagnosticService) {
	diagnosticServiceInstance = service
}

// NewGeminiDiagnosticService creates a new Gemini-backed diagnostic service.
func NewGeminiDiagnosticService(cfg *config.Config) *GeminiDiagnosticService {
	return &GeminiDiagnosticService{
		baseURL: cfg.GeminiBaseURL,
		model:   cfg.GeminiModel,
		apiKey:  cfg.GeminiAPIKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// generateContentRequest mirrors the generateContent request body.
type generateContentRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generatePart struct {
	Text string `json:"text"`
}

// generateContentResponse holds the slice of the response we care about.
type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// SuggestDiagnostic sends the issue to the generative-text endpoint and
// returns the suggestion verbatim. The request carries the caller's context,
// so an abandoned intake flow cancels the call and a late result can never
// attach to a stale draft.
func (s *GeminiDiagnosticService) SuggestDiagnostic(ctx context.Context, deviceModel, issueDescription string) string {
	suggestion, err := s.generate(ctx, fmt.Sprintf(diagnosticPrompt, deviceModel, issueDescription))
	if err != nil {
		log.WithFields(log.Fields{
			"deviceModel": deviceModel,
			"error":       err,
		}).Warn("Diagnostic suggestion unavailable, returning fallback")
		return FallbackDiagnostic
	}
	return suggestion
}

func (s *GeminiDiagnosticService) generate(ctx context.Context, prompt string) (string, error) {
	// If the base URL lacks a scheme (bare host in config), assume https.
	base := s.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", base, s.model)

	body, err := json.Marshal(generateContentRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call generateContent endpoint: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("generateContent endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode generateContent response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("generateContent response contained no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}
