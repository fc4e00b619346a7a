package services

import (
	"context"
	"sync"
)

// MockDiagnosticService is a mock implementation of DiagnosticService for testing
type MockDiagnosticService struct {
	// Suggestion is returned from every call. Leave empty to simulate an
	// unavailable gateway (the fixed fallback is returned instead).
	Suggestion string

	mu    sync.Mutex
	calls []MockDiagnosticCall
}

// MockDiagnosticCall records the arguments of one SuggestDiagnostic call.
type MockDiagnosticCall struct {
	DeviceModel      string
	IssueDescription string
}

// NewMockDiagnosticService creates a new mock diagnostic service
func NewMockDiagnosticService() *MockDiagnosticService {
	return &MockDiagnosticService{}
}

// SetAsMockForTesting sets this mock as the global diagnostic service instance for testing
func (m *MockDiagnosticService) SetAsMockForTesting() {
	SetDiagnosticService(m)
}

// SuggestDiagnostic records the call and returns the configured suggestion,
// or the fixed fallback when none is configured.
func (m *MockDiagnosticService) SuggestDiagnostic(ctx context.Context, deviceModel, issueDescription string) string {
	m.mu.Lock()
	m.calls = append(m.calls, MockDiagnosticCall{
		DeviceModel:      deviceModel,
		IssueDescription: issueDescription,
	})
	m.mu.Unlock()

	if m.Suggestion == "" {
		return FallbackDiagnostic
	}
	return m.Suggestion
}

// Calls returns all recorded calls (for testing assertions)
func (m *MockDiagnosticService) Calls() []MockDiagnosticCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]MockDiagnosticCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Clear removes all recorded calls
func (m *MockDiagnosticService) Clear() {
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}
