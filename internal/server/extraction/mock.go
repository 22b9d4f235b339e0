package extraction

import (
	"context"
	"fmt"
	"sync/atomic"
)

// MockResponse is what MockClient answers with unless told otherwise.
const MockResponse = "```json\n{\"name\": \"Mock product\", \"price\": \"0.00\", \"description\": \"Canned extraction result\"}\n```"

// MockClient answers every request with a fixed response. It backs mock
// mode and stands in for the model in tests.
type MockClient struct {
	Response string
	Err      error

	calls atomic.Int64
}

var _ Extractor = (*MockClient)(nil)

func NewMockClient() *MockClient {
	return &MockClient{Response: MockResponse}
}

func (m *MockClient) Extract(ctx context.Context, content string) (string, error) {
	m.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("mock extract: %w", err)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// Calls reports how many times Extract has been invoked.
func (m *MockClient) Calls() int {
	return int(m.calls.Load())
}
