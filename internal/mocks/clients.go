package mocks

import (
	"context"
	"fmt"

	"github.com/querytube/insight-services/internal/llm"
	"github.com/querytube/insight-services/internal/youtube"
)

// MockGenerator is a mock implementation of llm.Generator that replays
// Responses in order and records every prompt.
type MockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	Responses    []string
	Errors       []error
	Prompts      []string
}

var _ llm.Generator = (*MockGenerator)(nil)

func NewMockGenerator(responses ...string) *MockGenerator {
	return &MockGenerator{Responses: responses}
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	call := len(m.Prompts)
	m.Prompts = append(m.Prompts, prompt)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	if call < len(m.Errors) && m.Errors[call] != nil {
		return "", m.Errors[call]
	}
	if call < len(m.Responses) {
		return m.Responses[call], nil
	}
	return "", fmt.Errorf("mock generator: no response for call %d", call)
}

// MockCommentSource is a mock implementation of youtube.CommentSource.
// Pages are keyed by page token; the first page uses "".
type MockCommentSource struct {
	ListFunc func(ctx context.Context, req youtube.PageRequest) (*youtube.Page, error)
	Pages    map[string]*youtube.Page
	Err      error
	Requests []youtube.PageRequest
}

var _ youtube.CommentSource = (*MockCommentSource)(nil)

func NewMockCommentSource() *MockCommentSource {
	return &MockCommentSource{Pages: make(map[string]*youtube.Page)}
}

func (m *MockCommentSource) ListComments(ctx context.Context, req youtube.PageRequest) (*youtube.Page, error) {
	m.Requests = append(m.Requests, req)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	page, ok := m.Pages[req.PageToken]
	if !ok {
		return &youtube.Page{}, nil
	}
	return page, nil
}

// GeneratePages builds total comments split into pages of size pageSize,
// chained by tokens "p1", "p2", ...
func GeneratePages(total, pageSize int) map[string]*youtube.Page {
	pages := make(map[string]*youtube.Page)
	token := ""
	for start, n := 0, 1; start < total; start, n = start+pageSize, n+1 {
		page := &youtube.Page{}
		for i := start; i < total && i < start+pageSize; i++ {
			page.Comments = append(page.Comments, youtube.Comment{
				ID:   fmt.Sprintf("comment-%04d", i),
				Text: fmt.Sprintf("comment number %d", i),
			})
		}
		if start+pageSize < total {
			page.NextPageToken = fmt.Sprintf("p%d", n)
		}
		pages[token] = page
		token = page.NextPageToken
	}
	return pages
}

// FixedScorer returns the same polarity for every text
type FixedScorer float64

func (f FixedScorer) Polarity(string) float64 { return float64(f) }

// TextScorer looks polarity up by exact text, defaulting to 0
type TextScorer map[string]float64

func (s TextScorer) Polarity(text string) float64 { return s[text] }
