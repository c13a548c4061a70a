package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/fitweb/fitweb/internal/upstream"
)

// WeeklySummary carries both the raw markdown and the rendered HTML so the
// dashboard can embed it directly.
type WeeklySummary struct {
	Markdown string `json:"markdown"`
	HTML     string `json:"html"`
}

// SummaryService fetches the AI-generated weekly summary and renders its
// markdown. The upstream call is much slower than the chart reads, which is
// why it lives behind its own endpoint instead of riding in the overview.
type SummaryService struct {
	tracker *upstream.Client
	md      goldmark.Markdown
}

func NewSummaryService(tracker *upstream.Client) *SummaryService {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			goldmarkhtml.WithHardWraps(),
			goldmarkhtml.WithXHTML(),
		),
	)
	return &SummaryService{tracker: tracker, md: md}
}

func (s *SummaryService) GetWeeklySummary(ctx context.Context, token string) (*WeeklySummary, error) {
	markdown, err := s.tracker.Summary(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("fetch weekly summary: %w", err)
	}

	var buf bytes.Buffer
	err = s.md.Convert([]byte(markdown), &buf)
	if err != nil {
		return nil, fmt.Errorf("render summary markdown: %w", err)
	}
	return &WeeklySummary{Markdown: markdown, HTML: buf.String()}, nil
}
