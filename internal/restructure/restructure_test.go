package restructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/avolkov/restruct/internal/segment"
)

// stubTitler labels chunks from a canned response table and records calls.
type stubTitler struct {
	mu    sync.Mutex
	calls int
	label func(content string) (string, error)
}

func (s *stubTitler) GenerateTitle(ctx context.Context, content string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.label == nil {
		return "stub title", nil
	}
	return s.label(content)
}

func longContent(sections int) string {
	var sb strings.Builder
	for i := 0; i < sections; i++ {
		topic := fmt.Sprintf("topic%d", i)
		for j := 0; j < 5; j++ {
			fmt.Fprintf(&sb, "%s sentence number %d with plenty of filler words. ", topic, j)
		}
	}
	return sb.String()
}

func TestRun_WithinBudgetSingleSection(t *testing.T) {
	titler := &stubTitler{}
	res, err := Run(context.Background(), titler, "Doc", "short content.", Options{MaxWordCount: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(res.Sections))
	}
	if res.Sections[0].Title != "Doc" {
		t.Errorf("got title %q, want original", res.Sections[0].Title)
	}
	if res.Sections[0].Content != "short content." {
		t.Errorf("got %q", res.Sections[0].Content)
	}
	if titler.calls != 0 {
		t.Errorf("titler called %d times for within-budget input", titler.calls)
	}
}

func TestRun_InvalidBudget(t *testing.T) {
	_, err := Run(context.Background(), nil, "Doc", "content.", Options{MaxWordCount: -1})
	if !errors.Is(err, segment.ErrInvalidBudget) {
		t.Errorf("got %v, want ErrInvalidBudget", err)
	}
}

func TestRun_EmptyContent(t *testing.T) {
	res, err := Run(context.Background(), nil, "Doc", "   ", Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sections) != 0 {
		t.Errorf("expected no sections, got %d", len(res.Sections))
	}
}

func TestRun_NilTitlerUsesDefaultLabels(t *testing.T) {
	res, err := Run(context.Background(), nil, "Doc", longContent(4), Options{MaxWordCount: 120})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sections) < 2 {
		t.Fatalf("expected multiple sections, got %d", len(res.Sections))
	}
	for i, sec := range res.Sections {
		want := fmt.Sprintf("Doc - part %d", i+1)
		if sec.Title != want {
			t.Errorf("section %d: got %q, want %q", i, sec.Title, want)
		}
	}
}

func TestRun_GeneratedTitlesApplied(t *testing.T) {
	titler := &stubTitler{label: func(content string) (string, error) {
		return "Generated", nil
	}}
	res, err := Run(context.Background(), titler, "Doc", longContent(4), Options{MaxWordCount: 120})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.TitleFailures) != 0 {
		t.Fatalf("unexpected failures: %v", res.TitleFailures)
	}
	for i, sec := range res.Sections {
		if sec.Title != "Generated" {
			t.Errorf("section %d: got %q", i, sec.Title)
		}
	}
	if titler.calls != len(res.Sections) {
		t.Errorf("titler called %d times for %d sections", titler.calls, len(res.Sections))
	}
}

func TestRun_TitleFailureKeepsDefaultLabel(t *testing.T) {
	boom := errors.New("model unavailable")
	titler := &stubTitler{label: func(content string) (string, error) {
		if strings.Contains(content, "topic0") {
			return "", boom
		}
		return "Generated", nil
	}}
	res, err := Run(context.Background(), titler, "Doc", longContent(4), Options{MaxWordCount: 120})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.TitleFailures) == 0 {
		t.Fatal("expected at least one title failure")
	}
	for _, tf := range res.TitleFailures {
		if !errors.Is(tf.Err, boom) {
			t.Errorf("failure %d: got %v", tf.Index, tf.Err)
		}
		want := fmt.Sprintf("Doc - part %d", tf.Index+1)
		if res.Sections[tf.Index].Title != want {
			t.Errorf("failed section %d: got %q, want default %q", tf.Index, res.Sections[tf.Index].Title, want)
		}
	}
}

func TestRun_FailuresSortedByIndex(t *testing.T) {
	titler := &stubTitler{label: func(content string) (string, error) {
		return "", errors.New("always fails")
	}}
	res, err := Run(context.Background(), titler, "Doc", longContent(6), Options{MaxWordCount: 120, MaxConcurrentTitles: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.TitleFailures) != len(res.Sections) {
		t.Fatalf("expected %d failures, got %d", len(res.Sections), len(res.TitleFailures))
	}
	for i := 1; i < len(res.TitleFailures); i++ {
		if res.TitleFailures[i].Index <= res.TitleFailures[i-1].Index {
			t.Fatalf("failures not sorted: %v", res.TitleFailures)
		}
	}
}

func TestRun_CancellationKeepsPackedSections(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	titler := &stubTitler{}
	res, err := Run(ctx, titler, "Doc", longContent(4), Options{MaxWordCount: 120})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Sections) < 2 {
		t.Fatalf("cancellation discarded sections: got %d", len(res.Sections))
	}
	for i, sec := range res.Sections {
		want := fmt.Sprintf("Doc - part %d", i+1)
		if sec.Title != want {
			t.Errorf("section %d: got %q, want default %q", i, sec.Title, want)
		}
	}
	if len(res.TitleFailures) != len(res.Sections) {
		t.Errorf("expected a failure per section, got %d of %d", len(res.TitleFailures), len(res.Sections))
	}
}

func TestRun_EmptyGeneratedTitleKeepsDefault(t *testing.T) {
	titler := &stubTitler{label: func(content string) (string, error) {
		return "", nil
	}}
	res, err := Run(context.Background(), titler, "Doc", longContent(4), Options{MaxWordCount: 120})
	if err != nil {
		t.Fatal(err)
	}
	for i, sec := range res.Sections {
		want := fmt.Sprintf("Doc - part %d", i+1)
		if sec.Title != want {
			t.Errorf("section %d: got %q, want default %q", i, sec.Title, want)
		}
	}
}
