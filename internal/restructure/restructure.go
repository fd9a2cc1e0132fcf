// Package restructure composes sentence splitting, topic segmentation, and
// budget packing, then labels each packed chunk via an external title
// generator.
package restructure

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avolkov/restruct/internal/segment"
)

// TitleGenerator labels one chunk of text. Implementations may be slow or
// fail per call; failures are degraded, never fatal.
type TitleGenerator interface {
	GenerateTitle(ctx context.Context, content string) (string, error)
}

// Options tunes one restructuring run. Zero values take defaults: a
// MaxWordCount of exactly 0 means "use the default budget", so only a
// negative value is rejected here. Callers that must treat 0 as invalid
// validate before building Options; segment.Pack itself rejects any
// non-positive budget.
type Options struct {
	MaxWordCount        int           // Size budget per section, non-whitespace chars (default 10000).
	Threshold           float64       // Similarity threshold for segmentation (default 0.3).
	Window              int           // Smoothing window for segmentation (default 3).
	MaxConcurrentTitles int           // Bounded parallelism for title calls (default 4).
	TitleTimeout        time.Duration // Per-call timeout for title generation (default 60s).
}

func (o Options) withDefaults() Options {
	if o.MaxWordCount == 0 {
		o.MaxWordCount = 10000
	}
	if o.MaxConcurrentTitles <= 0 {
		o.MaxConcurrentTitles = 4
	}
	if o.TitleTimeout <= 0 {
		o.TitleTimeout = 60 * time.Second
	}
	return o
}

// Section is one size-bounded, labeled piece of the restructured document.
type Section struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

// TitleFailure records a degraded per-chunk title call. The section keeps its
// default label.
type TitleFailure struct {
	Index int
	Err   error
}

// Result is the outcome of one restructuring run. TitleFailures aggregates
// per-chunk degradations; Sections is always complete.
type Result struct {
	Sections      []Section
	TitleFailures []TitleFailure
}

// Run splits content into topic-coherent segments, packs them under the size
// budget, and labels every packed chunk. Title calls are independent: they run
// with bounded parallelism and a per-call timeout, and a failed or cancelled
// call leaves its section with the derived default label "<title> - part N".
// Cancellation never discards already-packed sections.
func Run(ctx context.Context, titler TitleGenerator, title, content string, opts Options) (Result, error) {
	opts = opts.withDefaults()
	if opts.MaxWordCount < 0 {
		return Result{}, segment.ErrInvalidBudget
	}

	total := segment.WordCount(content)
	if total == 0 {
		return Result{}, nil
	}

	// Within budget: keep the document whole under its original title.
	if total <= opts.MaxWordCount {
		return Result{Sections: []Section{{Title: title, Content: content, WordCount: total}}}, nil
	}

	sentences := segment.SplitSentences(content)
	segments := segment.Split(sentences, segment.Options{
		Threshold: opts.Threshold,
		Window:    opts.Window,
	})
	chunks, err := segment.Pack(segments, opts.MaxWordCount)
	if err != nil {
		return Result{}, err
	}

	sections := make([]Section, len(chunks))
	for i, c := range chunks {
		sections[i] = Section{
			Title:     fmt.Sprintf("%s - part %d", title, i+1),
			Content:   c.Text,
			WordCount: c.WordCount,
		}
	}

	if titler == nil {
		return Result{Sections: sections}, nil
	}

	var (
		mu       sync.Mutex
		failures []TitleFailure
		wg       sync.WaitGroup
	)
	sem := make(chan struct{}, opts.MaxConcurrentTitles)

	for i := range sections {
		// Once the caller cancels, the remaining sections keep their
		// default labels; the packed work is still returned.
		if ctx.Err() != nil {
			mu.Lock()
			failures = append(failures, TitleFailure{Index: i, Err: ctx.Err()})
			mu.Unlock()
			continue
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			callCtx, cancel := context.WithTimeout(ctx, opts.TitleTimeout)
			defer cancel()

			label, err := titler.GenerateTitle(callCtx, sections[i].Content)
			if err != nil {
				mu.Lock()
				failures = append(failures, TitleFailure{Index: i, Err: err})
				mu.Unlock()
				return
			}
			if label != "" {
				sections[i].Title = label
			}
		}(i)
	}
	wg.Wait()

	sort.Slice(failures, func(a, b int) bool { return failures[a].Index < failures[b].Index })
	return Result{Sections: sections, TitleFailures: failures}, nil
}
