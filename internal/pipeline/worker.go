package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avolkov/restruct/internal/llm"
	"github.com/avolkov/restruct/internal/parser"
	"github.com/avolkov/restruct/internal/repair"
	"github.com/avolkov/restruct/internal/restructure"
)

// Worker processes a single restructuring job: parse the document, restructure
// every chapter under the size budget, then interpret each section.
type Worker struct {
	client *llm.Client
	log    *slog.Logger

	opts                   restructure.Options
	maxConcurrentInterpret int
	pdfFallback            bool
}

func NewWorker(client *llm.Client, log *slog.Logger, opts restructure.Options, maxInterpret int, pdfFallback bool) *Worker {
	if maxInterpret <= 0 {
		maxInterpret = 4
	}
	return &Worker{
		client:                 client,
		log:                    log,
		opts:                   opts,
		maxConcurrentInterpret: maxInterpret,
		pdfFallback:            pdfFallback,
	}
}

// Process runs the full pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	// Phase 1: Parse.
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pp, ok := p.(*parser.PDFParser); ok {
		pp.FallbackPdftotext = w.pdfFallback
	}

	doc, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		doc.Title = job.Title
	}

	if len(doc.Chapters) == 0 {
		log.Warn("no chapters produced")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	job.SetTotalChapters(len(doc.Chapters))
	log.Info("parsed document", "chapters", len(doc.Chapters))

	opts := w.opts
	if job.MaxWordCount > 0 {
		opts.MaxWordCount = job.MaxWordCount
	}
	if job.Threshold > 0 {
		opts.Threshold = job.Threshold
	}

	// Phase 2: Restructure each chapter.
	job.SetStatus(StatusRestructuring, "restructuring")
	hadErrors := false

	type chapterSections struct {
		title    string
		sections []restructure.Section
	}
	var restructured []chapterSections

	for i, chapter := range doc.Chapters {
		title := chapter.Title
		if title == "" {
			title = fmt.Sprintf("%s - chapter %d", doc.Title, i+1)
		}

		res, err := restructure.Run(ctx, w.client, title, chapter.Text, opts)
		if err != nil {
			log.Error("restructure failed", "chapter", i, "error", err)
			job.AddError(fmt.Sprintf("chapter %d: %s", i, err))
			hadErrors = true
			job.IncrChaptersProcessed()
			continue
		}
		for _, tf := range res.TitleFailures {
			log.Warn("title generation degraded", "chapter", i, "section", tf.Index, "error", tf.Err)
		}
		job.AddSections(len(res.Sections), len(res.TitleFailures))
		job.IncrChaptersProcessed()
		restructured = append(restructured, chapterSections{title: title, sections: res.Sections})

		if ctx.Err() != nil {
			break
		}
	}

	// Phase 3: Interpret each section with bounded concurrency.
	job.SetStatus(StatusInterpreting, "interpreting")
	for _, ch := range restructured {
		result := ChapterResult{
			Title:    ch.title,
			Sections: make([]SectionResult, len(ch.sections)),
		}

		sem := make(chan struct{}, w.maxConcurrentInterpret)
		done := make(chan int, len(ch.sections))

		for i, sec := range ch.sections {
			result.Sections[i] = SectionResult{
				Title:     sec.Title,
				Content:   sec.Content,
				WordCount: sec.WordCount,
			}

			sem <- struct{}{}
			go func(i int, sec restructure.Section) {
				defer func() { <-sem }()
				defer func() { done <- i }()

				interp, err := w.interpretSection(ctx, doc.Title, sec)
				if err != nil {
					log.Error("interpretation failed", "chapter", ch.title, "section", i, "error", err)
					job.AddError(fmt.Sprintf("%s section %d: %s", ch.title, i, err))
					return
				}
				result.Sections[i].Summary = interp.Summary
				result.Sections[i].KeyPoints = interp.KeyPoints
				job.IncrSectionsInterpreted()
			}(i, sec)
		}
		for range ch.sections {
			<-done
		}

		job.AddResult(result)
	}

	snap := job.Snapshot()
	if len(snap.Progress.Errors) > 0 {
		hadErrors = true
	}

	switch {
	case hadErrors && len(restructured) > 0:
		job.SetStatus(StatusPartial, "done")
	case hadErrors:
		job.SetStatus(StatusFailed, "interpreting")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
	log.Info("job finished", "status", job.Snapshot().Status, "sections", snap.Progress.TotalSections)
}

// interpretSection calls the interpretation model for one section and
// recovers the structured payload, retrying transient upstream failures.
func (w *Worker) interpretSection(ctx context.Context, bookTitle string, sec restructure.Section) (*llm.Interpretation, error) {
	prompt := llm.BuildInterpretationPrompt(bookTitle, sec.Title, sec.Content)

	var lastErr error
	for attempt := 0; attempt < MaxRetries; attempt++ {
		raw, err := w.client.Generate(ctx, prompt)
		if err != nil {
			lastErr = err
			if !IsRetryable(err) {
				return nil, err
			}
			w.log.Warn("retryable interpretation error", "attempt", attempt, "error", err)
			select {
			case <-time.After(Backoff(attempt)):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var interp llm.Interpretation
		if _, err := repair.Recover(raw, &interp); err != nil {
			// Recovery failures are data problems, not transport problems;
			// retrying the model call is the only remedy.
			lastErr = err
			w.log.Warn("response recovery failed", "attempt", attempt, "error", err)
			continue
		}
		return &interp, nil
	}
	return nil, lastErr
}
