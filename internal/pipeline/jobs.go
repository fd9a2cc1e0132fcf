package pipeline

import (
	"sync"
	"time"
)

// JobStatus represents the state of a restructuring job.
type JobStatus string

const (
	StatusQueued        JobStatus = "queued"
	StatusParsing       JobStatus = "parsing"
	StatusRestructuring JobStatus = "restructuring"
	StatusInterpreting  JobStatus = "interpreting"
	StatusCompleted     JobStatus = "completed"
	StatusFailed        JobStatus = "failed"
	StatusPartial       JobStatus = "partial"
)

// SectionResult is one restructured, labeled, optionally interpreted piece of
// a chapter.
type SectionResult struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	WordCount int      `json:"word_count"`
	Summary   string   `json:"summary,omitempty"`
	KeyPoints []string `json:"key_points,omitempty"`
}

// ChapterResult holds the restructured sections of one source chapter.
type ChapterResult struct {
	Title    string          `json:"title"`
	Sections []SectionResult `json:"sections"`
}

// Job tracks the state of one document restructuring run.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	Filename string `json:"filename"`
	Title    string `json:"title"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	MaxWordCount int     `json:"max_word_count"`
	Threshold    float64 `json:"similarity_threshold"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	results  []ChapterResult
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalChapters       int      `json:"total_chapters"`
	ChaptersProcessed   int      `json:"chapters_processed"`
	TotalSections       int      `json:"total_sections"`
	SectionsInterpreted int      `json:"sections_interpreted"`
	TitleFallbacks      int      `json:"title_fallbacks"`
	Errors              []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalChapters records the chapter count after parsing.
func (j *Job) SetTotalChapters(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChapters = n
	j.UpdatedAt = time.Now()
}

// IncrChaptersProcessed atomically bumps the processed chapter count.
func (j *Job) IncrChaptersProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChaptersProcessed++
	j.UpdatedAt = time.Now()
}

// AddSections records section and title-fallback counts for one chapter.
func (j *Job) AddSections(sections, fallbacks int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalSections += sections
	j.Progress.TitleFallbacks += fallbacks
	j.UpdatedAt = time.Now()
}

// IncrSectionsInterpreted atomically bumps the interpreted section count.
func (j *Job) IncrSectionsInterpreted() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SectionsInterpreted++
	j.UpdatedAt = time.Now()
}

// AddResult appends one chapter's restructured output.
func (j *Job) AddResult(res ChapterResult) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = append(j.results, res)
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw file bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string          `json:"job_id"`
	Filename string          `json:"filename"`
	Title    string          `json:"title"`
	Status   JobStatus       `json:"status"`
	Phase    string          `json:"phase"`
	Progress Progress        `json:"progress"`
	Results  []ChapterResult `json:"results,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	results := make([]ChapterResult, len(j.results))
	copy(results, j.results)
	return JobSnapshot{
		ID:       j.ID,
		Filename: j.Filename,
		Title:    j.Title,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			TotalChapters:       j.Progress.TotalChapters,
			ChaptersProcessed:   j.Progress.ChaptersProcessed,
			TotalSections:       j.Progress.TotalSections,
			SectionsInterpreted: j.Progress.SectionsInterpreted,
			TitleFallbacks:      j.Progress.TitleFallbacks,
			Errors:              errs,
		},
		Results: results,
	}
}
