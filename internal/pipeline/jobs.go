package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// JobStatus represents the state of an analysis job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusLoading   JobStatus = "loading"
	StatusAnalyzing JobStatus = "analyzing"
	StatusStoring   JobStatus = "storing"
	StatusCompleted JobStatus = "completed"
	StatusPartial   JobStatus = "partial"
	StatusFailed    JobStatus = "failed"
)

// Job tracks the state of one corpus analysis.
type Job struct {
	mu sync.Mutex

	ID      string `json:"job_id"`
	Journal string `json:"journal_name"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`
	ReportID string   `json:"report_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	uploads []Upload
	errors  []string
}

// Progress tracks processing progress.
type Progress struct {
	DocumentsTotal     int      `json:"documents_total"`
	DocumentsProcessed int      `json:"documents_processed"`
	DocumentsFailed    int      `json:"documents_failed"`
	Errors             []string `json:"errors"`
}

// NewJob creates a queued job over uploads.
func NewJob(journal string, uploads []Upload) *Job {
	now := time.Now()
	return &Job{
		ID:        uuid.NewString(),
		Journal:   journal,
		Status:    StatusQueued,
		Phase:     "queued",
		Progress:  Progress{DocumentsTotal: len(uploads)},
		CreatedAt: now,
		UpdatedAt: now,
		uploads:   uploads,
	}
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
		if now.Sub(job.updatedAt()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

func (j *Job) updatedAt() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
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

// DocumentDone counts one finished document, failed or not.
func (j *Job) DocumentDone(failed bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsProcessed++
	if failed {
		j.Progress.DocumentsFailed++
	}
	j.UpdatedAt = time.Now()
}

// SetReportID records where the finished report was stored.
func (j *Job) SetReportID(id string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ReportID = id
	j.UpdatedAt = time.Now()
}

// Uploads returns the files submitted with the job.
func (j *Job) Uploads() []Upload {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.uploads
}

// releaseUploads drops the file bytes once text has been extracted.
func (j *Job) releaseUploads() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.uploads = nil
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string    `json:"job_id"`
	Journal   string    `json:"journal_name"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Progress  Progress  `json:"progress"`
	ReportID  string    `json:"report_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := append([]string{}, j.Progress.Errors...)
	return JobSnapshot{
		ID:      j.ID,
		Journal: j.Journal,
		Status:  j.Status,
		Phase:   j.Phase,
		Progress: Progress{
			DocumentsTotal:     j.Progress.DocumentsTotal,
			DocumentsProcessed: j.Progress.DocumentsProcessed,
			DocumentsFailed:    j.Progress.DocumentsFailed,
			Errors:             errs,
		},
		ReportID:  j.ReportID,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
