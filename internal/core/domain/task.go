package domain

import "time"

// TaskType identifies the kind of background work a task represents
type TaskType string

const (
	// TaskIngestGuidelines (re)indexes the guideline directory
	TaskIngestGuidelines TaskType = "ingest_guidelines"
)

// TaskStatus is the lifecycle state of a queued task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Task is a unit of background work processed by the worker
type Task struct {
	ID         string            `json:"id"`
	Type       TaskType          `json:"type"`
	Payload    map[string]string `json:"payload,omitempty"`
	Status     TaskStatus        `json:"status"`
	Retries    int               `json:"retries"`
	MaxRetries int               `json:"max_retries"`
	LastError  string            `json:"last_error,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// NewIngestTask creates a pending guideline-ingest task
func NewIngestTask(id, directory string, reset bool) *Task {
	payload := map[string]string{"directory": directory}
	if reset {
		payload["reset"] = "true"
	}
	now := time.Now()
	return &Task{
		ID:         id,
		Type:       TaskIngestGuidelines,
		Payload:    payload,
		Status:     TaskStatusPending,
		MaxRetries: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
