package model

import "time"

// Task represents a single entry in the task list.
// Deleting is set while the record waits out the removal grace window.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Important bool      `json:"important"`
	CreatedAt time.Time `json:"createdAt"`
	Deleting  bool      `json:"deleting,omitempty"`
}

// CreateTaskRequest represents an add-task submission.
type CreateTaskRequest struct {
	Text string `json:"text"`
}

// TaskCounts are the derived counters shown next to the list.
// None of them include tasks that are being deleted.
type TaskCounts struct {
	Active    int `json:"active"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Progress  int `json:"progress"`
}

// TaskListResponse represents a filtered task listing.
type TaskListResponse struct {
	Filter Filter     `json:"filter"`
	Search string     `json:"search,omitempty"`
	Tasks  []Task     `json:"tasks"`
	Counts TaskCounts `json:"counts"`
}
