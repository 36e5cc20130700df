package repository

import (
	"context"

	"github.com/taskdesk/taskdesk-go/internal/model"
)

// TaskRepository handles the persisted task collection.
type TaskRepository struct {
	store Store
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(store Store) *TaskRepository {
	return &TaskRepository{store: store}
}

// List returns the stored tasks in stored order.
// A missing or corrupt collection yields an empty list.
func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	ok, err := loadJSON(ctx, r.store, KeyTasks, &tasks)
	if err != nil {
		return nil, err
	}
	if !ok || tasks == nil {
		return []model.Task{}, nil
	}
	return tasks, nil
}

// ReplaceAll overwrites the stored collection.
func (r *TaskRepository) ReplaceAll(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return saveJSON(ctx, r.store, KeyTasks, tasks)
}
