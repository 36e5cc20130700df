package service

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taskdesk/taskdesk-go/internal/async"
	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/repository"
)

// TaskService handles the task list. Storage is the source of truth; every
// operation reads the collection, changes it and writes it back under mu.
type TaskService struct {
	mu       sync.Mutex
	repo     *repository.TaskRepository
	opts     Options
	removals map[int64]*async.Pending[model.Task]
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.TaskRepository, opts Options) *TaskService {
	return &TaskService{
		repo:     repo,
		opts:     opts.withDefaults(),
		removals: make(map[int64]*async.Pending[model.Task]),
	}
}

// AddTask inserts a new task at the front of the list.
func (s *TaskService) AddTask(ctx context.Context, text string) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, ErrTaskTextRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return model.Task{}, err
	}

	now := s.opts.Now().UTC().Truncate(time.Millisecond)
	task := model.Task{
		ID:        nextID(tasks, now),
		Text:      text,
		CreatedAt: now,
	}

	tasks = append([]model.Task{task}, tasks...)
	if err := s.repo.ReplaceAll(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// nextID derives an id from the creation time, bumped past the largest
// existing id so ids stay unique when two tasks share a millisecond.
func nextID(tasks []model.Task, now time.Time) int64 {
	id := now.UnixMilli()
	for _, t := range tasks {
		if t.ID >= id {
			id = t.ID + 1
		}
	}
	return id
}

// ToggleComplete flips the completed flag of the task.
func (s *TaskService) ToggleComplete(ctx context.Context, id int64) (model.Task, error) {
	return s.update(ctx, id, func(t *model.Task) { t.Completed = !t.Completed })
}

// ToggleImportant flips the important flag of the task.
func (s *TaskService) ToggleImportant(ctx context.Context, id int64) (model.Task, error) {
	return s.update(ctx, id, func(t *model.Task) { t.Important = !t.Important })
}

func (s *TaskService) update(ctx context.Context, id int64, fn func(*model.Task)) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return model.Task{}, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	fn(&tasks[i])

	if err := s.repo.ReplaceAll(ctx, tasks); err != nil {
		return model.Task{}, err
	}
	return tasks[i], nil
}

// DeleteTask flags the task as deleting right away and removes it once the
// grace window has passed. The returned Pending resolves with the removed
// task. Deleting a task that is already on its way out returns the same
// Pending as the first call.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) (*async.Pending[model.Task], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.removals[id]; ok {
		return p, nil
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return nil, ErrTaskNotFound
	}
	tasks[i].Deleting = true
	if err := s.repo.ReplaceAll(ctx, tasks); err != nil {
		return nil, err
	}

	purgeCtx := context.WithoutCancel(ctx)
	if s.opts.DeleteGrace <= 0 {
		task, err := s.purgeLocked(purgeCtx, id)
		return async.Resolved(task, err), nil
	}

	p := async.After(s.opts.Timer, s.opts.DeleteGrace, func() (model.Task, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.removals, id)
		return s.purgeLocked(purgeCtx, id)
	})
	s.removals[id] = p
	return p, nil
}

func (s *TaskService) purgeLocked(ctx context.Context, id int64) (model.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		slog.Error("loading tasks for removal failed", "id", id, "error", err)
		return model.Task{}, err
	}

	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	removed := tasks[i]

	if err := s.repo.ReplaceAll(ctx, slices.Delete(tasks, i, i+1)); err != nil {
		slog.Error("removing task failed", "id", id, "error", err)
		return model.Task{}, err
	}
	slog.Info("task deleted", "id", id)
	return removed, nil
}

// PurgeStale removes tasks left flagged as deleting by a previous run that
// stopped inside the grace window. Tasks with a removal in flight here are
// left to their timer.
func (s *TaskService) PurgeStale(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return 0, err
	}

	kept := tasks[:0]
	for _, t := range tasks {
		if _, inFlight := s.removals[t.ID]; t.Deleting && !inFlight {
			continue
		}
		kept = append(kept, t)
	}

	purged := len(tasks) - len(kept)
	if purged == 0 {
		return 0, nil
	}
	if err := s.repo.ReplaceAll(ctx, kept); err != nil {
		return 0, err
	}
	slog.Info("purged stale deleting tasks", "count", purged)
	return purged, nil
}

// Get returns the task with id, including one that is being deleted.
func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return model.Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return model.Task{}, ErrTaskNotFound
	}
	return tasks[i], nil
}

// ListView returns the tasks to display: important first, newest first,
// narrowed by filter and a case-insensitive search on the text. Tasks being
// deleted are never included. The stored collection is not modified.
func (s *TaskService) ListView(ctx context.Context, filter model.Filter, search string) ([]model.Task, error) {
	if !filter.Valid() {
		return nil, ErrInvalidFilter
	}

	tasks, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return project(tasks, filter, search), nil
}

func project(tasks []model.Task, filter model.Filter, search string) []model.Task {
	search = strings.ToLower(strings.TrimSpace(search))

	view := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Deleting {
			continue
		}
		if filter == model.FilterActive && t.Completed {
			continue
		}
		if filter == model.FilterCompleted && !t.Completed {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Text), search) {
			continue
		}
		view = append(view, t)
	}

	slices.SortStableFunc(view, func(a, b model.Task) int {
		if a.Important != b.Important {
			if a.Important {
				return -1
			}
			return 1
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return view
}

// Counts returns the derived counters, ignoring tasks being deleted.
func (s *TaskService) Counts(ctx context.Context) (model.TaskCounts, error) {
	tasks, err := s.repo.List(ctx)
	if err != nil {
		return model.TaskCounts{}, err
	}
	return countTasks(tasks), nil
}

func countTasks(tasks []model.Task) model.TaskCounts {
	var c model.TaskCounts
	for _, t := range tasks {
		if t.Deleting {
			continue
		}
		c.Total++
		if t.Completed {
			c.Completed++
		} else {
			c.Active++
		}
	}
	if c.Total > 0 {
		c.Progress = int(math.Round(float64(c.Completed) * 100 / float64(c.Total)))
	}
	return c
}

func indexOf(tasks []model.Task, id int64) int {
	return slices.IndexFunc(tasks, func(t model.Task) bool { return t.ID == id })
}
