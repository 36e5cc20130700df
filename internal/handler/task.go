package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

// TaskHandler handles HTTP requests for the task list.
type TaskHandler struct {
	tasks       *service.TaskService
	preferences *service.PreferenceService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService, preferences *service.PreferenceService) *TaskHandler {
	return &TaskHandler{tasks: tasks, preferences: preferences}
}

// HandleList handles GET /api/v1/tasks requests.
// Without a filter query parameter the stored filter preference applies.
func (h *TaskHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := model.Filter(r.URL.Query().Get("filter"))
	if filter == "" {
		stored, err := h.preferences.Filter(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		filter = stored
	}
	search := r.URL.Query().Get("q")

	tasks, err := h.tasks.ListView(r.Context(), filter, search)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	counts, err := h.tasks.Counts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.TaskListResponse{
		Filter: filter,
		Search: search,
		Tasks:  tasks,
		Counts: counts,
	})
}

// HandleCreate handles POST /api/v1/tasks requests.
func (h *TaskHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}

	task, err := h.tasks.AddTask(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// HandleGet handles GET /api/v1/tasks/{id} requests.
func (h *TaskHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleToggleComplete handles POST /api/v1/tasks/{id}/complete requests.
func (h *TaskHandler) HandleToggleComplete(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.tasks.ToggleComplete)
}

// HandleToggleImportant handles POST /api/v1/tasks/{id}/important requests.
func (h *TaskHandler) HandleToggleImportant(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.tasks.ToggleImportant)
}

func (h *TaskHandler) toggle(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int64) (model.Task, error)) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	task, err := fn(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// HandleDelete handles DELETE /api/v1/tasks/{id} requests. The task is
// flagged as deleting and removed after the grace window, so the response
// is 202 with the flagged record.
func (h *TaskHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := taskID(w, r)
	if !ok {
		return
	}

	if _, err := h.tasks.DeleteTask(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if errors.Is(err, service.ErrNotFound) {
		// Already gone when the grace window is zero.
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, task)
}

func taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid task id"))
		return 0, false
	}
	return id, true
}
