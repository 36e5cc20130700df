package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/taskdesk/taskdesk-go/internal/app"
	"github.com/taskdesk/taskdesk-go/internal/config"
	"github.com/taskdesk/taskdesk-go/internal/model"
	"github.com/taskdesk/taskdesk-go/internal/repository"
	"github.com/taskdesk/taskdesk-go/internal/service"
)

// harness runs commands against one in-memory store, the way repeated
// invocations share a sqlite file.
type harness struct {
	t     *testing.T
	store *repository.MemoryStore
}

func newHarness(t *testing.T) *harness {
	return &harness{t: t, store: repository.NewMemoryStore()}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	open := func(ctx context.Context, driver, dsn string) (*app.App, error) {
		return app.New(h.store, service.Options{}), nil
	}

	cmd, c := newRootCmd(config.Config{StoreDriver: app.DriverMemory}, open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := c.execute(cmd)
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("%v: unexpected error: %v", args, err)
	}
	return out
}

func (h *harness) login() {
	h.t.Helper()
	h.mustRun("signup", "--name", "Asha", "--email", "asha@example.com", "--password", "longenough")
	h.mustRun("login", "--email", "asha@example.com", "--password", "longenough")
}

func (h *harness) listJSON(args ...string) model.TaskListResponse {
	h.t.Helper()
	out := h.mustRun(append([]string{"task", "list", "--json"}, args...)...)
	var resp model.TaskListResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		h.t.Fatalf("decoding list output %q: %v", out, err)
	}
	return resp
}

func TestSignupLoginWhoami(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("whoami")
	if !strings.Contains(out, "Not logged in.") {
		t.Errorf("expected logged out message, got %q", out)
	}

	h.login()

	out = h.mustRun("whoami")
	if !strings.Contains(out, "asha@example.com") || !strings.Contains(out, "Asha") {
		t.Errorf("expected profile in output, got %q", out)
	}
	if strings.Contains(out, "N/A") {
		t.Errorf("expected a last login stamp, got %q", out)
	}

	h.mustRun("logout")
	out = h.mustRun("whoami")
	if !strings.Contains(out, "Not logged in.") {
		t.Errorf("expected logged out after logout, got %q", out)
	}
}

func TestSignupValidation(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("signup", "--name", "Asha", "--email", "asha@example.com", "--password", "short")
	if !errors.Is(err, service.ErrPasswordTooShort) {
		t.Errorf("expected ErrPasswordTooShort, got %v", err)
	}

	h.mustRun("signup", "--name", "Asha", "--email", "asha@example.com", "--password", "longenough")
	_, err = h.run("signup", "--name", "Other", "--email", "asha@example.com", "--password", "longenough")
	if !errors.Is(err, service.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h := newHarness(t)
	h.mustRun("signup", "--name", "Asha", "--email", "asha@example.com", "--password", "longenough")

	_, err := h.run("login", "--email", "asha@example.com", "--password", "wrongpass")
	if !errors.Is(err, service.ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
}

func TestTaskCommandsRequireLogin(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("task", "add", "Buy milk")
	if !errors.Is(err, service.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}

func TestTaskLifecycle(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.mustRun("task", "add", "Buy", "milk")
	h.mustRun("task", "add", "File taxes")

	resp := h.listJSON()
	if len(resp.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(resp.Tasks))
	}
	if resp.Tasks[0].Text != "File taxes" {
		t.Errorf("expected newest task first, got %q", resp.Tasks[0].Text)
	}
	milk := resp.Tasks[1]
	if milk.Text != "Buy milk" {
		t.Errorf("expected joined args as text, got %q", milk.Text)
	}
	milkID := strconv.FormatInt(milk.ID, 10)

	h.mustRun("task", "star", milkID)
	resp = h.listJSON()
	if resp.Tasks[0].ID != milk.ID {
		t.Errorf("expected starred task first, got %q", resp.Tasks[0].Text)
	}

	out := h.mustRun("task", "done", milkID)
	if !strings.Contains(out, "marked completed") {
		t.Errorf("unexpected toggle output %q", out)
	}
	resp = h.listJSON("--filter", "completed")
	if len(resp.Tasks) != 1 || resp.Tasks[0].ID != milk.ID {
		t.Errorf("expected only the completed task, got %+v", resp.Tasks)
	}
	if resp.Counts.Completed != 1 || resp.Counts.Total != 2 || resp.Counts.Progress != 50 {
		t.Errorf("unexpected counts %+v", resp.Counts)
	}

	resp = h.listJSON("--search", "TAX")
	if len(resp.Tasks) != 1 || resp.Tasks[0].Text != "File taxes" {
		t.Errorf("expected case-insensitive search match, got %+v", resp.Tasks)
	}

	h.mustRun("task", "rm", milkID)
	if _, err := h.run("task", "show", milkID); !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound after rm, got %v", err)
	}
	resp = h.listJSON()
	if len(resp.Tasks) != 1 || resp.Counts.Total != 1 {
		t.Errorf("expected one task left, got %+v", resp)
	}
}

func TestTaskListUsesStoredFilter(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.mustRun("task", "add", "Open task")
	h.mustRun("filter", "completed")

	resp := h.listJSON()
	if resp.Filter != model.FilterCompleted {
		t.Errorf("expected stored filter, got %q", resp.Filter)
	}
	if len(resp.Tasks) != 0 {
		t.Errorf("expected no completed tasks, got %d", len(resp.Tasks))
	}

	out := h.mustRun("task", "list")
	if !strings.Contains(out, "No tasks.") || !strings.Contains(out, "1 active, 0 completed, 1 total (0% done)") {
		t.Errorf("unexpected list output %q", out)
	}
}

func TestInvalidTaskID(t *testing.T) {
	h := newHarness(t)
	h.login()

	for _, arg := range []string{"abc", "0", "-4"} {
		if _, err := h.run("task", "done", "--", arg); err == nil {
			t.Errorf("expected error for id %q", arg)
		}
	}
}

func TestThemeAndFilter(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("theme"); strings.TrimSpace(out) != "light" {
		t.Errorf("expected default theme light, got %q", out)
	}
	h.mustRun("theme", "dark")
	if out := h.mustRun("theme"); strings.TrimSpace(out) != "dark" {
		t.Errorf("expected dark theme, got %q", out)
	}
	if _, err := h.run("theme", "sepia"); !errors.Is(err, service.ErrInvalidTheme) {
		t.Errorf("expected ErrInvalidTheme, got %v", err)
	}

	if out := h.mustRun("filter"); strings.TrimSpace(out) != "all" {
		t.Errorf("expected default filter all, got %q", out)
	}
	if _, err := h.run("filter", "starred"); !errors.Is(err, service.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter, got %v", err)
	}
}

func TestProfileRename(t *testing.T) {
	h := newHarness(t)
	h.login()

	out := h.mustRun("profile", "rename", "Asha K")
	if !strings.Contains(out, "Asha K") {
		t.Errorf("unexpected rename output %q", out)
	}
	if _, err := h.run("profile", "rename", "  "); !errors.Is(err, service.ErrNameRequired) {
		t.Errorf("expected ErrNameRequired, got %v", err)
	}
}

func TestFailedCommandReleasesStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskdesk.db")
	open := func(ctx context.Context, driver, dsn string) (*app.App, error) {
		return app.Open(ctx, driver, dsn, service.Options{})
	}

	cmd, c := newRootCmd(config.Config{StoreDriver: repository.DriverSQLite, StoreDSN: path}, open)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"task", "add", "Buy milk"})

	if err := c.execute(cmd); !errors.Is(err, service.ErrNotLoggedIn) {
		t.Fatalf("expected ErrNotLoggedIn, got %v", err)
	}
	if c.app != nil {
		t.Error("store should be released after a failed command")
	}
}

func TestSignupOverLiveSessionLogsOut(t *testing.T) {
	h := newHarness(t)
	h.login()

	h.mustRun("signup", "--name", "Mallory", "--email", "m@y.com", "--password", "longenough")

	if out := h.mustRun("whoami"); !strings.Contains(out, "Not logged in.") {
		t.Errorf("new account must not inherit the session, got %q", out)
	}
	if _, err := h.run("task", "list"); !errors.Is(err, service.ErrNotLoggedIn) {
		t.Errorf("expected ErrNotLoggedIn, got %v", err)
	}
}
