package dashboardhttp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/roadscore/roadscore/internal/dashboard"
	"github.com/roadscore/roadscore/internal/dashboard/export"
	"github.com/roadscore/roadscore/internal/dashboard/loop"
	"github.com/roadscore/roadscore/internal/platform/httpx"
	"github.com/roadscore/roadscore/internal/shared"
	"github.com/roadscore/roadscore/internal/telemetry"
	"github.com/roadscore/roadscore/internal/view"
)

// ViewSessionKey persists the last selected view in the session.
const ViewSessionKey = "dashboard_view"

// errNotMounted is returned by the state endpoint for a session that has
// never loaded the page. Only the page and the view switch mount composers.
var errNotMounted = fmt.Errorf("%w: no dashboard for this session, load /dashboard first", httpx.ErrConflict)

const (
	requestTimeout = 2 * time.Second
	pollInterval   = time.Second
)

// Handler serves the dashboard page and its JSON and CSV companions.
type Handler struct {
	logger    *slog.Logger
	runner    loop.Runner
	registry  *dashboard.Registry
	charts    *dashboard.ChartRenderer
	store     *telemetry.Store
	templates *view.Engine
	csrf      *shared.CSRFManager
	validate  *validator.Validate
	csvPool   sync.Pool
}

// NewHandler constructs the dashboard HTTP handler. The registry is only
// touched inside runner.Do.
func NewHandler(logger *slog.Logger, runner loop.Runner, registry *dashboard.Registry, charts *dashboard.ChartRenderer, store *telemetry.Store, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	h := &Handler{
		logger:    logger,
		runner:    runner,
		registry:  registry,
		charts:    charts,
		store:     store,
		templates: templates,
		csrf:      csrf,
		validate:  validator.New(),
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

type selectViewForm struct {
	View string `validate:"required,oneof=user company"`
}

type tab struct {
	View   string
	Title  string
	Active bool
}

type pageData struct {
	Tree         dashboard.Tree
	Charts       dashboard.Charts
	Tabs         []tab
	PollInterval int64
}

// stateResponse is the JSON snapshot polled by the page script.
type stateResponse struct {
	dashboard.Tree
	PollInterval int64 `json:"poll_interval_ms"`
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.handleServerError(w, "load session", shared.ErrSessionMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	tree, err := h.snapshot(ctx, sess)
	if err != nil {
		h.respondError(w, "snapshot dashboard", err)
		return
	}
	charts, err := h.charts.Render(ctx, tree)
	if err != nil {
		h.handleServerError(w, "render charts", err)
		return
	}
	csrfToken, err := h.csrf.EnsureToken(sess)
	if err != nil {
		h.handleServerError(w, "csrf token", err)
		return
	}

	tabs := make([]tab, 0, len(dashboard.Views))
	for _, v := range dashboard.Views {
		tabs = append(tabs, tab{View: v.String(), Title: v.Title(), Active: v == tree.View})
	}
	data := view.TemplateData{
		Title:       tree.Title,
		CSRFToken:   csrfToken,
		CurrentPath: r.URL.Path,
		Data: pageData{
			Tree:         tree,
			Charts:       charts,
			Tabs:         tabs,
			PollInterval: pollInterval.Milliseconds(),
		},
	}
	if err := h.templates.Render(w, "pages/dashboard.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func (h *Handler) handleSelectView(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.handleServerError(w, "load session", shared.ErrSessionMissing)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.respondError(w, "parse form", fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	form := selectViewForm{View: strings.ToLower(strings.TrimSpace(r.PostFormValue("view")))}
	if err := h.validate.Struct(form); err != nil {
		h.respondSelectError(w, r, fmt.Errorf("%w: view must be user or company", httpx.ErrValidation))
		return
	}
	selected, err := dashboard.ParseView(form.View)
	if err != nil {
		h.respondSelectError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var (
		tree    dashboard.Tree
		changed bool
		opErr   error
	)
	err = h.runner.Do(ctx, func() {
		// The caller may have given up already; do not switch behind a 503.
		if opErr = ctx.Err(); opErr != nil {
			return
		}
		composer, err := h.registry.Acquire(sess.ID, selected)
		if err != nil {
			opErr = err
			return
		}
		changed, opErr = composer.SelectView(selected)
		tree = composer.Render()
	})
	if err == nil {
		err = opErr
	}
	if err != nil {
		h.respondSelectError(w, r, err)
		return
	}
	sess.Set(ViewSessionKey, selected.String())
	if changed {
		h.logger.Debug("dashboard view switched", slog.String("view", selected.String()))
	}

	if wantsJSON(r) {
		httpx.Snapshot(w, stateResponse{Tree: tree, PollInterval: pollInterval.Milliseconds()})
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.respondError(w, "load session", shared.ErrSessionMissing)
		return
	}
	if sess.IsNew() {
		h.respondError(w, "snapshot dashboard", errNotMounted)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	tree, err := h.snapshot(ctx, sess)
	if err != nil {
		h.respondError(w, "snapshot dashboard", err)
		return
	}
	httpx.Snapshot(w, stateResponse{Tree: tree, PollInterval: pollInterval.Milliseconds()})
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	active := sessionView(sess)

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer func() {
		buf.Reset()
		h.csvPool.Put(buf)
	}()

	if err := export.WriteMonthlyCSV(buf, h.store.Monthly()); err != nil {
		h.handleServerError(w, "write monthly csv", err)
		return
	}
	buf.WriteString("\n")
	if err := export.WriteSkillsCSV(buf, h.store.Skills()); err != nil {
		h.handleServerError(w, "write skills csv", err)
		return
	}
	if active == dashboard.ViewCompany {
		buf.WriteString("\n")
		if err := export.WriteIncidentsCSV(buf, h.store.CompanyPanel().Incidents); err != nil {
			h.handleServerError(w, "write incidents csv", err)
			return
		}
	}

	filename := fmt.Sprintf("roadscore-%s.csv", active)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logError("stream csv", err)
	}
}

// snapshot renders the session's composer on the loop, mounting one with the
// session's last view when the session has none.
func (h *Handler) snapshot(ctx context.Context, sess *shared.Session) (dashboard.Tree, error) {
	var (
		tree  dashboard.Tree
		opErr error
	)
	initial := sessionView(sess)
	err := h.runner.Do(ctx, func() {
		if opErr = ctx.Err(); opErr != nil {
			return
		}
		composer, err := h.registry.Acquire(sess.ID, initial)
		if err != nil {
			opErr = err
			return
		}
		tree = composer.Render()
	})
	if err != nil {
		return dashboard.Tree{}, err
	}
	return tree, opErr
}

func sessionView(sess *shared.Session) dashboard.ActiveView {
	if sess == nil {
		return dashboard.ViewUser
	}
	v, err := dashboard.ParseView(sess.Get(ViewSessionKey))
	if err != nil {
		return dashboard.ViewUser
	}
	return v
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func (h *Handler) respondSelectError(w http.ResponseWriter, r *http.Request, err error) {
	if !wantsJSON(r) && isClientError(err) {
		http.Error(w, "Invalid view selection", http.StatusBadRequest)
		return
	}
	h.respondError(w, "select view", err)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case isClientError(err):
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
	case errors.Is(err, httpx.ErrConflict):
		httpx.RespondError(w, err)
	case errors.Is(err, loop.ErrClosed), errors.Is(err, dashboard.ErrClosed), errors.Is(err, context.DeadlineExceeded):
		h.logError(op, err)
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrUnavailable, err))
	default:
		h.logError(op, err)
		httpx.RespondError(w, err)
	}
}

func isClientError(err error) bool {
	return errors.Is(err, dashboard.ErrUnknownView) || errors.Is(err, httpx.ErrValidation)
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
