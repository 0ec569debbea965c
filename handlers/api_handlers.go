package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"roster-viewer-go/db"
	"roster-viewer-go/models"
	"roster-viewer-go/roster"
)

const (
	pageTitle     = "Student Roster Viewer"
	sessionCookie = "roster_session"
	classParam    = "class"
)

// APIHandler holds the dependencies for the roster handlers
type APIHandler struct {
	Store          db.SelectionStore
	StudentsFile   string
	CategoryColumn string
	Log            *zap.Logger
}

// NewAPIHandler creates a new APIHandler
func NewAPIHandler(store db.SelectionStore, studentsFile, categoryColumn string, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		Store:          store,
		StudentsFile:   studentsFile,
		CategoryColumn: categoryColumn,
		Log:            logger,
	}
}

// StatusLine is the info line shown above the grid.
func StatusLine(count int) string {
	return fmt.Sprintf("Showing %d student records.", count)
}

// BuildView runs one render cycle: load, validate, filter.
// The file is read on every call.
func (h *APIHandler) BuildView(selection string) models.RosterView {
	view := models.RosterView{Title: pageTitle, Selected: roster.All}

	r, err := roster.Load(h.StudentsFile, h.CategoryColumn)
	if err != nil {
		var le *roster.LoadError
		if !errors.As(err, &le) {
			le = &roster.LoadError{Kind: roster.ParseError, Message: err.Error()}
		}
		h.Log.Warn("roster unavailable",
			zap.String("file", h.StudentsFile),
			zap.Stringer("kind", le.Kind),
			zap.Error(err))
		view.Error = &models.ErrorView{Kind: le.Kind.String(), Message: le.Message, Hint: le.Hint}
		return view
	}

	if selection != "" && r.Offers(selection) {
		view.Selected = selection
	}
	for _, opt := range r.Options() {
		view.Options = append(view.Options, models.ClassOption{Value: opt, Selected: opt == view.Selected})
	}

	subset := r.Filter(view.Selected)
	view.Count = subset.Len()
	view.Status = StatusLine(view.Count)
	view.Columns = subset.Columns
	view.Rows = make([][]string, 0, subset.Len())
	for _, row := range subset.Rows {
		view.Rows = append(view.Rows, row.Strings())
	}
	return view
}

// sessionID returns the caller's session, issuing a cookie on first visit.
func (h *APIHandler) sessionID(c *gin.Context) string {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, id, 0, "/", "", false, true)
	return id
}

// selection resolves the class for this request. An explicit ?class= wins
// and is remembered for the session; otherwise the remembered one is used.
func (h *APIHandler) selection(c *gin.Context) string {
	id := h.sessionID(c)
	ctx := c.Request.Context()

	if q, ok := c.GetQuery(classParam); ok {
		if err := h.Store.SetSelection(ctx, id, q); err != nil {
			h.Log.Warn("could not remember selection", zap.String("session", id), zap.Error(err))
		}
		return q
	}
	stored, err := h.Store.GetSelection(ctx, id)
	if err != nil {
		h.Log.Warn("could not recall selection", zap.String("session", id), zap.Error(err))
		return roster.All
	}
	if stored == "" {
		return roster.All
	}
	return stored
}

// --- Page Handler ---

// ShowRoster handles GET /
func (h *APIHandler) ShowRoster(c *gin.Context) {
	view := h.BuildView(h.selection(c))
	// load failures are messages for the user, not server faults
	c.HTML(http.StatusOK, rosterTemplate, view)
}

// --- JSON Handlers ---

// GetClasses handles GET /api/classes
func (h *APIHandler) GetClasses(c *gin.Context) {
	view := h.BuildView(h.selection(c))
	if view.Error != nil {
		c.JSON(errorStatus(view.Error.Kind), gin.H{"error": view.Error})
		return
	}
	c.JSON(http.StatusOK, view.Options)
}

// GetStudents handles GET /api/students?class=
func (h *APIHandler) GetStudents(c *gin.Context) {
	view := h.BuildView(h.selection(c))
	if view.Error != nil {
		c.JSON(errorStatus(view.Error.Kind), gin.H{"error": view.Error})
		return
	}
	c.JSON(http.StatusOK, view)
}

func errorStatus(kind string) int {
	if kind == roster.NotFound.String() {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

// --- Ping Handler ---
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Pong!"})
}
