package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/calendar"
	"real-estate-crm/internal/config"
	"real-estate-crm/internal/ratelimit"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
)

// CalendarHandler exposes the Google Calendar integration: connection
// lifecycle, pushing tasks as events, and the import sync.
type CalendarHandler struct {
	calendar    *calendar.Service
	syncLimiter *ratelimit.RateLimiter
	syncCfg     config.SyncConfig
	settingsURL string
}

func NewCalendarHandler(cal *calendar.Service, syncCfg config.SyncConfig, settingsURL string) *CalendarHandler {
	return &CalendarHandler{
		calendar:    cal,
		syncLimiter: ratelimit.NewRateLimiter(syncCfg.ManualSyncPerHour, true),
		syncCfg:     syncCfg,
		settingsURL: settingsURL,
	}
}

// respondCalendarError maps integration errors onto HTTP statuses;
// provider failures surface as 502 with the upstream message.
func respondCalendarError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, calendar.ErrNotConnected),
		errors.Is(err, calendar.ErrNoDueDate),
		errors.Is(err, calendar.ErrNoEventID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// Status reports whether the agent's calendar is connected
func (h *CalendarHandler) Status(c *gin.Context) {
	connected, err := h.calendar.Connected(auth.AgentID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

// Connect returns the provider authorization URL for the agent
func (h *CalendarHandler) Connect(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"auth_url": h.calendar.AuthURL(auth.AgentID(c))})
}

// Callback receives the provider redirect, exchanges the code, and
// forwards the browser to the settings page with a success/error flag.
// The state parameter carries the agent id set in Connect.
func (h *CalendarHandler) Callback(c *gin.Context) {
	agentID := c.Query("state")
	code := c.Query("code")

	if agentID == "" || code == "" {
		c.Redirect(http.StatusFound, h.settingsRedirect("calendar_error", "missing code or state"))
		return
	}

	if err := h.calendar.ExchangeCode(c.Request.Context(), agentID, code); err != nil {
		c.Redirect(http.StatusFound, h.settingsRedirect("calendar_error", err.Error()))
		return
	}

	c.Redirect(http.StatusFound, h.settingsRedirect("calendar_connected", ""))
}

// Disconnect clears the stored credential
func (h *CalendarHandler) Disconnect(c *gin.Context) {
	if err := h.calendar.Disconnect(auth.AgentID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// PushTask creates a provider event from a task
func (h *CalendarHandler) PushTask(c *gin.Context) {
	task, err := h.calendar.CreateEventForTask(c.Request.Context(), auth.AgentID(c), c.Param("id"))
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTaskEvent pushes the task's current fields to its linked event
func (h *CalendarHandler) UpdateTaskEvent(c *gin.Context) {
	err := h.calendar.UpdateEventForTask(c.Request.Context(), auth.AgentID(c), c.Param("id"))
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DeleteEvent removes a provider event by id
func (h *CalendarHandler) DeleteEvent(c *gin.Context) {
	err := h.calendar.DeleteEvent(c.Request.Context(), auth.AgentID(c), c.Param("eventId"))
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type syncRequest struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// SyncNow imports provider events as tasks. Without an explicit window
// the configured lookahead (90 days by default) from now is used.
func (h *CalendarHandler) SyncNow(c *gin.Context) {
	agentID := auth.AgentID(c)

	if !h.syncLimiter.AllowRequest(agentID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "sync rate limit exceeded, try again later"})
		return
	}

	var req syncRequest
	// Body is optional
	_ = c.ShouldBindJSON(&req)

	from := time.Now()
	to := from.Add(h.syncCfg.Lookahead())
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}

	result, err := h.calendar.SyncFromCalendar(c.Request.Context(), agentID, from, to)
	if err != nil {
		respondCalendarError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// settingsRedirect builds the post-callback browser destination
func (h *CalendarHandler) settingsRedirect(flag, message string) string {
	q := url.Values{}
	q.Set("status", flag)
	if message != "" {
		q.Set("message", message)
	}
	return h.settingsURL + "?" + q.Encode()
}
