// Package calendar implements the Google Calendar integration: OAuth
// token lifecycle, pushing tasks out as events, and importing provider
// events back as tasks.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	calapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"real-estate-crm/internal/config"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/services"
)

var (
	// ErrNotConnected means the agent has no stored Google credential
	ErrNotConnected = errors.New("google calendar is not connected")
	// ErrNoDueDate means the task cannot be pushed without a due date
	ErrNoDueDate = errors.New("task has no due date")
	// ErrNoEventID means the operation needs an already-linked event
	ErrNoEventID = errors.New("task has no calendar event id")
)

// eventDuration is the fixed window for events created from tasks
const eventDuration = time.Hour

// Options override provider endpoints, used by tests to point the
// service at a fake Google API.
type Options struct {
	AuthEndpoint oauth2.Endpoint
	APIOptions   []option.ClientOption
	Now          func() time.Time
}

// Service is the calendar integration. It holds no per-agent state: the
// Google client is built per call from the agent's stored token.
type Service struct {
	cfg    config.GoogleConfig
	agents *services.AgentService
	tasks  *services.TaskService

	recorder *services.ActivityRecorder

	authEndpoint oauth2.Endpoint
	apiOptions   []option.ClientOption
	now          func() time.Time
}

func NewService(db *gorm.DB, cfg config.GoogleConfig) *Service {
	return NewServiceWithOptions(db, cfg, Options{})
}

func NewServiceWithOptions(db *gorm.DB, cfg config.GoogleConfig, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		cfg:          cfg,
		agents:       services.NewAgentService(db),
		tasks:        services.NewTaskService(db),
		recorder:     services.NewActivityRecorder(db),
		authEndpoint: opts.AuthEndpoint,
		apiOptions:   opts.APIOptions,
		now:          now,
	}
}

// AuthURL builds the provider authorization URL, carrying the agent id
// as the opaque state parameter.
func (s *Service) AuthURL(agentID string) string {
	conf := oauthConfig(s.cfg, s.authEndpoint)
	return conf.AuthCodeURL(agentID, oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
}

// ExchangeCode performs the one-shot code-for-token exchange and persists
// the full token payload on the agent's settings row.
func (s *Service) ExchangeCode(ctx context.Context, agentID, code string) error {
	conf := oauthConfig(s.cfg, s.authEndpoint)

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}

	return s.agents.SaveGoogleToken(agentID, token.AccessToken, token.RefreshToken, token.Expiry)
}

// Disconnect clears the stored credential and connection flag. The grant
// is not revoked with the provider.
func (s *Service) Disconnect(agentID string) error {
	return s.agents.ClearGoogleToken(agentID)
}

// Connected reports whether the agent has a stored credential
func (s *Service) Connected(agentID string) (bool, error) {
	settings, err := s.agents.GetOrCreateSettings(agentID)
	if err != nil {
		return false, err
	}
	return settings.GoogleCalendarConnected, nil
}

// ensureToken returns a usable access token for the agent, refreshing it
// first when the stored expiry has passed. At most one refresh call is
// made; a refresh failure propagates without retry.
func (s *Service) ensureToken(ctx context.Context, agentID string) (*oauth2.Token, error) {
	settings, err := s.agents.GetOrCreateSettings(agentID)
	if err != nil {
		return nil, err
	}
	if !settings.GoogleCalendarConnected || settings.GoogleRefreshToken == "" {
		return nil, ErrNotConnected
	}

	if !settings.TokenExpired(s.now()) {
		return &oauth2.Token{
			AccessToken:  settings.GoogleAccessToken,
			RefreshToken: settings.GoogleRefreshToken,
			Expiry:       *settings.GoogleTokenExpiry,
		}, nil
	}

	conf := oauthConfig(s.cfg, s.authEndpoint)
	stale := &oauth2.Token{RefreshToken: settings.GoogleRefreshToken}
	fresh, err := conf.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	if err := s.agents.SaveGoogleToken(agentID, fresh.AccessToken, fresh.RefreshToken, fresh.Expiry); err != nil {
		return nil, err
	}
	return fresh, nil
}

// clientFor builds a Calendar API client bound to the given token
func (s *Service) clientFor(ctx context.Context, token *oauth2.Token) (*calapi.Service, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, s.apiOptions...)

	svc, err := calapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}
	return svc, nil
}

// eventFromTask maps a task onto a fixed one-hour event with reminder
// overrides at 15 and 60 minutes.
func eventFromTask(task *models.Task) *calapi.Event {
	start := *task.DueDate
	end := start.Add(eventDuration)

	return &calapi.Event{
		Summary:     task.Title,
		Description: task.Description,
		Start:       &calapi.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calapi.EventDateTime{DateTime: end.Format(time.RFC3339)},
		Reminders: &calapi.EventReminders{
			UseDefault: false,
			Overrides: []*calapi.EventReminder{
				{Method: "popup", Minutes: 15},
				{Method: "email", Minutes: 60},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// CreateEventForTask pushes a task to the agent's primary calendar and
// writes the returned event id back onto the task row.
func (s *Service) CreateEventForTask(ctx context.Context, agentID, taskID string) (*models.Task, error) {
	task, err := s.tasks.GetByID(taskID, agentID)
	if err != nil {
		return nil, err
	}
	if task.DueDate == nil {
		return nil, ErrNoDueDate
	}

	token, err := s.ensureToken(ctx, agentID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientFor(ctx, token)
	if err != nil {
		return nil, err
	}

	created, err := client.Events.Insert("primary", eventFromTask(task)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("event create failed: %w", err)
	}

	if err := s.tasks.SetCalendarEventID(task.ID, agentID, created.Id); err != nil {
		return nil, err
	}
	task.GoogleCalendarEventID = created.Id
	return task, nil
}

// UpdateEventForTask pushes the task's current title/description/window
// onto its already-linked event. No existence check is made; an event
// deleted on the provider side surfaces as a provider error.
func (s *Service) UpdateEventForTask(ctx context.Context, agentID, taskID string) error {
	task, err := s.tasks.GetByID(taskID, agentID)
	if err != nil {
		return err
	}
	if task.GoogleCalendarEventID == "" {
		return ErrNoEventID
	}
	if task.DueDate == nil {
		return ErrNoDueDate
	}

	token, err := s.ensureToken(ctx, agentID)
	if err != nil {
		return err
	}
	client, err := s.clientFor(ctx, token)
	if err != nil {
		return err
	}

	_, err = client.Events.Update("primary", task.GoogleCalendarEventID, eventFromTask(task)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("event update failed: %w", err)
	}
	return nil
}

// DeleteEvent removes a provider event by id
func (s *Service) DeleteEvent(ctx context.Context, agentID, eventID string) error {
	if eventID == "" {
		return ErrNoEventID
	}

	token, err := s.ensureToken(ctx, agentID)
	if err != nil {
		return err
	}
	client, err := s.clientFor(ctx, token)
	if err != nil {
		return err
	}

	if err := client.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("event delete failed: %w", err)
	}
	return nil
}

// SyncResult summarizes one import run
type SyncResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// SyncFromCalendar imports provider events in [from, to] as tasks. Dedup
// is keyed solely on the provider event id: an event already linked to a
// task is skipped, and edits to already-imported events are never pulled
// in on later runs.
func (s *Service) SyncFromCalendar(ctx context.Context, agentID string, from, to time.Time) (*SyncResult, error) {
	token, err := s.ensureToken(ctx, agentID)
	if err != nil {
		return nil, err
	}
	client, err := s.clientFor(ctx, token)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	pageToken := ""
	for {
		call := client.Events.List("primary").
			SingleEvents(true).
			OrderBy("startTime").
			TimeMin(from.Format(time.RFC3339)).
			TimeMax(to.Format(time.RFC3339)).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		events, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("event list failed: %w", err)
		}

		for _, event := range events.Items {
			imported, err := s.importEvent(agentID, event)
			if err != nil {
				return result, err
			}
			if imported {
				result.Imported++
			} else {
				result.Skipped++
			}
		}

		pageToken = events.NextPageToken
		if pageToken == "" {
			break
		}
	}

	now := s.now()
	if err := s.agents.TouchCalendarSync(agentID, now); err != nil {
		return result, err
	}
	if result.Imported > 0 {
		s.recorder.Record(agentID, nil, models.ActivityCalendarImport,
			fmt.Sprintf("Imported %d events from Google Calendar", result.Imported))
	}
	return result, nil
}

// importEvent inserts one provider event as a pending appointment-type
// task, unless its id is already linked. Returns whether a row was
// created.
func (s *Service) importEvent(agentID string, event *calapi.Event) (bool, error) {
	if event == nil || event.Id == "" {
		return false, nil
	}

	_, err := s.tasks.FindByCalendarEventID(event.Id, agentID)
	if err == nil {
		return false, nil // already imported
	}
	if !errors.Is(err, services.ErrNotFound) {
		return false, err
	}

	title := event.Summary
	if title == "" {
		title = "(untitled event)"
	}

	task := models.Task{
		Title:                 title,
		Description:           event.Description,
		TaskType:              "appointment",
		Status:                models.TaskStatusPending,
		Priority:              models.TaskPriorityMedium,
		GoogleCalendarEventID: event.Id,
		AgentID:               agentID,
	}
	if event.Start != nil && event.Start.DateTime != "" {
		if start, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			task.DueDate = &start
		}
	}

	if err := s.tasks.Create(&task); err != nil {
		return false, err
	}
	return true, nil
}
