package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"real-estate-crm/internal/calendar"
	"real-estate-crm/internal/cleanup"
	"real-estate-crm/internal/config"
	"real-estate-crm/internal/services"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Scheduler runs the periodic jobs: calendar auto-sync for every
// connected agent, and retention cleanup of old log rows.
type Scheduler struct {
	cron      *cron.Cron
	agents    *services.AgentService
	calendar  *calendar.Service
	cleanup   *cleanup.Service
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(db *gorm.DB, cal *calendar.Service, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		agents:   services.NewAgentService(db),
		calendar: cal,
		cleanup:  cleanup.NewService(db),
		config:   cfg,
	}
}

// Start registers the enabled jobs and starts the cron loop
func (s *Scheduler) Start() error {
	registered := 0

	if s.config.Sync.AutoSyncEnabled {
		spec := parseDailyTime(s.config.Sync.AutoSyncTime)
		_, err := s.cron.AddFunc(spec, func() {
			log.Println("Scheduler: Starting calendar auto-sync...")
			if err := s.RunCalendarSync(); err != nil {
				log.Printf("Scheduler: Calendar auto-sync failed: %v", err)
			} else {
				log.Println("Scheduler: Calendar auto-sync completed")
			}
		})
		if err != nil {
			return err
		}
		log.Printf("Scheduler: Calendar auto-sync at %s (cron: %s)", s.config.Sync.AutoSyncTime, spec)
		registered++
	}

	if s.config.Retention.Enabled {
		spec := fmt.Sprintf("0 %d * * *", s.config.Retention.CleanupHourLocal)
		_, err := s.cron.AddFunc(spec, func() {
			result, err := s.cleanup.Run(s.config.Retention.ActivityMaxDays, s.config.Retention.CommsMaxDays)
			if err != nil {
				log.Printf("Scheduler: Retention cleanup failed: %v", err)
				return
			}
			log.Printf("Scheduler: Retention cleanup removed %d activities, %d communications",
				result.ActivitiesDeleted, result.CommunicationsDeleted)
		})
		if err != nil {
			return err
		}
		registered++
	}

	if registered == 0 {
		log.Println("Scheduler: No periodic jobs enabled in configuration")
		return nil
	}

	s.cron.Start()
	s.isRunning = true
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunCalendarSync imports the lookahead window for every agent with a
// connected calendar. One agent's failure does not stop the others.
func (s *Scheduler) RunCalendarSync() error {
	agentIDs, err := s.agents.ConnectedAgents()
	if err != nil {
		return err
	}

	log.Printf("Scheduler: Syncing calendars for %d connected agents", len(agentIDs))

	now := time.Now()
	to := now.Add(s.config.Sync.Lookahead())
	errorCount := 0

	for _, agentID := range agentIDs {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		result, err := s.calendar.SyncFromCalendar(ctx, agentID, now, to)
		cancel()
		if err != nil {
			log.Printf("Scheduler: Sync failed for agent %s: %v", agentID, err)
			errorCount++
			continue
		}
		if result.Imported > 0 {
			log.Printf("Scheduler: Agent %s imported %d events", agentID, result.Imported)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d of %d agent syncs failed", errorCount, len(agentIDs))
	}
	return nil
}

// parseDailyTime converts "HH:MM" into a daily cron spec, falling back
// to 06:00 on malformed input.
func parseDailyTime(hhmm string) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) == 2 {
		hour, errH := strconv.Atoi(parts[0])
		minute, errM := strconv.Atoi(parts[1])
		if errH == nil && errM == nil && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
			return fmt.Sprintf("%d %d * * *", minute, hour)
		}
	}
	return "0 6 * * *"
}
