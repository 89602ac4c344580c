package toggl

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/trackops/transport"
)

// Service layers workflow operations over the raw client: workspace
// resolution, minute-based durations and time summaries. It caches
// the resolved workspace id for the lifetime of the service.
type Service struct {
	client *Client

	// DefaultWorkspaceID pins the workspace. Zero means resolve the
	// first workspace of the account on first use.
	defaultWorkspaceID int64

	group       singleflight.Group
	workspaceID atomic.Int64
}

// NewService wraps a client. Pass defaultWorkspaceID zero to resolve
// the account's first workspace lazily.
func NewService(client *Client, defaultWorkspaceID int64) *Service {
	return &Service{
		client:             client,
		defaultWorkspaceID: defaultWorkspaceID,
	}
}

// WorkspaceID resolves the workspace used for writes. Concurrent first
// calls share one upstream request.
func (s *Service) WorkspaceID(ctx context.Context) (int64, error) {
	if s.defaultWorkspaceID != 0 {
		return s.defaultWorkspaceID, nil
	}
	if id := s.workspaceID.Load(); id != 0 {
		return id, nil
	}

	v, err, _ := s.group.Do("workspace", func() (any, error) {
		workspaces, err := s.client.Workspaces(ctx)
		if err != nil {
			return nil, err
		}
		if len(workspaces) == 0 {
			return nil, &transport.Error{
				Kind:     transport.KindNotFound,
				Message:  "account has no workspaces",
				Resource: "workspace",
			}
		}
		return workspaces[0].ID, nil
	})
	if err != nil {
		return 0, err
	}
	id := v.(int64)
	s.workspaceID.Store(id)
	return id, nil
}

// EntryRequest describes an entry in workflow terms: durations in
// minutes, optional project and task.
type EntryRequest struct {
	Description     string
	Start           time.Time
	DurationMinutes int64
	ProjectID       int64
	TaskID          int64
	Tags            []string
	Billable        bool
}

// CreateEntry creates a completed entry, converting minutes to the
// second-based wire duration.
func (s *Service) CreateEntry(ctx context.Context, req EntryRequest) (*TimeEntry, error) {
	wid, err := s.WorkspaceID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.CreateTimeEntry(ctx, wid, TimeEntryFields{
		Description: req.Description,
		Start:       req.Start,
		Duration:    req.DurationMinutes * 60,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Tags:        req.Tags,
		Billable:    req.Billable,
	})
}

// StartTimer starts a running timer.
func (s *Service) StartTimer(ctx context.Context, req EntryRequest) (*TimeEntry, error) {
	wid, err := s.WorkspaceID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.StartTimer(ctx, wid, TimeEntryFields{
		Description: req.Description,
		Start:       req.Start,
		ProjectID:   req.ProjectID,
		TaskID:      req.TaskID,
		Tags:        req.Tags,
		Billable:    req.Billable,
	})
}

// StopTimer stops the running timer, if any. Returns nil when no timer
// is running.
func (s *Service) StopTimer(ctx context.Context) (*TimeEntry, error) {
	current, err := s.client.CurrentTimeEntry(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}
	return s.client.StopTimeEntry(ctx, current.WorkspaceID, current.ID)
}

// CurrentTimer returns the running timer, or nil when none is running.
func (s *Service) CurrentTimer(ctx context.Context) (*TimeEntry, error) {
	return s.client.CurrentTimeEntry(ctx)
}

// UpdateEntry applies a partial update to an entry.
func (s *Service) UpdateEntry(ctx context.Context, id int64, update TimeEntryUpdate) (*TimeEntry, error) {
	wid, err := s.WorkspaceID(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateTimeEntry(ctx, wid, id, update)
}

// DeleteEntry removes an entry.
func (s *Service) DeleteEntry(ctx context.Context, id int64) error {
	wid, err := s.WorkspaceID(ctx)
	if err != nil {
		return err
	}
	return s.client.DeleteTimeEntry(ctx, wid, id)
}

// Summary aggregates tracked time over the last daysBack days.
type Summary struct {
	From         time.Time
	To           time.Time
	TotalHours   float64
	EntryCount   int
	ProjectHours map[int64]float64
}

// Summarize fetches entries for the window and totals their tracked
// time. Running entries count up to now.
func (s *Service) Summarize(ctx context.Context, daysBack int) (*Summary, error) {
	if daysBack <= 0 {
		daysBack = 7
	}
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -daysBack)

	entries, err := s.client.TimeEntries(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		From:         from,
		To:           to,
		EntryCount:   len(entries),
		ProjectHours: make(map[int64]float64),
	}
	for _, entry := range entries {
		seconds := entry.Duration
		if entry.Running() {
			seconds = 0
			if start, perr := time.Parse(time.RFC3339, entry.Start); perr == nil && start.Before(to) {
				seconds = int64(to.Sub(start).Seconds())
			}
		}
		hours := float64(seconds) / 3600
		summary.TotalHours += hours
		if entry.ProjectID != 0 {
			summary.ProjectHours[entry.ProjectID] += hours
		}
	}
	return summary, nil
}
