package toggl

import "errors"

// TimeEntry is one tracked period of work. A negative Duration marks a
// running timer. Instances are never mutated in place; updates produce
// a fresh value parsed from the upstream response.
type TimeEntry struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	Stop        string   `json:"stop,omitempty"`
	Duration    int64    `json:"duration"`
	ProjectID   int64    `json:"project_id,omitempty"`
	TaskID      int64    `json:"task_id,omitempty"`
	WorkspaceID int64    `json:"workspace_id"`
	Tags        []string `json:"tags"`
	Billable    bool     `json:"billable"`
}

// Running reports whether the entry is a currently running timer.
func (e *TimeEntry) Running() bool {
	return e.Duration < 0
}

func (e *TimeEntry) validate() error {
	if e.ID == 0 {
		return errors.New("time entry missing id")
	}
	if e.Start == "" {
		return errors.New("time entry missing start")
	}
	if e.WorkspaceID == 0 {
		return errors.New("time entry missing workspace id")
	}
	// Upstream sends null for untagged entries.
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return nil
}

// Project is a container for tasks and time entries.
type Project struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	WorkspaceID int64  `json:"workspace_id"`
	ClientID    int64  `json:"client_id,omitempty"`
	Active      bool   `json:"active"`
	Color       string `json:"color,omitempty"`
	Billable    bool   `json:"billable,omitempty"`
	Private     bool   `json:"is_private,omitempty"`
}

func (p *Project) validate() error {
	if p.ID == 0 {
		return errors.New("project missing id")
	}
	if p.Name == "" {
		return errors.New("project missing name")
	}
	if p.WorkspaceID == 0 {
		return errors.New("project missing workspace id")
	}
	return nil
}

// Task is a unit of work within a project.
type Task struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	ProjectID        int64  `json:"project_id"`
	WorkspaceID      int64  `json:"workspace_id"`
	Active           bool   `json:"active"`
	EstimatedSeconds int64  `json:"estimated_seconds,omitempty"`
	TrackedSeconds   int64  `json:"tracked_seconds,omitempty"`
}

func (t *Task) validate() error {
	if t.ID == 0 {
		return errors.New("task missing id")
	}
	if t.Name == "" {
		return errors.New("task missing name")
	}
	if t.ProjectID == 0 {
		return errors.New("task missing project id")
	}
	return nil
}

// Workspace is the account-level container for projects and entries.
type Workspace struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	OrganizationID int64  `json:"organization_id,omitempty"`
}

func (w *Workspace) validate() error {
	if w.ID == 0 {
		return errors.New("workspace missing id")
	}
	if w.Name == "" {
		return errors.New("workspace missing name")
	}
	return nil
}

// Customer is a Toggl client record (the billing counterparty a project
// belongs to). Named Customer to avoid colliding with the API client.
type Customer struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	WorkspaceID int64   `json:"wid"`
	Archived    bool    `json:"archived,omitempty"`
	Rate        float64 `json:"rate,omitempty"`
}

func (c *Customer) validate() error {
	if c.ID == 0 {
		return errors.New("client missing id")
	}
	if c.Name == "" {
		return errors.New("client missing name")
	}
	return nil
}
