package toggl

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jonwraymond/trackops/observe"
	"github.com/jonwraymond/trackops/transport"
)

// TimeEntryFields describes a new time entry. Start defaults to now;
// a negative Duration starts a running timer.
type TimeEntryFields struct {
	Description string
	Start       time.Time
	Duration    int64 // seconds; negative = running
	ProjectID   int64
	TaskID      int64
	Tags        []string
	Billable    bool
}

// TimeEntryUpdate is a partial update. Nil fields are not sent and stay
// unchanged upstream; the client never default-fills an unset field.
type TimeEntryUpdate struct {
	Description *string
	Start       *time.Time
	Duration    *int64
	ProjectID   *int64
	TaskID      *int64
	Tags        *[]string
	Billable    *bool
}

// timeEntryPayload is the wire shape for entry writes. Pointer fields
// with omitempty keep unset fields off the wire entirely.
type timeEntryPayload struct {
	Description *string   `json:"description,omitempty"`
	Start       *string   `json:"start,omitempty"`
	Duration    *int64    `json:"duration,omitempty"`
	ProjectID   *int64    `json:"project_id,omitempty"`
	TaskID      *int64    `json:"task_id,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Billable    *bool     `json:"billable,omitempty"`
	CreatedWith string    `json:"created_with,omitempty"`
	WorkspaceID int64     `json:"wid,omitempty"`
}

// CreateTimeEntry creates a time entry in the workspace.
//
// Retry discretion: this write is retried only on rate-limit responses.
// A transient failure mid-exchange is surfaced instead, because the
// entry may already exist upstream.
func (c *Client) CreateTimeEntry(ctx context.Context, workspaceID int64, fields TimeEntryFields) (*TimeEntry, error) {
	start := fields.Start
	if start.IsZero() {
		start = time.Now().UTC()
	}
	startStr := start.UTC().Format(time.RFC3339)

	payload := timeEntryPayload{
		Description: &fields.Description,
		Start:       &startStr,
		Billable:    &fields.Billable,
		CreatedWith: createdWith,
		WorkspaceID: workspaceID,
	}
	if fields.Duration != 0 {
		payload.Duration = &fields.Duration
	}
	if fields.ProjectID != 0 {
		payload.ProjectID = &fields.ProjectID
	}
	if fields.TaskID != 0 {
		payload.TaskID = &fields.TaskID
	}
	if len(fields.Tags) > 0 {
		payload.Tags = &fields.Tags
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "create"}
	raw, err := c.create(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/workspaces/%d/time_entries", workspaceID),
		Body:     payload,
		Resource: "time_entry",
	})
	if err != nil {
		return nil, err
	}

	var entry TimeEntry
	if err := decode(raw.Body, &entry, "time_entry"); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StartTimer starts a running time entry.
func (c *Client) StartTimer(ctx context.Context, workspaceID int64, fields TimeEntryFields) (*TimeEntry, error) {
	fields.Duration = -1
	return c.CreateTimeEntry(ctx, workspaceID, fields)
}

// TimeEntry fetches one entry by id.
func (c *Client) TimeEntry(ctx context.Context, id int64) (*TimeEntry, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "get", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/me/time_entries/%d", id),
		Resource: "time_entry",
	})
	if err != nil {
		return nil, err
	}

	var entry TimeEntry
	if err := decode(raw.Body, &entry, "time_entry"); err != nil {
		return nil, err
	}
	return &entry, nil
}

// CurrentTimeEntry fetches the running timer, or nil when no timer is
// running (the upstream answers with a null body).
func (c *Client) CurrentTimeEntry(ctx context.Context) (*TimeEntry, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "current"}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/me/time_entries/current",
		Resource: "time_entry",
	})
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(raw.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, nil
	}

	var entry TimeEntry
	if err := decode(body, &entry, "time_entry"); err != nil {
		return nil, err
	}
	return &entry, nil
}

// TimeEntries lists entries whose start falls inside [from, to].
func (c *Client) TimeEntries(ctx context.Context, from, to time.Time) ([]TimeEntry, error) {
	query := url.Values{}
	query.Set("start_date", from.UTC().Format(time.RFC3339))
	query.Set("end_date", to.UTC().Format(time.RFC3339))

	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "list"}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/me/time_entries",
		Query:    query,
		Resource: "time_entry",
	})
	if err != nil {
		return nil, err
	}

	return decodeTimeEntries(raw.Body)
}

// UpdateTimeEntry applies a partial update. Only fields set on update
// are sent; everything else is preserved upstream.
func (c *Client) UpdateTimeEntry(ctx context.Context, workspaceID, id int64, update TimeEntryUpdate) (*TimeEntry, error) {
	payload := timeEntryPayload{
		Description: update.Description,
		Duration:    update.Duration,
		ProjectID:   update.ProjectID,
		TaskID:      update.TaskID,
		Tags:        update.Tags,
		Billable:    update.Billable,
	}
	if update.Start != nil {
		s := update.Start.UTC().Format(time.RFC3339)
		payload.Start = &s
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "update", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/workspaces/%d/time_entries/%d", workspaceID, id),
		Body:     payload,
		Resource: "time_entry",
	})
	if err != nil {
		return nil, err
	}

	var entry TimeEntry
	if err := decode(raw.Body, &entry, "time_entry"); err != nil {
		return nil, err
	}
	return &entry, nil
}

// StopTimeEntry stops a running entry.
func (c *Client) StopTimeEntry(ctx context.Context, workspaceID, id int64) (*TimeEntry, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "stop", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPatch,
		Path:     fmt.Sprintf("/workspaces/%d/time_entries/%d/stop", workspaceID, id),
		Resource: "time_entry",
	})
	if err != nil {
		return nil, err
	}

	var entry TimeEntry
	if err := decode(raw.Body, &entry, "time_entry"); err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteTimeEntry removes an entry. Deletes are idempotent by id and
// retried like reads.
func (c *Client) DeleteTimeEntry(ctx context.Context, workspaceID, id int64) error {
	meta := observe.CallMeta{Service: "toggl", Resource: "time_entry", Operation: "delete", ID: fmt.Sprint(id)}
	_, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodDelete,
		Path:     fmt.Sprintf("/workspaces/%d/time_entries/%d", workspaceID, id),
		Resource: "time_entry",
	})
	return err
}

// AwaitTimeEntryVisible re-polls the ranged listing until the entry
// shows up, bridging upstream eventual consistency after a create.
// Each poll is paced like any other request. On success the listed
// entry is returned; on budget exhaustion the error carries the
// consistency-timeout classification so the caller knows the write
// itself likely succeeded.
func (c *Client) AwaitTimeEntryVisible(ctx context.Context, id int64, from, to time.Time) (*TimeEntry, error) {
	var found *TimeEntry
	err := c.guard.Await(ctx, func(ctx context.Context) (bool, error) {
		entries, err := c.TimeEntries(ctx, from, to)
		if err != nil {
			return false, err
		}
		for i := range entries {
			if entries[i].ID == id {
				found = &entries[i]
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, visibilityError(err, "time_entry", fmt.Sprint(id))
	}
	return found, nil
}

func decodeTimeEntries(body []byte) ([]TimeEntry, error) {
	var entries []TimeEntry
	if err := decodeList(body, &entries, "time_entry"); err != nil {
		return nil, err
	}
	for i := range entries {
		if err := validationError(entries[i].validate(), "time_entry"); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
