package toggl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jonwraymond/trackops/observe"
	"github.com/jonwraymond/trackops/transport"
)

// TaskFields describes a new task.
type TaskFields struct {
	Name             string
	EstimatedSeconds int64
}

// TaskUpdate is a partial task update. Nil fields are not sent.
type TaskUpdate struct {
	Name             *string
	Active           *bool
	EstimatedSeconds *int64
}

type taskPayload struct {
	Name             *string `json:"name,omitempty"`
	Active           *bool   `json:"active,omitempty"`
	EstimatedSeconds *int64  `json:"estimated_seconds,omitempty"`
}

// Tasks lists the tasks of a project, following pagination.
func (c *Client) Tasks(ctx context.Context, workspaceID, projectID int64) ([]Task, error) {
	var all []Task
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(c.pageSize))

		meta := observe.CallMeta{Service: "toggl", Resource: "task", Operation: "list"}
		raw, err := c.call(ctx, meta, transport.RequestSpec{
			Method:   http.MethodGet,
			Path:     fmt.Sprintf("/workspaces/%d/projects/%d/tasks", workspaceID, projectID),
			Query:    query,
			Resource: "task",
		})
		if err != nil {
			return nil, err
		}

		var batch []Task
		if err := decodeList(raw.Body, &batch, "task"); err != nil {
			return nil, err
		}
		for i := range batch {
			if err := validationError(batch[i].validate(), "task"); err != nil {
				return nil, err
			}
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

// Task fetches one task by id.
func (c *Client) Task(ctx context.Context, workspaceID, projectID, id int64) (*Task, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "task", Operation: "get", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d/tasks/%d", workspaceID, projectID, id),
		Resource: "task",
	})
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decode(raw.Body, &task, "task"); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task under the project.
func (c *Client) CreateTask(ctx context.Context, workspaceID, projectID int64, fields TaskFields) (*Task, error) {
	active := true
	payload := taskPayload{
		Name:   &fields.Name,
		Active: &active,
	}
	if fields.EstimatedSeconds != 0 {
		payload.EstimatedSeconds = &fields.EstimatedSeconds
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "task", Operation: "create"}
	raw, err := c.create(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d/tasks", workspaceID, projectID),
		Body:     payload,
		Resource: "task",
	})
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decode(raw.Body, &task, "task"); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask applies a partial update. Only fields set on update are
// sent.
func (c *Client) UpdateTask(ctx context.Context, workspaceID, projectID, id int64, update TaskUpdate) (*Task, error) {
	payload := taskPayload{
		Name:             update.Name,
		Active:           update.Active,
		EstimatedSeconds: update.EstimatedSeconds,
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "task", Operation: "update", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d/tasks/%d", workspaceID, projectID, id),
		Body:     payload,
		Resource: "task",
	})
	if err != nil {
		return nil, err
	}

	var task Task
	if err := decode(raw.Body, &task, "task"); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, workspaceID, projectID, id int64) error {
	meta := observe.CallMeta{Service: "toggl", Resource: "task", Operation: "delete", ID: fmt.Sprint(id)}
	_, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodDelete,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d/tasks/%d", workspaceID, projectID, id),
		Resource: "task",
	})
	return err
}
