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

// ProjectFields describes a new project.
type ProjectFields struct {
	Name     string
	ClientID int64
	Color    string
	Billable bool
	Private  bool
}

// ProjectUpdate is a partial project update. Nil fields are not sent.
type ProjectUpdate struct {
	Name     *string
	ClientID *int64
	Active   *bool
	Color    *string
	Billable *bool
	Private  *bool
}

type projectPayload struct {
	Name     *string `json:"name,omitempty"`
	ClientID *int64  `json:"client_id,omitempty"`
	Active   *bool   `json:"active,omitempty"`
	Color    *string `json:"color,omitempty"`
	Billable *bool   `json:"billable,omitempty"`
	Private  *bool   `json:"is_private,omitempty"`
}

// Projects lists every project in the workspace, following pagination
// until the upstream answers with a short page. Pages arrive in order
// and each page is a separate paced request.
func (c *Client) Projects(ctx context.Context, workspaceID int64) ([]Project, error) {
	var all []Project
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("page", strconv.Itoa(page))
		query.Set("per_page", strconv.Itoa(c.pageSize))

		meta := observe.CallMeta{Service: "toggl", Resource: "project", Operation: "list"}
		raw, err := c.call(ctx, meta, transport.RequestSpec{
			Method:   http.MethodGet,
			Path:     fmt.Sprintf("/workspaces/%d/projects", workspaceID),
			Query:    query,
			Resource: "project",
		})
		if err != nil {
			return nil, err
		}

		var batch []Project
		if err := decodeList(raw.Body, &batch, "project"); err != nil {
			return nil, err
		}
		for i := range batch {
			if err := validationError(batch[i].validate(), "project"); err != nil {
				return nil, err
			}
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
	}
}

// Project fetches one project by id.
func (c *Client) Project(ctx context.Context, workspaceID, id int64) (*Project, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "project", Operation: "get", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d", workspaceID, id),
		Resource: "project",
	})
	if err != nil {
		return nil, err
	}

	var project Project
	if err := decode(raw.Body, &project, "project"); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project in the workspace.
func (c *Client) CreateProject(ctx context.Context, workspaceID int64, fields ProjectFields) (*Project, error) {
	active := true
	payload := projectPayload{
		Name:     &fields.Name,
		Active:   &active,
		Billable: &fields.Billable,
		Private:  &fields.Private,
	}
	if fields.ClientID != 0 {
		payload.ClientID = &fields.ClientID
	}
	if fields.Color != "" {
		payload.Color = &fields.Color
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "project", Operation: "create"}
	raw, err := c.create(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPost,
		Path:     fmt.Sprintf("/workspaces/%d/projects", workspaceID),
		Body:     payload,
		Resource: "project",
	})
	if err != nil {
		return nil, err
	}

	var project Project
	if err := decode(raw.Body, &project, "project"); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject applies a partial update. Only fields set on update
// are sent.
func (c *Client) UpdateProject(ctx context.Context, workspaceID, id int64, update ProjectUpdate) (*Project, error) {
	payload := projectPayload{
		Name:     update.Name,
		ClientID: update.ClientID,
		Active:   update.Active,
		Color:    update.Color,
		Billable: update.Billable,
		Private:  update.Private,
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "project", Operation: "update", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPut,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d", workspaceID, id),
		Body:     payload,
		Resource: "project",
	})
	if err != nil {
		return nil, err
	}

	var project Project
	if err := decode(raw.Body, &project, "project"); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, workspaceID, id int64) error {
	meta := observe.CallMeta{Service: "toggl", Resource: "project", Operation: "delete", ID: fmt.Sprint(id)}
	_, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodDelete,
		Path:     fmt.Sprintf("/workspaces/%d/projects/%d", workspaceID, id),
		Resource: "project",
	})
	return err
}
