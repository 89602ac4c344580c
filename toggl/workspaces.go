package toggl

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonwraymond/trackops/observe"
	"github.com/jonwraymond/trackops/transport"
)

// Workspaces lists the workspaces visible to the authenticated user.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "workspace", Operation: "list"}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/workspaces",
		Resource: "workspace",
	})
	if err != nil {
		return nil, err
	}

	var workspaces []Workspace
	if err := decodeList(raw.Body, &workspaces, "workspace"); err != nil {
		return nil, err
	}
	for i := range workspaces {
		if err := validationError(workspaces[i].validate(), "workspace"); err != nil {
			return nil, err
		}
	}
	return workspaces, nil
}

// CustomerFilter narrows a customer listing.
type CustomerFilter struct {
	// Name filters by name fragment.
	Name string

	// Status is "active", "archived" or "both". Empty means active.
	Status string
}

// Customers lists the client records of a workspace.
func (c *Client) Customers(ctx context.Context, workspaceID int64, filter CustomerFilter) ([]Customer, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}

	meta := observe.CallMeta{Service: "toggl", Resource: "customer", Operation: "list"}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/workspaces/%d/clients", workspaceID),
		Query:    query,
		Resource: "customer",
	})
	if err != nil {
		return nil, err
	}

	var customers []Customer
	if err := decodeList(raw.Body, &customers, "customer"); err != nil {
		return nil, err
	}
	for i := range customers {
		if err := validationError(customers[i].validate(), "customer"); err != nil {
			return nil, err
		}
	}
	return customers, nil
}

// Customer fetches one client record by id.
func (c *Client) Customer(ctx context.Context, workspaceID, id int64) (*Customer, error) {
	meta := observe.CallMeta{Service: "toggl", Resource: "customer", Operation: "get", ID: fmt.Sprint(id)}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/workspaces/%d/clients/%d", workspaceID, id),
		Resource: "customer",
	})
	if err != nil {
		return nil, err
	}

	var customer Customer
	if err := decode(raw.Body, &customer, "customer"); err != nil {
		return nil, err
	}
	return &customer, nil
}
