package trello

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonwraymond/trackops/observe"
	"github.com/jonwraymond/trackops/transport"
)

// Boards lists the boards of the authenticated member, open boards
// only.
func (c *Client) Boards(ctx context.Context) ([]Board, error) {
	query := url.Values{}
	query.Set("filter", "open")

	meta := observe.CallMeta{Service: "trello", Resource: "board", Operation: "list"}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/members/me/boards",
		Query:    query,
		Resource: "board",
	})
	if err != nil {
		return nil, err
	}

	var boards []Board
	if err := decodeList(raw.Body, &boards, "board"); err != nil {
		return nil, err
	}
	for i := range boards {
		if err := validationError(boards[i].validate(), "board"); err != nil {
			return nil, err
		}
	}
	return boards, nil
}

// Board fetches one board by id.
func (c *Client) Board(ctx context.Context, id string) (*Board, error) {
	meta := observe.CallMeta{Service: "trello", Resource: "board", Operation: "get", ID: id}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/boards/" + url.PathEscape(id),
		Resource: "board",
	})
	if err != nil {
		return nil, err
	}

	var board Board
	if err := decode(raw.Body, &board, "board"); err != nil {
		return nil, err
	}
	return &board, nil
}

// Lists returns the open lists of a board.
func (c *Client) Lists(ctx context.Context, boardID string) ([]List, error) {
	query := url.Values{}
	query.Set("filter", "open")

	meta := observe.CallMeta{Service: "trello", Resource: "list", Operation: "list", ID: boardID}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     fmt.Sprintf("/boards/%s/lists", url.PathEscape(boardID)),
		Query:    query,
		Resource: "list",
	})
	if err != nil {
		return nil, err
	}

	var lists []List
	if err := decodeList(raw.Body, &lists, "list"); err != nil {
		return nil, err
	}
	for i := range lists {
		if err := validationError(lists[i].validate(), "list"); err != nil {
			return nil, err
		}
	}
	return lists, nil
}
