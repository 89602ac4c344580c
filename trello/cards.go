package trello

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonwraymond/trackops/observe"
	"github.com/jonwraymond/trackops/transport"
)

// CardFields describes a new card.
type CardFields struct {
	Name string
	Desc string
	Due  *time.Time
	Pos  string // "top", "bottom" or a numeric position
}

// CardUpdate is a partial card update. Nil fields are not sent and
// stay unchanged upstream.
type CardUpdate struct {
	Name   *string
	Desc   *string
	Due    *time.Time
	ListID *string
	Closed *bool
	Pos    *string
}

// CreateCard creates a card on the list. Trello takes card writes as
// query parameters, not a JSON body.
//
// Retry discretion: creates are retried only on rate-limit responses.
func (c *Client) CreateCard(ctx context.Context, listID string, fields CardFields) (*Card, error) {
	query := url.Values{}
	query.Set("idList", listID)
	query.Set("name", fields.Name)
	if fields.Desc != "" {
		query.Set("desc", fields.Desc)
	}
	if fields.Due != nil {
		query.Set("due", fields.Due.UTC().Format(time.RFC3339))
	}
	if fields.Pos != "" {
		query.Set("pos", fields.Pos)
	}

	meta := observe.CallMeta{Service: "trello", Resource: "card", Operation: "create"}
	raw, err := c.create(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPost,
		Path:     "/cards",
		Query:    query,
		Resource: "card",
	})
	if err != nil {
		return nil, err
	}

	var card Card
	if err := decode(raw.Body, &card, "card"); err != nil {
		return nil, err
	}
	return &card, nil
}

// Card fetches one card by id.
func (c *Client) Card(ctx context.Context, id string) (*Card, error) {
	meta := observe.CallMeta{Service: "trello", Resource: "card", Operation: "get", ID: id}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodGet,
		Path:     "/cards/" + url.PathEscape(id),
		Resource: "card",
	})
	if err != nil {
		return nil, err
	}

	var card Card
	if err := decode(raw.Body, &card, "card"); err != nil {
		return nil, err
	}
	return &card, nil
}

// UpdateCard applies a partial update. Only fields set on update are
// sent; moving a card between lists is setting ListID.
func (c *Client) UpdateCard(ctx context.Context, id string, update CardUpdate) (*Card, error) {
	query := url.Values{}
	if update.Name != nil {
		query.Set("name", *update.Name)
	}
	if update.Desc != nil {
		query.Set("desc", *update.Desc)
	}
	if update.Due != nil {
		query.Set("due", update.Due.UTC().Format(time.RFC3339))
	}
	if update.ListID != nil {
		query.Set("idList", *update.ListID)
	}
	if update.Closed != nil {
		query.Set("closed", strconv.FormatBool(*update.Closed))
	}
	if update.Pos != nil {
		query.Set("pos", *update.Pos)
	}

	meta := observe.CallMeta{Service: "trello", Resource: "card", Operation: "update", ID: id}
	raw, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodPut,
		Path:     "/cards/" + url.PathEscape(id),
		Query:    query,
		Resource: "card",
	})
	if err != nil {
		return nil, err
	}

	var card Card
	if err := decode(raw.Body, &card, "card"); err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteCard removes a card. Deletes are idempotent by id and retried
// like reads; a missing card surfaces as a not-found error on the
// first attempt.
func (c *Client) DeleteCard(ctx context.Context, id string) error {
	meta := observe.CallMeta{Service: "trello", Resource: "card", Operation: "delete", ID: id}
	_, err := c.call(ctx, meta, transport.RequestSpec{
		Method:   http.MethodDelete,
		Path:     "/cards/" + url.PathEscape(id),
		Resource: "card",
	})
	return err
}

// Cards lists every card on the board, following the limit plus
// before-cursor pagination until a short page arrives. Each page is a
// separate paced request and items keep upstream order.
func (c *Client) Cards(ctx context.Context, boardID string) ([]Card, error) {
	return c.pageCards(ctx, "/boards/"+url.PathEscape(boardID)+"/cards", boardID)
}

// ListCards lists every card on one list, following pagination.
func (c *Client) ListCards(ctx context.Context, listID string) ([]Card, error) {
	return c.pageCards(ctx, "/lists/"+url.PathEscape(listID)+"/cards", listID)
}

func (c *Client) pageCards(ctx context.Context, path, containerID string) ([]Card, error) {
	var all []Card
	before := ""
	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(c.pageSize))
		if before != "" {
			query.Set("before", before)
		}

		meta := observe.CallMeta{Service: "trello", Resource: "card", Operation: "list", ID: containerID}
		raw, err := c.call(ctx, meta, transport.RequestSpec{
			Method:   http.MethodGet,
			Path:     path,
			Query:    query,
			Resource: "card",
		})
		if err != nil {
			return nil, err
		}

		var batch []Card
		if err := decodeList(raw.Body, &batch, "card"); err != nil {
			return nil, err
		}
		for i := range batch {
			if err := validationError(batch[i].validate(), "card"); err != nil {
				return nil, err
			}
		}
		all = append(all, batch...)
		if len(batch) < c.pageSize {
			return all, nil
		}
		// Pages come back in position order, but the before cursor
		// filters on id, and Trello ids encode creation time. Cursor on
		// the oldest id in the page; anything older was not in this
		// page, so the next one neither re-fetches nor skips cards.
		before = batch[0].ID
		for i := 1; i < len(batch); i++ {
			if batch[i].ID < before {
				before = batch[i].ID
			}
		}
	}
}

// AwaitCardVisible re-polls the list's cards until the card shows up,
// bridging upstream eventual consistency after a create. Each poll is
// paced like any other request. On budget exhaustion the error carries
// the consistency-timeout classification so the caller knows the write
// itself likely succeeded.
func (c *Client) AwaitCardVisible(ctx context.Context, listID, cardID string) (*Card, error) {
	var found *Card
	err := c.guard.Await(ctx, func(ctx context.Context) (bool, error) {
		cards, err := c.ListCards(ctx, listID)
		if err != nil {
			return false, err
		}
		for i := range cards {
			if cards[i].ID == cardID {
				found = &cards[i]
				return true, nil
			}
		}
		return false, nil
	})
	if err != nil {
		return nil, visibilityError(err, "card", cardID)
	}
	return found, nil
}

// CreateCardVerified creates a card and waits until listing the target
// list shows it.
func (c *Client) CreateCardVerified(ctx context.Context, listID string, fields CardFields) (*Card, error) {
	card, err := c.CreateCard(ctx, listID, fields)
	if err != nil {
		return nil, err
	}
	return c.AwaitCardVisible(ctx, listID, card.ID)
}
