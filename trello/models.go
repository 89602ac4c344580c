package trello

import (
	"errors"
	"time"
)

// Board is a Trello board.
type Board struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Desc     string `json:"desc"`
	Closed   bool   `json:"closed"`
	URL      string `json:"url"`
	ShortURL string `json:"shortUrl"`
}

func (b *Board) validate() error {
	if b.ID == "" {
		return errors.New("board missing id")
	}
	if b.Name == "" {
		return errors.New("board missing name")
	}
	return nil
}

// List is a column on a board.
type List struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Closed  bool    `json:"closed"`
	BoardID string  `json:"idBoard"`
	Pos     float64 `json:"pos"`
}

func (l *List) validate() error {
	if l.ID == "" {
		return errors.New("list missing id")
	}
	if l.Name == "" {
		return errors.New("list missing name")
	}
	return nil
}

// Card is a card on a list. Due is nil for cards without a due date.
type Card struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Desc         string     `json:"desc"`
	Due          *time.Time `json:"due"`
	ListID       string     `json:"idList"`
	BoardID      string     `json:"idBoard"`
	Closed       bool       `json:"closed"`
	URL          string     `json:"url"`
	ShortURL     string     `json:"shortUrl"`
	Pos          float64    `json:"pos"`
	LastActivity *time.Time `json:"dateLastActivity"`
}

func (c *Card) validate() error {
	if c.ID == "" {
		return errors.New("card missing id")
	}
	if c.Name == "" {
		return errors.New("card missing name")
	}
	return nil
}
