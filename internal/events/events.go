package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Routing keys.
const (
	TypeBidPlaced     = "bid.placed"
	TypeAuctionClosed = "auction.closed"
)

// Event is the envelope published for every domain event.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// BidPlaced is published after a bid commits.
type BidPlaced struct {
	ListingID uint            `json:"listing_id"`
	BidID     uint            `json:"bid_id"`
	UserID    uint            `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// AuctionClosed is published when a listing transitions to inactive.
type AuctionClosed struct {
	ListingID     uint                `json:"listing_id"`
	AuthorID      uint                `json:"author_id"`
	WinnerID      *uint               `json:"winner_id,omitempty"`
	WinningAmount decimal.NullDecimal `json:"winning_amount"`
}

// New wraps a payload in an envelope with a fresh id.
func New(eventType string, payload any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers domain events.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
