package notification

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindNegotiationUnblocked Kind = "negotiation_unblocked"
	KindTransferCompleted    Kind = "transfer_completed"
	KindPurchaseRequest      Kind = "purchase_request"
	KindExchangeRequest      Kind = "exchange_request"
	KindTransferResponse     Kind = "transfer_response"
	KindPlayerSigned         Kind = "player_signed"
	KindPlayerReleased       Kind = "player_released"
)

// Notification is a message in a manager's inbox.
type Notification struct {
	ID        int64
	UserID    string
	Kind      Kind
	Title     string
	Message   string
	URL       string
	Read      bool
	CreatedAt time.Time
}

func (n Notification) Validate() error {
	if n.UserID == "" {
		return fmt.Errorf("notification user id is required")
	}
	if n.Kind == "" {
		return fmt.Errorf("notification kind is required")
	}
	if n.Title == "" {
		return fmt.Errorf("notification title is required")
	}

	return nil
}
