package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/example/lesson-shop/internal/events"
	"github.com/example/lesson-shop/internal/order"
	"github.com/example/lesson-shop/internal/shop"
)

// Sender delivers the confirmation for a submitted order, satisfied
// by email.Service.
type Sender interface {
	SendOrderConfirmation(to, name, orderID string, total float64, items []order.Item) error
}

// Handler turns OrderSubmitted events into confirmation messages.
type Handler struct {
	sender Sender
	to     string
}

// NewHandler creates a notification handler delivering to a fixed
// recipient. Orders carry no email address, so the recipient is the
// operator inbox configured at startup.
func NewHandler(sender Sender, to string) *Handler {
	return &Handler{sender: sender, to: to}
}

// HandleEvent processes one event envelope from the topic. Events
// other than OrderSubmitted are ignored.
func (h *Handler) HandleEvent(ctx context.Context, env events.Envelope) error {
	if env.Type != shop.EventOrderSubmitted {
		return nil
	}

	var e shop.OrderSubmitted
	if err := json.Unmarshal(env.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal OrderSubmitted event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing OrderSubmitted event for order %s (%s)", e.OrderID, e.Name)

	if err := h.sender.SendOrderConfirmation(h.to, e.Name, e.OrderID, e.TotalAmount, e.Items); err != nil {
		log.Printf("[Notifier] Failed to send confirmation to %s: %v", h.to, err)
		return err
	}

	log.Printf("[Notifier] Confirmation sent to %s for order %s", h.to, e.OrderID)
	return nil
}
