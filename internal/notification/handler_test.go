package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/lesson-shop/internal/events"
	"github.com/example/lesson-shop/internal/order"
	"github.com/example/lesson-shop/internal/shop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sendErr error
	calls   []sendCall
}

type sendCall struct {
	To      string
	Name    string
	OrderID string
	Total   float64
	Items   []order.Item
}

func (f *fakeSender) SendOrderConfirmation(to, name, orderID string, total float64, items []order.Item) error {
	f.calls = append(f.calls, sendCall{To: to, Name: name, OrderID: orderID, Total: total, Items: items})
	return f.sendErr
}

func submittedEnvelope(t *testing.T) events.Envelope {
	t.Helper()
	env, err := events.NewEnvelope(shop.EventOrderSubmitted, shop.OrderSubmitted{
		OrderID:     "order-1",
		Name:        "Alice",
		Items:       []order.Item{{LessonID: "l1", Subject: "Math", UnitPrice: 100, Quantity: 2, TotalPrice: 200}},
		TotalAmount: 200,
		SubmittedAt: time.Now(),
	})
	require.NoError(t, err)
	return env
}

func TestHandler_SendsConfirmationForSubmittedOrder(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, "orders@example.com")

	err := handler.HandleEvent(context.Background(), submittedEnvelope(t))

	require.NoError(t, err)
	require.Len(t, sender.calls, 1)
	call := sender.calls[0]
	assert.Equal(t, "orders@example.com", call.To)
	assert.Equal(t, "Alice", call.Name)
	assert.Equal(t, "order-1", call.OrderID)
	assert.Equal(t, 200.0, call.Total)
	require.Len(t, call.Items, 1)
	assert.Equal(t, "Math", call.Items[0].Subject)
}

func TestHandler_IgnoresOtherEventTypes(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, "orders@example.com")

	env, err := events.NewEnvelope(shop.EventItemAdded, shop.ItemAddedToCart{LessonID: "l1"})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), env))
	assert.Empty(t, sender.calls)
}

func TestHandler_PropagatesSendFailure(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("smtp down")}
	handler := NewHandler(sender, "orders@example.com")

	err := handler.HandleEvent(context.Background(), submittedEnvelope(t))

	assert.Error(t, err)
}

func TestHandler_BadPayloadIsError(t *testing.T) {
	sender := &fakeSender{}
	handler := NewHandler(sender, "orders@example.com")

	env := events.Envelope{Type: shop.EventOrderSubmitted, Data: []byte(`{`)}

	assert.Error(t, handler.HandleEvent(context.Background(), env))
	assert.Empty(t, sender.calls)
}
