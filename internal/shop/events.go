package shop

import (
	"time"

	"github.com/example/lesson-shop/internal/order"
)

const (
	EventLessonsRefreshed = "LessonsRefreshed"
	EventItemAdded        = "ItemAddedToCart"
	EventItemRemoved      = "ItemRemovedFromCart"
	EventCartCleared      = "CartCleared"
	EventOrderSubmitted   = "OrderSubmitted"
)

type LessonsRefreshed struct {
	Count       int       `json:"count"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

type ItemAddedToCart struct {
	LessonID string    `json:"lesson_id"`
	Subject  string    `json:"subject"`
	Price    float64   `json:"price"`
	AddedAt  time.Time `json:"added_at"`
}

type ItemRemovedFromCart struct {
	LessonID  string    `json:"lesson_id"`
	Subject   string    `json:"subject"`
	RemovedAt time.Time `json:"removed_at"`
}

type CartCleared struct {
	ClearedAt time.Time `json:"cleared_at"`
}

type OrderSubmitted struct {
	OrderID     string       `json:"order_id"`
	Name        string       `json:"name"`
	Items       []order.Item `json:"items"`
	TotalAmount float64      `json:"total_amount"`
	SubmittedAt time.Time    `json:"submitted_at"`
}
