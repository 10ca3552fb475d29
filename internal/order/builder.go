package order

import (
	"errors"
	"time"

	"github.com/example/lesson-shop/internal/cart"
	"github.com/google/uuid"
)

var (
	ErrInvalidForm = errors.New("invalid order form")
	ErrEmptyCart   = errors.New("cart is empty")
)

// FormError carries per-field validation messages for a rejected
// checkout. It unwraps to ErrInvalidForm.
type FormError struct {
	NameError  string `json:"nameError,omitempty"`
	PhoneError string `json:"phoneError,omitempty"`
}

func (e *FormError) Error() string { return ErrInvalidForm.Error() }

func (e *FormError) Unwrap() error { return ErrInvalidForm }

// Item is one submission line: all cart lines for a single lesson id
// collapsed into a quantity and a running total.
type Item struct {
	LessonID   string  `json:"lessonId"`
	Subject    string  `json:"subject"`
	UnitPrice  float64 `json:"unitPrice"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

// Order is the immutable checkout payload for the remote orders store.
type Order struct {
	ID          string    `json:"-"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Items       []Item    `json:"items"`
	TotalAmount float64   `json:"totalAmount"`
	Date        time.Time `json:"date"`
}

// Build groups cart lines by lesson id, in first-appearance order,
// into an order. The cart is not mutated. Validation runs first: no
// partial order is ever returned.
func Build(lines []cart.Line, name, phone string) (*Order, error) {
	formErr := &FormError{
		NameError:  ValidateName(name),
		PhoneError: ValidatePhone(phone),
	}
	if formErr.NameError != "" || formErr.PhoneError != "" {
		return nil, formErr
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	index := make(map[string]int)
	items := make([]Item, 0)
	for _, line := range lines {
		if i, ok := index[line.LessonID]; ok {
			items[i].Quantity++
			items[i].TotalPrice += line.Price
			continue
		}
		index[line.LessonID] = len(items)
		items = append(items, Item{
			LessonID:   line.LessonID,
			Subject:    line.Subject,
			UnitPrice:  line.Price,
			Quantity:   1,
			TotalPrice: line.Price,
		})
	}

	var total float64
	for _, item := range items {
		total += item.TotalPrice
	}

	return &Order{
		ID:          uuid.New().String(),
		Name:        name,
		Phone:       phone,
		Items:       items,
		TotalAmount: total,
		Date:        time.Now().UTC(),
	}, nil
}
