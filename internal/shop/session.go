// Package shop owns the storefront state: the catalog snapshot, the
// cart, and the view flags the browser client kept in its reactive
// data bag. All of it lives in one Session guarded by one mutex, so
// mutations apply one at a time, and every change is announced to
// subscribers as a typed event.
package shop

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/lesson-shop/internal/backend"
	"github.com/example/lesson-shop/internal/cart"
	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/inventory"
	"github.com/example/lesson-shop/internal/order"
	"github.com/google/uuid"
)

// Backend is the remote lessons/orders store, satisfied by
// backend.Client.
type Backend interface {
	ListLessons(ctx context.Context) ([]catalog.Lesson, error)
	CreateLesson(ctx context.Context, lesson catalog.Lesson) (catalog.Lesson, error)
	UpdateLesson(ctx context.Context, id string, lesson catalog.Lesson) error
	UpdateSpaces(ctx context.Context, id string, spaces int) error
	DeleteLesson(ctx context.Context, id string) error
	SubmitOrder(ctx context.Context, o *order.Order) error
}

var _ Backend = (*backend.Client)(nil)

// Subscriber receives every event the session emits.
type Subscriber func(eventType string, data any)

// View is the display state attached to the session.
type View struct {
	SearchQuery  string            `json:"searchQuery"`
	SortKey      string            `json:"sortKey"`
	SortDir      catalog.Direction `json:"sortDir"`
	ShowCart     bool              `json:"showCart"`
	ShowCheckout bool              `json:"showCheckout"`
	Name         string            `json:"name"`
	Phone        string            `json:"phone"`
	NameError    string            `json:"nameError"`
	PhoneError   string            `json:"phoneError"`
	Confirmation string            `json:"confirmation"`
}

// Session is the single owner of catalog and cart state.
type Session struct {
	mu      sync.Mutex
	id      string
	backend Backend
	lessons []catalog.Lesson
	ledger  *inventory.Ledger
	cart    *cart.Cart
	view    View
	subs    []Subscriber
}

func NewSession(b Backend) *Session {
	return &Session{
		id:      uuid.New().String(),
		backend: b,
		ledger:  inventory.NewLedger(),
		cart:    cart.New(),
		view: View{
			SortKey: "subject",
			SortDir: catalog.Ascending,
		},
	}
}

func (s *Session) ID() string { return s.id }

// Subscribe registers a listener for session events. Subscribers run
// inside the mutation that emitted the event and must not call back
// into the session.
func (s *Session) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Session) emit(eventType string, data any) {
	for _, fn := range s.subs {
		fn(eventType, data)
	}
}

// RefreshCatalog replaces the catalog wholesale from the remote store
// and rebuilds the capacity ledger. On failure local state is left
// untouched.
func (s *Session) RefreshCatalog(ctx context.Context) error {
	lessons, err := s.backend.ListLessons(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons = lessons
	s.ledger.Load(s.lessons)
	s.emit(EventLessonsRefreshed, LessonsRefreshed{Count: len(lessons), RefreshedAt: time.Now()})
	return nil
}

// Catalog returns the filtered, sorted lesson list for the current
// search and sort state. Recomputed on every call, never cached.
func (s *Session) Catalog() []catalog.Lesson {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Project(s.lessons, s.view.SearchQuery, s.view.SortKey, s.view.SortDir)
}

func (s *Session) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SearchQuery = query
}

func (s *Session) SetSort(key string, dir catalog.Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.SortKey = key
	s.view.SortDir = dir
}

// View returns a copy of the current display state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

func (s *Session) CartLines() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines()
}

func (s *Session) GroupedCart() []cart.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Grouped()
}

func (s *Session) CartTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

// AddToCart reserves one space of a lesson and appends a cart line.
// On inventory.ErrNoCapacity nothing is mutated.
func (s *Session) AddToCart(lessonID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.Reserve(lessonID); err != nil {
		return err
	}

	lesson, _ := s.ledger.Lesson(lessonID)
	s.cart.Add(cart.Line{
		LessonID: lesson.ID,
		Subject:  lesson.Subject,
		Location: lesson.Location,
		Price:    lesson.Price,
		Spaces:   lesson.Spaces,
	})
	s.emit(EventItemAdded, ItemAddedToCart{
		LessonID: lesson.ID,
		Subject:  lesson.Subject,
		Price:    lesson.Price,
		AddedAt:  time.Now(),
	})
	return nil
}

// RemoveFromCart releases the line at index back to the catalog. An
// emptied cart closes the cart view.
func (s *Session) RemoveFromCart(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.RemoveAt(index)
	if err != nil {
		return err
	}
	s.releaseLocked(line)
	return nil
}

// RemoveOneBySubject releases the first line with a matching subject.
// No match is a silent no-op.
func (s *Session) RemoveOneBySubject(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, ok := s.cart.RemoveFirstBySubject(subject)
	if !ok {
		return
	}
	s.releaseLocked(line)
}

func (s *Session) releaseLocked(line cart.Line) {
	s.ledger.Release(line.LessonID)
	s.emit(EventItemRemoved, ItemRemovedFromCart{
		LessonID:  line.LessonID,
		Subject:   line.Subject,
		RemovedAt: time.Now(),
	})
	if s.cart.Len() == 0 {
		s.view.ShowCart = false
	}
}

func (s *Session) ToggleCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ShowCart = !s.view.ShowCart
	return s.view.ShowCart
}

func (s *Session) OpenCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ShowCheckout = true
}

func (s *Session) CloseCheckout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.ShowCheckout = false
}

// SetName stores the checkout name and refreshes its field error.
func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Name = name
	s.view.NameError = order.ValidateName(name)
}

// SetPhone stores the checkout phone and refreshes its field error.
func (s *Session) SetPhone(phone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.Phone = phone
	s.view.PhoneError = order.ValidatePhone(phone)
}

// SubmitOrder builds an order from the cart and posts it to the
// remote store. Validation failures populate the field errors and
// nothing is sent. A transport failure leaves cart and form state
// exactly as they were. Only after the store acknowledges is the cart
// cleared, the form reset, and the confirmation set.
func (s *Session) SubmitOrder(ctx context.Context) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := order.Build(s.cart.Lines(), s.view.Name, s.view.Phone)
	if err != nil {
		var formErr *order.FormError
		if errors.As(err, &formErr) {
			s.view.NameError = formErr.NameError
			s.view.PhoneError = formErr.PhoneError
		}
		return nil, err
	}

	if err := s.backend.SubmitOrder(ctx, o); err != nil {
		return nil, err
	}

	// Push the decremented spaces upstream. The order is already
	// accepted, so failures here are logged, not surfaced.
	for _, item := range o.Items {
		if lesson, ok := s.ledger.Lesson(item.LessonID); ok {
			if err := s.backend.UpdateSpaces(ctx, item.LessonID, lesson.Spaces); err != nil {
				log.Printf("[Shop] Failed to sync spaces for lesson %s: %v", item.LessonID, err)
			}
		}
	}

	s.cart.Clear()
	s.view.Name = ""
	s.view.Phone = ""
	s.view.NameError = ""
	s.view.PhoneError = ""
	s.view.ShowCheckout = false
	s.view.ShowCart = false
	s.view.Confirmation = fmt.Sprintf("Order for %s has been submitted!", o.Name)

	s.emit(EventCartCleared, CartCleared{ClearedAt: time.Now()})
	s.emit(EventOrderSubmitted, OrderSubmitted{
		OrderID:     o.ID,
		Name:        o.Name,
		Items:       o.Items,
		TotalAmount: o.TotalAmount,
		SubmittedAt: o.Date,
	})
	return o, nil
}

// CreateLesson stores a new lesson remotely and appends it to the
// local catalog.
func (s *Session) CreateLesson(ctx context.Context, lesson catalog.Lesson) (catalog.Lesson, error) {
	created, err := s.backend.CreateLesson(ctx, lesson)
	if err != nil {
		return catalog.Lesson{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lessons = append(s.lessons, created)
	s.ledger.Load(s.lessons)
	s.emit(EventLessonsRefreshed, LessonsRefreshed{Count: len(s.lessons), RefreshedAt: time.Now()})
	return created, nil
}

// UpdateLesson writes a lesson remotely, then refetches the catalog.
// The refetch happens only on success, never to mask a failed write.
func (s *Session) UpdateLesson(ctx context.Context, id string, lesson catalog.Lesson) error {
	if err := s.backend.UpdateLesson(ctx, id, lesson); err != nil {
		return err
	}
	return s.RefreshCatalog(ctx)
}

// DeleteLesson removes a lesson remotely, then refetches the catalog
// on success only.
func (s *Session) DeleteLesson(ctx context.Context, id string) error {
	if err := s.backend.DeleteLesson(ctx, id); err != nil {
		return err
	}
	return s.RefreshCatalog(ctx)
}
