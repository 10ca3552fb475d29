package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/example/lesson-shop/internal/backend"
	"github.com/example/lesson-shop/internal/cart"
	"github.com/example/lesson-shop/internal/catalog"
	"github.com/example/lesson-shop/internal/inventory"
	"github.com/example/lesson-shop/internal/order"
	"github.com/example/lesson-shop/internal/shop"
	"github.com/gorilla/mux"
)

type Handlers struct {
	session *shop.Session
}

func NewHandlers(session *shop.Session) *Handlers {
	return &Handlers{session: session}
}

// Catalog handlers

func (h *Handlers) GetCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("q") {
		h.session.SetSearch(q.Get("q"))
	}
	if q.Has("sort") {
		dir := catalog.Ascending
		if q.Get("dir") == string(catalog.Descending) {
			dir = catalog.Descending
		}
		h.session.SetSort(q.Get("sort"), dir)
	}
	respondJSON(w, http.StatusOK, h.session.Catalog())
}

func (h *Handlers) RefreshCatalog(w http.ResponseWriter, r *http.Request) {
	if err := h.session.RefreshCatalog(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.session.Catalog())
}

func (h *Handlers) CreateLesson(w http.ResponseWriter, r *http.Request) {
	var lesson catalog.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.session.CreateLesson(r.Context(), lesson)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *Handlers) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var lesson catalog.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.session.UpdateLesson(r.Context(), id, lesson); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lesson updated"})
}

func (h *Handlers) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.session.DeleteLesson(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Lesson deleted"})
}

// Cart handlers

type cartResponse struct {
	Lines   []cart.Line  `json:"lines"`
	Grouped []cart.Group `json:"grouped"`
	Total   float64      `json:"total"`
	Open    bool         `json:"open"`
}

func (h *Handlers) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse{
		Lines:   h.session.CartLines(),
		Grouped: h.session.GroupedCart(),
		Total:   h.session.CartTotal(),
		Open:    h.session.View().ShowCart,
	})
}

func (h *Handlers) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonID string `json:"lesson_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.session.AddToCart(req.LessonID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		http.Error(w, "index must be an integer", http.StatusBadRequest)
		return
	}

	if err := h.session.RemoveFromCart(index); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) RemoveBySubject(w http.ResponseWriter, r *http.Request) {
	h.session.RemoveOneBySubject(mux.Vars(r)["subject"])
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) ToggleCart(w http.ResponseWriter, r *http.Request) {
	open := h.session.ToggleCart()
	respondJSON(w, http.StatusOK, map[string]bool{"open": open})
}

// Checkout handler

type checkoutResponse struct {
	Confirmation string       `json:"confirmation"`
	Order        *order.Order `json:"order"`
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.session.SetName(req.Name)
	h.session.SetPhone(req.Phone)
	h.session.OpenCheckout()

	o, err := h.session.SubmitOrder(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, checkoutResponse{
		Confirmation: h.session.View().Confirmation,
		Order:        o,
	})
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError maps domain errors onto HTTP statuses. Anything from
// the remote store surfaces as 502 so the caller can retry.
func respondError(w http.ResponseWriter, err error) {
	var formErr *order.FormError
	var apiErr *backend.APIError

	switch {
	case errors.Is(err, inventory.ErrNoCapacity):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, inventory.ErrUnknownLesson):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, cart.ErrBadIndex), errors.Is(err, order.ErrEmptyCart):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &formErr):
		respondJSON(w, http.StatusUnprocessableEntity, formErr)
	case errors.As(err, &apiErr):
		log.Printf("[API] Backend failure: %v", apiErr)
		http.Error(w, "remote store unavailable", http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
