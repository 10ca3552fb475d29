package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(handlers *Handlers) http.Handler {
	r := mux.NewRouter()

	// Catalog
	r.HandleFunc("/catalog", handlers.GetCatalog).Methods(http.MethodGet)
	r.HandleFunc("/catalog/refresh", handlers.RefreshCatalog).Methods(http.MethodPost)

	// Lesson admin passthrough
	r.HandleFunc("/lessons", handlers.CreateLesson).Methods(http.MethodPost)
	r.HandleFunc("/lessons/{id}", handlers.UpdateLesson).Methods(http.MethodPut)
	r.HandleFunc("/lessons/{id}", handlers.DeleteLesson).Methods(http.MethodDelete)

	// Cart
	r.HandleFunc("/cart", handlers.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/cart/items", handlers.AddToCart).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{index}", handlers.RemoveFromCart).Methods(http.MethodDelete)
	r.HandleFunc("/cart/subject/{subject}", handlers.RemoveBySubject).Methods(http.MethodDelete)
	r.HandleFunc("/cart/toggle", handlers.ToggleCart).Methods(http.MethodPost)

	// Checkout
	r.HandleFunc("/checkout", handlers.Checkout).Methods(http.MethodPost)

	return withLogging(r)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
