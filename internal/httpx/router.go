package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/shopping-cart/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/carts", handler.CreateCart)

	r.Route("/carts/{id}", func(r chi.Router) {
		r.Get("/", handler.GetCart)
		r.Delete("/", handler.DestroyCart)

		r.Post("/items", handler.AddItem)
		r.Put("/items", handler.UpdateItem)
		r.Patch("/items/{productID}", handler.SetItemQuantity)
		r.Delete("/items/{productID}", handler.RemoveItem)

		r.Post("/clear", handler.ClearCart)
		r.Put("/shipping", handler.SetShipping)
		r.Post("/coupons", handler.AddCoupon)
		r.Put("/signature", handler.SetSignature)
	})

	return r
}
