package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jcmexdev/shopping-cart/internal/cart/app"
	"github.com/jcmexdev/shopping-cart/internal/cart/domain"
	"github.com/jcmexdev/shopping-cart/internal/cart/storage"
)

// Handler serves the cart HTTP API. Each request builds a manager, restores
// the addressed cart from storage, applies the operation, and stores the
// result back, so every mutation exercises the full persistence round-trip.
type Handler struct {
	repo storage.Repository
}

// NewHandler initializes the handler with the persistence backend.
func NewHandler(repo storage.Repository) *Handler {
	return &Handler{repo: repo}
}

// CreateCart mints a fresh external cart id. Nothing is stored until the
// first mutation.
func (h *Handler) CreateCart(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	slog.InfoContext(r.Context(), "cart id issued", "cart_id", id)
	writeJSON(w, http.StatusCreated, CreateCartResponse{ID: id})
}

// GetCart returns the cart view. A cart that was never stored comes back
// empty rather than 404: restore of a missing record is a no-op.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	mgr, id, err := h.load(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, mapCartToResponse(id, mgr))
}

// DestroyCart deletes the stored record for the addressed instance.
func (h *Handler) DestroyCart(w http.ResponseWriter, r *http.Request) {
	mgr, id, err := h.load(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", err.Error())
		return
	}
	if err := mgr.Destroy(r.Context(), id); err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem adds a line item; a repeated product+options combination
// accumulates quantity.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_item", "product_id and a positive quantity are required")
		return
	}

	h.mutate(w, r, func(mgr *app.Manager) error {
		mgr.Add(req.ProductID, req.Name, req.Price, req.Quantity, req.Options)
		return nil
	})
}

// UpdateItem puts a line item with replace-quantity semantics.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" || req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_item", "product_id and a positive quantity are required")
		return
	}

	h.mutate(w, r, func(mgr *app.Manager) error {
		mgr.Update(req.ProductID, req.Name, req.Price, req.Quantity, req.Options)
		return nil
	})
}

// SetItemQuantity replaces the quantity of the first item matching the
// product id in the path.
func (h *Handler) SetItemQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req SetQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
		return
	}

	h.mutate(w, r, func(mgr *app.Manager) error {
		if !mgr.SetQuantity(productID, req.Quantity) {
			return errItemNotFound
		}
		return nil
	})
}

// RemoveItem deletes the first item matching the product id in the path.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	h.mutate(w, r, func(mgr *app.Manager) error {
		if !mgr.Remove(productID) {
			return errItemNotFound
		}
		return nil
	})
}

// ClearCart empties the line items; coupons and shipping survive.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(mgr *app.Manager) error {
		mgr.Clear()
		return nil
	})
}

// SetShipping sets the shipping charge and method, and optionally the
// additional shipping charge.
func (h *Handler) SetShipping(w http.ResponseWriter, r *http.Request) {
	var req ShippingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	h.mutate(w, r, func(mgr *app.Manager) error {
		mgr.SetShipping(req.Cost, req.Method)
		if req.AdditionalCost != nil {
			mgr.SetAdditionalShipping(*req.AdditionalCost)
		}
		return nil
	})
}

// AddCoupon appends a coupon to the cart.
func (h *Handler) AddCoupon(w http.ResponseWriter, r *http.Request) {
	var req CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	var coupon domain.Coupon
	switch domain.CouponType(req.Type) {
	case domain.CouponPercentage:
		coupon = domain.PercentageCoupon{Code: req.Code, Percentage: req.Percentage}
	case domain.CouponFixedAmount:
		coupon = domain.FixedAmountCoupon{Code: req.Code, Amount: req.Amount}
	default:
		writeError(w, http.StatusBadRequest, "invalid_coupon", "type must be \"percentage\" or \"fixed\"")
		return
	}

	h.mutate(w, r, func(mgr *app.Manager) error {
		mgr.AddCoupon(coupon)
		return nil
	})
}

// SetSignature stores the request body as the cart's opaque signature.
func (h *Handler) SetSignature(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", err.Error())
		return
	}
	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid_json", "signature must be a JSON value")
		return
	}

	h.mutate(w, r, func(mgr *app.Manager) error {
		mgr.SetSignature(json.RawMessage(body))
		return nil
	})
}

// errItemNotFound signals a mutation addressed at an item the cart does
// not contain; it maps to 404 and skips the store.
var errItemNotFound = errors.New("item not in cart")

// load builds a manager for the addressed cart and restores its stored
// state, if any.
func (h *Handler) load(r *http.Request) (*app.Manager, string, error) {
	id := chi.URLParam(r, "id")

	mgr := app.NewManager(h.repo)
	mgr.SetInstance(r.URL.Query().Get("instance"))

	if _, err := mgr.Restore(r.Context(), id); err != nil {
		return nil, id, err
	}
	return mgr, id, nil
}

// mutate runs the restore-apply-store cycle shared by every mutation
// endpoint and writes the resulting cart view.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, apply func(*app.Manager) error) {
	mgr, id, err := h.load(r)
	if err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", err.Error())
		return
	}

	if err := apply(mgr); err != nil {
		if errors.Is(err, errItemNotFound) {
			writeError(w, http.StatusNotFound, "item_not_found", err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "cart_error", err.Error())
		return
	}

	if err := mgr.Store(r.Context(), id); err != nil {
		writeError(w, http.StatusBadGateway, "storage_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, mapCartToResponse(id, mgr))
}

// mapCartToResponse converts the manager's cart into the HTTP view.
func mapCartToResponse(id string, mgr *app.Manager) CartResponse {
	items := mgr.Items()
	resp := CartResponse{
		ID:                    id,
		Instance:              mgr.CurrentInstance(),
		Items:                 make([]ItemResponse, 0, len(items)),
		Coupons:               make([]CouponInfo, 0, len(mgr.Coupons())),
		Count:                 mgr.Count(),
		TotalItems:            mgr.CountTotalItems(),
		SubTotal:              mgr.SubTotal(),
		Total:                 mgr.Total(),
		TotalWithCoupons:      mgr.TotalWithCoupons(),
		Tax:                   mgr.Tax(),
		Shipping:              mgr.Shipping(),
		ShippingTax:           mgr.ShippingTax(),
		AdditionalShipping:    mgr.AdditionalShipping(),
		AdditionalShippingTax: mgr.AdditionalShippingTax(),
		TotalShipping:         mgr.TotalShipping(),
		ShippingMethod:        mgr.ShippingMethod(),
		Signature:             mgr.Signature(),
	}

	for _, item := range items {
		resp.Items = append(resp.Items, ItemResponse{
			ProductID: item.ID,
			UniqueID:  item.UniqueID(),
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Options:   item.Options,
			Total:     item.Total(),
			Tax:       item.Tax(),
		})
	}

	for _, coupon := range mgr.Coupons() {
		resp.Coupons = append(resp.Coupons, mapCoupon(coupon))
	}

	return resp
}

func mapCoupon(coupon domain.Coupon) CouponInfo {
	switch c := coupon.(type) {
	case domain.PercentageCoupon:
		return CouponInfo{Type: string(c.Type()), Code: c.Code, Percentage: c.Percentage}
	case domain.FixedAmountCoupon:
		return CouponInfo{Type: string(c.Type()), Code: c.Code, Amount: c.Amount}
	default:
		return CouponInfo{Type: string(coupon.Type())}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}

