package httpx

import "encoding/json"

type AddItemRequest struct {
	ProductID string            `json:"product_id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options,omitempty"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ShippingRequest struct {
	Cost   float64 `json:"cost"`
	Method string  `json:"method"`

	// AdditionalCost is optional; when present the additional shipping
	// charge is set under the same zero-clamping rule.
	AdditionalCost *float64 `json:"additional_cost,omitempty"`
}

type CouponRequest struct {
	Type       string  `json:"type"` // "percentage" | "fixed"
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}

type CreateCartResponse struct {
	ID string `json:"id"`
}

type CartResponse struct {
	ID                    string          `json:"id"`
	Instance              string          `json:"instance"`
	Items                 []ItemResponse  `json:"items"`
	Coupons               []CouponInfo    `json:"coupons"`
	Count                 int             `json:"count"`
	TotalItems            int             `json:"total_items"`
	SubTotal              float64         `json:"sub_total"`
	Total                 float64         `json:"total"`
	TotalWithCoupons      float64         `json:"total_with_coupons"`
	Tax                   float64         `json:"tax"`
	Shipping              float64         `json:"shipping"`
	ShippingTax           float64         `json:"shipping_tax"`
	AdditionalShipping    float64         `json:"additional_shipping"`
	AdditionalShippingTax float64         `json:"additional_shipping_tax"`
	TotalShipping         float64         `json:"total_shipping"`
	ShippingMethod        string          `json:"shipping_method,omitempty"`
	Signature             json.RawMessage `json:"signature,omitempty"`
}

type ItemResponse struct {
	ProductID string            `json:"product_id"`
	UniqueID  string            `json:"unique_id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	Quantity  int               `json:"quantity"`
	Options   map[string]string `json:"options,omitempty"`
	Total     float64           `json:"total"`
	Tax       float64           `json:"tax"`
}

type CouponInfo struct {
	Type       string  `json:"type"`
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage,omitempty"`
	Amount     float64 `json:"amount,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
