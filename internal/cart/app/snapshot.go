package app

import (
	"encoding/json"
	"fmt"

	"github.com/jcmexdev/shopping-cart/internal/cart/domain"
)

// snapshot is the serialized form of a cart. It must round-trip every
// aggregate field losslessly; fields absent in older blobs decode to their
// zero values.
type snapshot struct {
	Items                 []snapshotItem   `json:"items"`
	Coupons               []snapshotCoupon `json:"coupons"`
	Shipping              float64          `json:"shipping"`
	ShippingTax           float64          `json:"shipping_tax"`
	AdditionalShipping    float64          `json:"additional_shipping"`
	AdditionalShippingTax float64          `json:"additional_shipping_tax"`
	ShippingMethod        string           `json:"shipping_method"`
	Signature             json.RawMessage  `json:"signature,omitempty"`
}

type snapshotItem struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Price    float64           `json:"price"`
	Quantity int               `json:"quantity"`
	Options  map[string]string `json:"options,omitempty"`
}

// snapshotCoupon is the tagged envelope that carries the polymorphic
// coupon variants through JSON.
type snapshotCoupon struct {
	Type       domain.CouponType `json:"type"`
	Code       string            `json:"code"`
	Percentage float64           `json:"percentage,omitempty"`
	Amount     float64           `json:"amount,omitempty"`
}

// encodeCart serializes the full cart state, items in insertion order.
func encodeCart(cart *domain.Cart) ([]byte, error) {
	state := cart.State()

	snap := snapshot{
		Items:                 make([]snapshotItem, 0, len(state.Items)),
		Coupons:               make([]snapshotCoupon, 0, len(state.Coupons)),
		Shipping:              state.Shipping,
		ShippingTax:           state.ShippingTax,
		AdditionalShipping:    state.AdditionalShipping,
		AdditionalShippingTax: state.AdditionalShippingTax,
		ShippingMethod:        state.ShippingMethod,
		Signature:             state.Signature,
	}

	for _, item := range state.Items {
		snap.Items = append(snap.Items, snapshotItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Options:  item.Options,
		})
	}

	for _, coupon := range state.Coupons {
		env, err := encodeCoupon(coupon)
		if err != nil {
			return nil, err
		}
		snap.Coupons = append(snap.Coupons, env)
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("cart: encode snapshot: %w", err)
	}
	return b, nil
}

// decodeCart rebuilds a cart from a stored blob. Every field is assigned
// exactly as stored; fields missing from the blob come back as zero values.
func decodeCart(content []byte) (*domain.Cart, error) {
	var snap snapshot
	if err := json.Unmarshal(content, &snap); err != nil {
		return nil, fmt.Errorf("cart: decode snapshot: %w", err)
	}

	state := domain.State{
		Shipping:              snap.Shipping,
		ShippingTax:           snap.ShippingTax,
		AdditionalShipping:    snap.AdditionalShipping,
		AdditionalShippingTax: snap.AdditionalShippingTax,
		ShippingMethod:        snap.ShippingMethod,
		Signature:             snap.Signature,
	}

	for _, item := range snap.Items {
		state.Items = append(state.Items,
			domain.NewLineItem(item.ID, item.Name, item.Price, item.Quantity, item.Options))
	}

	for _, env := range snap.Coupons {
		coupon, err := decodeCoupon(env)
		if err != nil {
			return nil, err
		}
		state.Coupons = append(state.Coupons, coupon)
	}

	return domain.FromState(state), nil
}

func encodeCoupon(coupon domain.Coupon) (snapshotCoupon, error) {
	switch c := coupon.(type) {
	case domain.PercentageCoupon:
		return snapshotCoupon{Type: c.Type(), Code: c.Code, Percentage: c.Percentage}, nil
	case domain.FixedAmountCoupon:
		return snapshotCoupon{Type: c.Type(), Code: c.Code, Amount: c.Amount}, nil
	default:
		return snapshotCoupon{}, fmt.Errorf("cart: encode coupon: unknown type %T", coupon)
	}
}

func decodeCoupon(env snapshotCoupon) (domain.Coupon, error) {
	switch env.Type {
	case domain.CouponPercentage:
		return domain.PercentageCoupon{Code: env.Code, Percentage: env.Percentage}, nil
	case domain.CouponFixedAmount:
		return domain.FixedAmountCoupon{Code: env.Code, Amount: env.Amount}, nil
	default:
		return nil, fmt.Errorf("cart: decode coupon: unknown type %q", env.Type)
	}
}
