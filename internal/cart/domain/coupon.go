package domain

// CouponType discriminates the coupon variants in serialized cart state.
type CouponType string

const (
	CouponPercentage  CouponType = "percentage"
	CouponFixedAmount CouponType = "fixed"
)

// Coupon is a discount rule. Apply receives the cart total and returns the
// discount amount to subtract from it. The cart evaluates every coupon
// against the same original total, so discounts sum linearly instead of
// compounding.
type Coupon interface {
	Type() CouponType
	Apply(total float64) float64
}

// PercentageCoupon discounts a percentage of the total.
type PercentageCoupon struct {
	Code       string  `json:"code"`
	Percentage float64 `json:"percentage"`
}

func (c PercentageCoupon) Type() CouponType { return CouponPercentage }

func (c PercentageCoupon) Apply(total float64) float64 {
	return total * c.Percentage / 100
}

// FixedAmountCoupon discounts a fixed amount, capped at the total so a
// large coupon on a small cart cannot drive the result negative.
type FixedAmountCoupon struct {
	Code   string  `json:"code"`
	Amount float64 `json:"amount"`
}

func (c FixedAmountCoupon) Type() CouponType { return CouponFixedAmount }

func (c FixedAmountCoupon) Apply(total float64) float64 {
	if c.Amount > total {
		return total
	}
	return c.Amount
}
