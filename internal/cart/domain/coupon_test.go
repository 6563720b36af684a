package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/shopping-cart/internal/cart/domain"
)

func TestPercentageCoupon_Apply(t *testing.T) {
	c := domain.PercentageCoupon{Code: "P15", Percentage: 15}

	assert.InDelta(t, 30, c.Apply(200), 1e-9)
	assert.Zero(t, c.Apply(0))
}

func TestFixedAmountCoupon_Apply_CappedAtTotal(t *testing.T) {
	c := domain.FixedAmountCoupon{Code: "F50", Amount: 50}

	assert.InDelta(t, 50, c.Apply(200), 1e-9)
	assert.InDelta(t, 20, c.Apply(20), 1e-9)
}
