package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jcmexdev/shopping-cart/internal/cart/domain"
)

func TestLineItem_UniqueID_StableAcrossOptionOrder(t *testing.T) {
	a := domain.NewLineItem("42", "Shirt", 19.99, 1, map[string]string{"size": "L", "color": "red"})
	b := domain.NewLineItem("42", "Shirt", 19.99, 3, map[string]string{"color": "red", "size": "L"})

	assert.Equal(t, a.UniqueID(), b.UniqueID())
}

func TestLineItem_UniqueID_DistinguishesOptions(t *testing.T) {
	a := domain.NewLineItem("42", "Shirt", 19.99, 1, map[string]string{"size": "L"})
	b := domain.NewLineItem("42", "Shirt", 19.99, 1, map[string]string{"size": "M"})

	assert.NotEqual(t, a.UniqueID(), b.UniqueID())
}

func TestLineItem_UniqueID_NilAndEmptyOptionsMatch(t *testing.T) {
	a := domain.NewLineItem("42", "Shirt", 19.99, 1, nil)
	b := domain.NewLineItem("42", "Shirt", 19.99, 1, map[string]string{})

	assert.Equal(t, a.UniqueID(), b.UniqueID())
}

func TestLineItem_Total(t *testing.T) {
	item := domain.NewLineItem("1", "Widget", 9.99, 3, nil)

	assert.InDelta(t, 29.97, item.Total(), 1e-9)
}

func TestLineItem_Tax_ExtractsInclusiveVAT(t *testing.T) {
	// Price of 121 carries 21 of VAT per unit.
	item := domain.NewLineItem("1", "Widget", 121, 2, nil)

	assert.InDelta(t, 42, item.Tax(), 1e-9)
}
