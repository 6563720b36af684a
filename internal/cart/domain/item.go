package domain

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
)

// vatRate is the VAT-inclusive pricing divisor. Prices already carry 21%
// VAT, so the tax portion of a price p is p - p/1.21.
const vatRate = 1.21

// LineItem is a single product entry in a cart: the external product id,
// display name, unit price, quantity, and the variant options (size, color,
// ...) that distinguish it from other entries for the same product.
type LineItem struct {
	ID       string
	Name     string
	Price    float64
	Quantity int
	Options  map[string]string
}

// NewLineItem builds a line item. A nil options map is normalised to empty
// so items added with nil and with an empty map share the same unique id.
func NewLineItem(id, name string, price float64, quantity int, options map[string]string) *LineItem {
	if options == nil {
		options = map[string]string{}
	}
	return &LineItem{
		ID:       id,
		Name:     name,
		Price:    price,
		Quantity: quantity,
		Options:  options,
	}
}

// UniqueID is the stable identity of this line item inside a cart: a digest
// of the product id plus the option mapping, so the same product with
// different options is a distinct entry. Option keys are sorted before
// hashing so the digest does not depend on map iteration order.
func (i *LineItem) UniqueID() string {
	keys := make([]string, 0, len(i.Options))
	for k := range i.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(i.ID)
	for _, k := range keys {
		b.WriteByte(';')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(i.Options[k])
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Total is the line total: price times quantity.
func (i *LineItem) Total() float64 {
	return i.Price * float64(i.Quantity)
}

// Tax is the VAT-inclusive portion of the line total.
func (i *LineItem) Tax() float64 {
	return (i.Price - i.Price/vatRate) * float64(i.Quantity)
}
