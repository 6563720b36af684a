package domain

import "encoding/json"

// Cart is the aggregate state of one cart instance: the line items keyed by
// their unique id, the coupons in insertion order, the shipping charges and
// their extracted VAT, the shipping method label, and an opaque signature
// payload supplied by the caller.
//
// Items are kept in insertion order for display; totals do not depend on it.
type Cart struct {
	content map[string]*LineItem
	order   []string

	coupons []Coupon

	shipping              float64
	shippingTax           float64
	additionalShipping    float64
	additionalShippingTax float64
	shippingMethod        string

	signature json.RawMessage
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{
		content: make(map[string]*LineItem),
	}
}

// Add puts a line item into the cart. If an item with the same product id
// and options is already present, the quantities are summed and the new
// item (carrying the summed quantity) replaces the stored one. Returns the
// resulting item.
func (c *Cart) Add(id, name string, price float64, quantity int, options map[string]string) *LineItem {
	item := NewLineItem(id, name, price, quantity, options)
	uid := item.UniqueID()

	if existing, ok := c.content[uid]; ok {
		item.Quantity += existing.Quantity
	}
	c.put(uid, item)

	return item
}

// Update puts a line item into the cart, replacing the quantity of an
// existing entry instead of accumulating it. Absent items are inserted.
// This is deliberately asymmetric with Add.
func (c *Cart) Update(id, name string, price float64, quantity int, options map[string]string) *LineItem {
	item := NewLineItem(id, name, price, quantity, options)
	c.put(item.UniqueID(), item)

	return item
}

// SetQuantity replaces the quantity of the first item matching the given
// product id. Reports whether such an item was found.
func (c *Cart) SetQuantity(id string, quantity int) bool {
	item, ok := c.Get(id)
	if !ok {
		return false
	}

	item.Quantity = quantity
	c.put(item.UniqueID(), item)

	return true
}

// Remove deletes the first item matching the given product id. Reports
// whether an item was removed.
func (c *Cart) Remove(id string) bool {
	item, ok := c.Get(id)
	if !ok {
		return false
	}

	uid := item.UniqueID()
	delete(c.content, uid)
	for n, stored := range c.order {
		if stored == uid {
			c.order = append(c.order[:n], c.order[n+1:]...)
			break
		}
	}

	return true
}

// Get returns the first item matching the given product id, in insertion
// order. When several entries share the product id (different options),
// only the first is returned; callers needing a specific variant must
// disambiguate externally.
func (c *Cart) Get(id string) (*LineItem, bool) {
	for _, uid := range c.order {
		if item := c.content[uid]; item.ID == id {
			return item, true
		}
	}
	return nil, false
}

// Has reports whether an item with the given unique id is in the cart.
func (c *Cart) Has(uniqueID string) bool {
	_, ok := c.content[uniqueID]
	return ok
}

// Items returns the line items in insertion order.
func (c *Cart) Items() []*LineItem {
	items := make([]*LineItem, 0, len(c.order))
	for _, uid := range c.order {
		items = append(items, c.content[uid])
	}
	return items
}

// Clear removes all line items. Coupons, shipping fields, and the
// signature are untouched.
func (c *Cart) Clear() {
	c.content = make(map[string]*LineItem)
	c.order = nil
}

// Count is the number of distinct line-item entries.
func (c *Cart) Count() int {
	return len(c.content)
}

// CountTotalItems is the sum of all line-item quantities.
func (c *Cart) CountTotalItems() int {
	var n int
	for _, item := range c.content {
		n += item.Quantity
	}
	return n
}

// AddCoupon appends a coupon. Coupons are never individually removed.
func (c *Cart) AddCoupon(coupon Coupon) {
	c.coupons = append(c.coupons, coupon)
}

// Coupons returns the coupons in insertion order.
func (c *Cart) Coupons() []Coupon {
	return c.coupons
}

// SetShipping sets the shipping method and charge. A cost above zero also
// extracts the VAT portion into the shipping tax; a cost of zero or below
// forces both charge and tax to zero. The method label is set either way.
func (c *Cart) SetShipping(cost float64, method string) {
	c.shippingMethod = method
	if cost > 0 {
		c.shipping = cost
		c.shippingTax = cost - cost/vatRate
	} else {
		c.shipping = 0
		c.shippingTax = 0
	}
}

// SetAdditionalShipping sets the additional shipping charge under the same
// rule as SetShipping, without a method label.
func (c *Cart) SetAdditionalShipping(cost float64) {
	if cost > 0 {
		c.additionalShipping = cost
		c.additionalShippingTax = cost - cost/vatRate
	} else {
		c.additionalShipping = 0
		c.additionalShippingTax = 0
	}
}

func (c *Cart) Shipping() float64              { return c.shipping }
func (c *Cart) ShippingTax() float64           { return c.shippingTax }
func (c *Cart) AdditionalShipping() float64    { return c.additionalShipping }
func (c *Cart) AdditionalShippingTax() float64 { return c.additionalShippingTax }
func (c *Cart) ShippingMethod() string         { return c.shippingMethod }

// SetShippingMethod replaces the method label without touching the charges.
func (c *Cart) SetShippingMethod(method string) {
	c.shippingMethod = method
}

// Signature returns the opaque caller-supplied payload, nil when unset.
func (c *Cart) Signature() json.RawMessage {
	return c.signature
}

// SetSignature stores an opaque payload that round-trips through
// store/restore as-is.
func (c *Cart) SetSignature(signature json.RawMessage) {
	c.signature = signature
}

// SubTotal is the sum of the line totals, without shipping or tax.
func (c *Cart) SubTotal() float64 {
	var sum float64
	for _, item := range c.content {
		sum += item.Total()
	}
	return sum
}

// Total sums, over the line items, the line total plus the shipping and
// additional shipping charges. The shipping charges are therefore counted
// once per line item, not once per cart; an empty cart totals zero even
// when a shipping charge is set. TotalShipping is the flat counterpart.
func (c *Cart) Total() float64 {
	var sum float64
	for _, item := range c.content {
		sum += item.Total() + c.shipping + c.additionalShipping
	}
	return sum
}

// Tax sums, over the line items, the line tax plus the shipping and
// additional shipping taxes, with the same per-line-item multiplication
// as Total.
func (c *Cart) Tax() float64 {
	var sum float64
	for _, item := range c.content {
		sum += item.Tax() + c.shippingTax + c.additionalShippingTax
	}
	return sum
}

// TotalShipping is the flat shipping charge: shipping plus additional
// shipping, independent of the number of line items.
func (c *Cart) TotalShipping() float64 {
	return c.shipping + c.additionalShipping
}

// TotalWithCoupons applies every coupon to Total. Each coupon is evaluated
// against the original total, so the discounts sum linearly; two 10%
// coupons discount 20%, not 19%.
func (c *Cart) TotalWithCoupons() float64 {
	total := c.Total()
	withCoupons := total
	for _, coupon := range c.coupons {
		withCoupons -= coupon.Apply(total)
	}
	return withCoupons
}

// State is the raw field-for-field view of a cart used by the persistence
// round-trip. Items are in insertion order.
type State struct {
	Items                 []*LineItem
	Coupons               []Coupon
	Shipping              float64
	ShippingTax           float64
	AdditionalShipping    float64
	AdditionalShippingTax float64
	ShippingMethod        string
	Signature             json.RawMessage
}

// State snapshots every aggregate field.
func (c *Cart) State() State {
	return State{
		Items:                 c.Items(),
		Coupons:               c.coupons,
		Shipping:              c.shipping,
		ShippingTax:           c.shippingTax,
		AdditionalShipping:    c.additionalShipping,
		AdditionalShippingTax: c.additionalShippingTax,
		ShippingMethod:        c.shippingMethod,
		Signature:             c.signature,
	}
}

// FromState rebuilds a cart from a snapshot, assigning every field as
// stored. Unlike the setters, no tax is recomputed and no zero-clamping
// applies; the snapshot is trusted byte for byte.
func FromState(s State) *Cart {
	cart := NewCart()
	for _, item := range s.Items {
		cart.put(item.UniqueID(), item)
	}
	cart.coupons = s.Coupons
	cart.shipping = s.Shipping
	cart.shippingTax = s.ShippingTax
	cart.additionalShipping = s.AdditionalShipping
	cart.additionalShippingTax = s.AdditionalShippingTax
	cart.shippingMethod = s.ShippingMethod
	cart.signature = s.Signature
	return cart
}

// put stores an item under its unique id, keeping insertion order for new
// entries.
func (c *Cart) put(uid string, item *LineItem) {
	if _, ok := c.content[uid]; !ok {
		c.order = append(c.order, uid)
	}
	c.content[uid] = item
}
