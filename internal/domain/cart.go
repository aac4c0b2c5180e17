package domain

// CartItem is one line of the cart. Price is captured in cents at the time the
// product is added and is never re-derived from the catalog afterwards.
type CartItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	Image      string `json:"image"`
}

// Cart is an ordered list of items. Product IDs are unique; adding an existing
// product increments its quantity instead of appending a duplicate line.
type Cart struct {
	Items []CartItem `json:"items"`
}

// IndexOf returns the position of the item with the given product ID, or -1.
func (c Cart) IndexOf(productID string) int {
	for i, item := range c.Items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// ItemCount is the sum of all quantities, used for the cart badge.
func (c Cart) ItemCount() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
