package cart

// Line is one product with a quantity and price snapshot inside a cart
type Line struct {
	ProductID string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"price"`
	Quantity  int     `json:"qty"`
	PhotoRef  *string `json:"photo,omitempty"`
}

// Cart is the client-held collection of lines prior to order
// submission. Lines are unique by product id and keep insertion order
// for display. One browser session owns one cart; there is no locking.
type Cart struct {
	Lines []Line `json:"lines"`
}

// New returns an empty cart
func New() *Cart {
	return &Cart{Lines: []Line{}}
}

// Add merges a line into the cart. If the product is already present
// the incoming quantity is added to the existing one, not replaced.
func (c *Cart) Add(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1.
// No-op when the product is absent.
func (c *Cart) UpdateQuantity(productID string, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes a line. No-op when the product is absent.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart. Called exactly once, immediately after an
// order is successfully created.
func (c *Cart) Clear() {
	c.Lines = []Line{}
}

// Total is recomputed on every read, never cached
func (c *Cart) Total() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

// Count is the summed quantity across all lines
func (c *Cart) Count() int {
	var count int
	for _, l := range c.Lines {
		count += l.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
