package domain

// Cart mirrors the remote cart as of the last read. It is never mutated
// locally; every change goes through the commerce API and the returned cart
// replaces the previous value.
type Cart struct {
	ID          string
	CheckoutURL string
	Subtotal    Money
	Lines       []CartLine
}

type CartLine struct {
	ID            string
	Quantity      int
	MerchandiseID string
	Title         string
	Handle        string
	Image         *Image
	Price         Money
}

func (l CartLine) Total() Money { return l.Price.Times(l.Quantity) }

func (c *Cart) TotalQuantity() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) Line(id string) (CartLine, bool) {
	if c == nil {
		return CartLine{}, false
	}
	for _, l := range c.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool { return c == nil || len(c.Lines) == 0 }

// LineInput adds merchandise to a cart.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}

// LineUpdate sets the quantity of an existing line.
type LineUpdate struct {
	ID       string
	Quantity int
}
