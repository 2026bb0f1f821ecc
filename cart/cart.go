package cart

import (
	"errors"
	"time"

	"cafe-pos/models"

	"github.com/google/uuid"
)

// OrderType is the storefront's vocabulary for how an order is fulfilled.
// It is translated to the storage vocabulary at checkout.
type OrderType string

const (
	DineIn   OrderType = "dine-in"
	Takeaway OrderType = "takeaway"
	Delivery OrderType = "delivery"
)

var (
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrNegativeDiscount = errors.New("discount must not be negative")
	ErrUnknownOrderType = errors.New("unknown order type")
	ErrLineNotFound     = errors.New("line item not found")
)

// LineItem is one row of the in-progress order. UnitPrice is captured
// when the item is first added, so later menu price edits do not change
// an open cart.
type LineItem struct {
	ID                  string    `json:"id"`
	MenuItemID          uint      `json:"menu_item_id"`
	Name                string    `json:"name"`
	Quantity            int       `json:"quantity"`
	UnitPrice           float64   `json:"unit_price"`
	TotalPrice          float64   `json:"total_price"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// Cart is the in-progress, not-yet-persisted order. Lines is the single
// source of truth; the per-menu-item quantity view is derived from it.
// Mutation methods are the only legal write path, and every one of them
// recomputes Subtotal and Total before returning, so the invariants
//
//	Subtotal == Σ line.TotalPrice
//	Total    == Subtotal − Discount
//
// hold whenever a caller can observe the cart.
type Cart struct {
	// OrderNumber stays empty until a checkout succeeds, then carries the
	// server-assigned number until the next Reset.
	OrderNumber string     `json:"order_number"`
	Type        OrderType  `json:"order_type"`
	Lines       []LineItem `json:"items"`
	Discount    float64    `json:"discount"`
	Subtotal    float64    `json:"subtotal"`
	Total       float64    `json:"total"`
}

func New() *Cart {
	return &Cart{Type: DineIn, Lines: []LineItem{}}
}

// SetQuantity sets the quantity for a menu item. Quantity zero removes
// the item's line; a positive quantity updates the existing line in
// place (line identity preserved) or appends a new one.
func (c *Cart) SetQuantity(item models.MenuItem, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	defer c.recompute()

	for i := range c.Lines {
		if c.Lines[i].MenuItemID != item.ID {
			continue
		}
		if quantity == 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
		c.Lines[i].Quantity = quantity
		c.Lines[i].TotalPrice = c.Lines[i].UnitPrice * float64(quantity)
		return nil
	}
	if quantity == 0 {
		return nil
	}
	c.Lines = append(c.Lines, LineItem{
		ID:         uuid.NewString(),
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   quantity,
		UnitPrice:  item.Price,
		TotalPrice: item.Price * float64(quantity),
		CreatedAt:  time.Now(),
	})
	return nil
}

// SetLineQuantity adjusts an existing cart row by its line id. Quantity
// zero removes the line.
func (c *Cart) SetLineQuantity(lineID string, quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ID != lineID {
			continue
		}
		defer c.recompute()
		if quantity == 0 {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
		c.Lines[i].Quantity = quantity
		c.Lines[i].TotalPrice = c.Lines[i].UnitPrice * float64(quantity)
		return nil
	}
	return ErrLineNotFound
}

// RemoveLine removes a cart row unconditionally.
func (c *Cart) RemoveLine(lineID string) error {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.recompute()
			return nil
		}
	}
	return ErrLineNotFound
}

// SetLineInstructions attaches free-text kitchen notes to a line.
func (c *Cart) SetLineInstructions(lineID, instructions string) error {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines[i].SpecialInstructions = instructions
			return nil
		}
	}
	return ErrLineNotFound
}

func (c *Cart) SetOrderType(t OrderType) error {
	switch t {
	case DineIn, Takeaway, Delivery:
		c.Type = t
		return nil
	}
	return ErrUnknownOrderType
}

func (c *Cart) SetDiscount(amount float64) error {
	if amount < 0 {
		return ErrNegativeDiscount
	}
	c.Discount = amount
	c.recompute()
	return nil
}

// Reset replaces the cart contents with a fresh empty order. Called
// exactly once per successful checkout.
func (c *Cart) Reset() {
	*c = *New()
}

// Quantity returns the quantity of a menu item currently in the cart,
// zero if absent.
func (c *Cart) Quantity(menuItemID uint) int {
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			return c.Lines[i].Quantity
		}
	}
	return 0
}

// QuantityIndex returns the menu-item-id → quantity view of the line
// list. It is recomputed on every call and never stored, so it cannot
// diverge from the lines.
func (c *Cart) QuantityIndex() map[uint]int {
	index := make(map[uint]int, len(c.Lines))
	for i := range c.Lines {
		index[c.Lines[i].MenuItemID] = c.Lines[i].Quantity
	}
	return index
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) recompute() {
	var subtotal float64
	for i := range c.Lines {
		subtotal += c.Lines[i].TotalPrice
	}
	c.Subtotal = subtotal
	c.Total = subtotal - c.Discount
}
