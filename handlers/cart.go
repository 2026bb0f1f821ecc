package handlers

import (
	"errors"
	"net/http"

	"cafe-pos/cart"
	"cafe-pos/currency"
	"cafe-pos/middleware"
	"cafe-pos/session"
	"cafe-pos/store"

	"github.com/gin-gonic/gin"
)

// CartHandler exposes the cart state machine over HTTP. Every mutation
// runs inside the session lock, mirroring the run-to-completion event
// handling of the storefront UI.
type CartHandler struct {
	store *store.Store
}

func NewCartHandler(s *store.Store) *CartHandler {
	return &CartHandler{store: s}
}

type setQuantityRequest struct {
	MenuItemID          uint   `json:"menu_item_id" binding:"required"`
	Quantity            *int   `json:"quantity" binding:"required"`
	SpecialInstructions string `json:"special_instructions"`
}

type setLineQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type setOrderTypeRequest struct {
	OrderType cart.OrderType `json:"order_type" binding:"required"`
}

type setDiscountRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// GetCart returns the current cart view: line items, the derived
// per-item quantity index, totals and the submitting flag.
func (h *CartHandler) GetCart(c *gin.Context) {
	sess := middleware.GetSession(c)
	var view gin.H
	sess.Do(func() {
		view = cartView(sess)
	})
	c.JSON(http.StatusOK, view)
}

// SetItemQuantity sets the cart quantity for a menu item. Quantity zero
// removes the item's line.
func (h *CartHandler) SetItemQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.store.MenuItemByID(c.Request.Context(), req.MenuItemID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Menu item not found"})
		return
	}
	if !item.IsAvailable && *req.Quantity > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Menu item '" + item.Name + "' is not available"})
		return
	}

	var view gin.H
	sess.Do(func() {
		if err = sess.Cart.SetQuantity(*item, *req.Quantity); err != nil {
			return
		}
		if req.SpecialInstructions != "" {
			for _, line := range sess.Cart.Lines {
				if line.MenuItemID == item.ID {
					err = sess.Cart.SetLineInstructions(line.ID, req.SpecialInstructions)
					break
				}
			}
		}
		view = cartView(sess)
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetLineQuantity adjusts an existing cart row by line id.
func (h *CartHandler) SetLineQuantity(c *gin.Context) {
	sess := middleware.GetSession(c)
	lineID := c.Param("lineId")

	var req setLineQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	var view gin.H
	sess.Do(func() {
		if err = sess.Cart.SetLineQuantity(lineID, *req.Quantity); err == nil {
			view = cartView(sess)
		}
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, cart.ErrLineNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// RemoveLine deletes a cart row.
func (h *CartHandler) RemoveLine(c *gin.Context) {
	sess := middleware.GetSession(c)
	lineID := c.Param("lineId")

	var err error
	var view gin.H
	sess.Do(func() {
		if err = sess.Cart.RemoveLine(lineID); err == nil {
			view = cartView(sess)
		}
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetOrderType switches between dine-in, takeaway and delivery.
func (h *CartHandler) SetOrderType(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req setOrderTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	var view gin.H
	sess.Do(func() {
		if err = sess.Cart.SetOrderType(req.OrderType); err == nil {
			view = cartView(sess)
		}
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// SetDiscount sets the order-level discount amount.
func (h *CartHandler) SetDiscount(c *gin.Context) {
	sess := middleware.GetSession(c)

	var req setDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	var view gin.H
	sess.Do(func() {
		if err = sess.Cart.SetDiscount(*req.Amount); err == nil {
			view = cartView(sess)
		}
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetNotifications drains the session's pending toasts.
func (h *CartHandler) GetNotifications(c *gin.Context) {
	sess := middleware.GetSession(c)
	toasts := sess.Notifier.Drain()
	c.JSON(http.StatusOK, gin.H{"notifications": toasts, "count": len(toasts)})
}

// cartView renders the cart for the client. Caller must hold the
// session lock.
func cartView(sess *session.Session) gin.H {
	c := sess.Cart
	return gin.H{
		"order_number":    c.OrderNumber,
		"order_type":      c.Type,
		"items":           c.Lines,
		"quantity_index":  c.QuantityIndex(),
		"discount":        c.Discount,
		"subtotal":        c.Subtotal,
		"total":           c.Total,
		"total_formatted": currency.FormatVND(c.Total),
		"submitting":      sess.Checkout.Submitting(),
	}
}
