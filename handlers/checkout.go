package handlers

import (
	"errors"
	"net/http"

	"cafe-pos/checkout"
	"cafe-pos/currency"
	"cafe-pos/middleware"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler triggers the checkout coordinator for the caller's
// session. The coordinator manages its own locking, so this handler
// must not wrap the call in the session lock.
type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// Checkout persists the session's cart as a completed order.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sess := middleware.GetSession(c)

	order, err := sess.Checkout.Checkout(c.Request.Context(), sess.Cart)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Đơn hàng trống"})
		return
	case errors.Is(err, checkout.ErrInFlight):
		// Duplicate tap while the first submission is pending; dropped.
		c.JSON(http.StatusConflict, gin.H{"error": "Đơn hàng đang được xử lý"})
		return
	case err != nil:
		c.JSON(http.StatusBadGateway, gin.H{"error": "Thanh toán thất bại, vui lòng thử lại"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Thanh toán thành công",
		"order_number":    order.OrderNumber,
		"total":           order.TotalAmount,
		"total_formatted": currency.FormatVND(order.TotalAmount),
		"order":           order,
	})
}
