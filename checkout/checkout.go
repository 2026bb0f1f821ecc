// Package checkout drives the commit sequence that turns an in-progress
// cart into a persisted order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"cafe-pos/cart"
	"cafe-pos/currency"
	"cafe-pos/models"
	"cafe-pos/notify"
)

var (
	// ErrEmptyCart rejects a checkout with no line items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInFlight is returned when a submission is already in progress;
	// the duplicate call is dropped, never queued.
	ErrInFlight = errors.New("checkout already in progress")
)

// OrderStore persists completed orders.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithResetDelay keeps the completed order on screen for d before the
// cart is cleared. Zero resets immediately after a successful submit.
func WithResetDelay(d time.Duration) Option {
	return func(co *Coordinator) { co.resetDelay = d }
}

// WithCartGuard locks mu around every cart access the coordinator
// makes. Callers that serialize cart access behind a mutex must pass it
// here; the guard is deliberately not held across the store call, so a
// concurrent second checkout reaches the latch and is dropped instead
// of queueing.
func WithCartGuard(mu sync.Locker) Option {
	return func(co *Coordinator) { co.guard = mu }
}

// Coordinator owns the Idle → Submitting → Idle checkout sequence for
// one cart session. The single-slot latch is the only defense against
// double submission; nothing else may call the store's CreateOrder for
// cart contents.
type Coordinator struct {
	store      OrderStore
	notifier   *notify.Notifier
	resetDelay time.Duration
	guard      sync.Locker
	submitting atomic.Bool
}

func NewCoordinator(store OrderStore, notifier *notify.Notifier, opts ...Option) *Coordinator {
	co := &Coordinator{store: store, notifier: notifier}
	for _, opt := range opts {
		opt(co)
	}
	return co
}

// Submitting reports whether a checkout is currently in flight.
func (co *Coordinator) Submitting() bool {
	return co.submitting.Load()
}

// Checkout validates and persists the cart. On success the cart carries
// the server-assigned order number until it is reset after the display
// delay. On failure the cart is left exactly as it was so the operator
// can retry; the latch always releases.
func (co *Coordinator) Checkout(ctx context.Context, c *cart.Cart) (*models.Order, error) {
	var (
		order *models.Order
		err   error
	)
	co.locked(func() {
		if c.IsEmpty() {
			err = ErrEmptyCart
			return
		}
		order, err = buildOrder(c)
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			co.notifier.Warning("Đơn hàng trống", "Vui lòng chọn món trước khi thanh toán")
		} else {
			co.notifier.Error("Thanh toán thất bại", err.Error())
		}
		return nil, err
	}

	if !co.submitting.CompareAndSwap(false, true) {
		return nil, ErrInFlight
	}
	defer co.submitting.Store(false)

	if err := co.store.CreateOrder(ctx, order); err != nil {
		co.notifier.Error("Thanh toán thất bại", "Không thể lưu đơn hàng, vui lòng thử lại")
		return nil, err
	}

	co.locked(func() {
		c.OrderNumber = order.OrderNumber
	})
	co.notifier.Success(
		"Thanh toán thành công",
		fmt.Sprintf("Đơn %s — tổng cộng %s", order.OrderNumber, currency.FormatVND(order.TotalAmount)),
	)
	co.scheduleReset(c)
	return order, nil
}

// orderTypes maps the storefront vocabulary to the storage vocabulary.
var orderTypes = map[cart.OrderType]models.OrderType{
	cart.DineIn:   models.OrderDineIn,
	cart.Takeaway: models.OrderTakeaway,
	cart.Delivery: models.OrderDelivery,
}

// buildOrder snapshots the cart into the persisted order shape. Every
// sale through this storefront is paid in cash at the counter.
func buildOrder(c *cart.Cart) (*models.Order, error) {
	orderType, ok := orderTypes[c.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", cart.ErrUnknownOrderType, c.Type)
	}
	order := &models.Order{
		OrderType:      orderType,
		Status:         models.StatusPending,
		Subtotal:       c.Subtotal,
		DiscountAmount: c.Discount,
		TotalAmount:    c.Total,
		PaymentStatus:  models.PaymentPaid,
		PaymentMethod:  models.PaymentCash,
	}
	for _, line := range c.Lines {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:          line.MenuItemID,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			TotalPrice:          line.TotalPrice,
			SpecialInstructions: line.SpecialInstructions,
		})
	}
	return order, nil
}

func (co *Coordinator) scheduleReset(c *cart.Cart) {
	if co.resetDelay <= 0 {
		co.locked(c.Reset)
		return
	}
	time.AfterFunc(co.resetDelay, func() {
		co.locked(c.Reset)
	})
}

func (co *Coordinator) locked(fn func()) {
	if co.guard != nil {
		co.guard.Lock()
		defer co.guard.Unlock()
	}
	fn()
}
