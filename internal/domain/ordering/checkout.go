package ordering

import (
	"time"

	"github.com/towntreasure/backend/internal/domain/shared"
	"github.com/towntreasure/backend/internal/domain/shopping"
)

// Checkout validation errors. Each blocks the offending transition and
// is surfaced to the buyer; none is fatal to the session.
var (
	ErrEmptyCart               = shared.NewDomainError("EMPTY_CART", "Cart is empty")
	ErrMissingDeliveryLocation = shared.NewDomainError("MISSING_DELIVERY_LOCATION", "Please select a delivery location")
	ErrMissingPaymentMethod    = shared.NewDomainError("MISSING_PAYMENT_METHOD", "Please select a payment method")
)

// CheckoutState represents the checkout dialog's state machine
type CheckoutState string

const (
	CheckoutStateIdle      CheckoutState = "idle"
	CheckoutStateReviewing CheckoutState = "reviewing"
	CheckoutStateConfirmed CheckoutState = "confirmed"
)

// Checkout drives a buyer's checkout flow:
//
//	Idle -> Reviewing  (proceed to checkout; rejected for an empty cart)
//	Reviewing -> Confirmed  (place order; rejected without delivery/payment)
//	Confirmed -> Idle  (automatic once the order is built)
//
// Validation failures leave the machine in its current state.
type Checkout struct {
	state CheckoutState
	ids   *OrderIDGenerator
}

// NewCheckout creates a checkout flow in the Idle state
func NewCheckout(ids *OrderIDGenerator) *Checkout {
	return &Checkout{
		state: CheckoutStateIdle,
		ids:   ids,
	}
}

// State returns the current state
func (c *Checkout) State() CheckoutState {
	return c.state
}

// Begin transitions Idle -> Reviewing. It fails with ErrEmptyCart when
// the cart holds no items, leaving the machine Idle.
func (c *Checkout) Begin(cart *shopping.Cart) error {
	if c.state != CheckoutStateIdle {
		return shared.ErrInvalidState
	}
	if cart.IsEmpty() {
		return ErrEmptyCart
	}
	c.state = CheckoutStateReviewing
	return nil
}

// Confirm transitions Reviewing -> Confirmed and builds the order. Each
// precondition fails fast with its named error and keeps the machine in
// Reviewing so the dialog stays open. On success the cart items are
// snapshotted, totals computed, an order id assigned and the machine
// returns to Idle. The caller is responsible for persisting the order
// and clearing the cart.
func (c *Checkout) Confirm(cart *shopping.Cart, location DeliveryLocation, payment PaymentMethod, notes string) (*Order, error) {
	if c.state != CheckoutStateReviewing {
		return nil, shared.ErrInvalidState
	}
	if location.IsZero() {
		return nil, ErrMissingDeliveryLocation
	}
	if !payment.IsValid() {
		return nil, ErrMissingPaymentMethod
	}

	items := cart.Snapshot()
	totals := shopping.ComputeTotals(items)

	order := &Order{
		OrderID:          c.ids.Next(),
		UserID:           cart.UserID,
		Items:            items,
		Subtotal:         totals.Subtotal,
		Shipping:         totals.Shipping,
		Tax:              totals.Tax,
		Total:            totals.Total,
		DeliveryLocation: location,
		PaymentMethod:    payment,
		Notes:            notes,
		OrderDate:        time.Now(),
		Status:           OrderStatusPlaced,
	}

	c.state = CheckoutStateIdle
	return order, nil
}

// Abort returns the machine to Idle from Reviewing, e.g. when the buyer
// closes the checkout dialog without placing the order.
func (c *Checkout) Abort() {
	if c.state == CheckoutStateReviewing {
		c.state = CheckoutStateIdle
	}
}
