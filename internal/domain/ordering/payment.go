package ordering

// PaymentMethod is an enumerated payment selection tag
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentPayPal     PaymentMethod = "paypal"
	PaymentApplePay   PaymentMethod = "apple_pay"
	PaymentGooglePay  PaymentMethod = "google_pay"
	PaymentCOD        PaymentMethod = "cod"
)

// IsValid checks membership in the fixed payment method set. No further
// validation is performed; real payment processing sits outside the core.
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCreditCard, PaymentDebitCard, PaymentPayPal, PaymentApplePay, PaymentGooglePay, PaymentCOD:
		return true
	}
	return false
}

// Label returns the human-readable name for the payment method
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCreditCard:
		return "Credit Card"
	case PaymentDebitCard:
		return "Debit Card"
	case PaymentPayPal:
		return "PayPal"
	case PaymentApplePay:
		return "Apple Pay"
	case PaymentGooglePay:
		return "Google Pay"
	case PaymentCOD:
		return "Cash on Delivery (COD)"
	}
	return string(m)
}

// PaymentMethods returns all valid payment methods in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		PaymentCreditCard,
		PaymentDebitCard,
		PaymentPayPal,
		PaymentApplePay,
		PaymentGooglePay,
		PaymentCOD,
	}
}
