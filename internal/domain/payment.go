package domain

// PaymentMethod represents the payment method chosen for a reservation.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCard         PaymentMethod = "CARD"
)

// ParsePaymentMethod validates a payment method string.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch PaymentMethod(s) {
	case PaymentMethodCash, PaymentMethodBankTransfer, PaymentMethodCard:
		return PaymentMethod(s), true
	default:
		return "", false
	}
}

// PaymentSettings holds the operator-configured payment options. It is read
// from persistence per checkout; there is no process-global settings state.
type PaymentSettings struct {
	CashEnabled             bool
	BankTransferEnabled     bool
	CardEnabled             bool
	BankTransferDiscountPct float64 // Discount for bank transfer; cash and card are always 0
	BankName                string  // Display data for the bank-transfer instructions
	BankAccountNumber       string
	BankAccountHolder       string
}

// PaymentMethodOption is a payment method as offered to the customer, with
// the discount already resolved from settings.
type PaymentMethodOption struct {
	Method           PaymentMethod
	DisplayName      string
	DiscountPercent  float64
	RequiresRedirect bool // Card payments go through an external gateway
}
