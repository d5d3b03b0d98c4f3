package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"transfer/internal/domain"
)

// Gateway is the interface for the external card payment gateway. The core
// only decides that a redirect is required; the handshake itself is an
// external collaborator.
type Gateway interface {
	// CreateRedirect returns a redirect handle for the given amount and
	// idempotent order reference.
	CreateRedirect(ctx context.Context, amount float64, orderRef string) (string, error)
}

// MockGateway is a mock Gateway for local use and tests.
type MockGateway struct{}

// NewMockGateway creates a new mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// CreateRedirect returns a deterministic fake redirect handle.
func (g *MockGateway) CreateRedirect(ctx context.Context, amount float64, orderRef string) (string, error) {
	return fmt.Sprintf("https://gateway.example/pay/%s?token=%s", orderRef, uuid.New().String()), nil
}

// PaymentMethodResolver decides which payment methods are offered and what
// each method effectively costs. Settings are passed in explicitly; the
// resolver holds no mutable configuration.
type PaymentMethodResolver struct {
	fare    *FareCalculator
	gateway Gateway
}

// NewPaymentMethodResolver creates a new PaymentMethodResolver.
func NewPaymentMethodResolver(fare *FareCalculator, gateway Gateway) *PaymentMethodResolver {
	return &PaymentMethodResolver{fare: fare, gateway: gateway}
}

// AvailableMethods returns the enabled payment methods in stable display
// order: cash, bank transfer, card.
func (r *PaymentMethodResolver) AvailableMethods(settings domain.PaymentSettings) []domain.PaymentMethodOption {
	var options []domain.PaymentMethodOption

	if settings.CashEnabled {
		options = append(options, domain.PaymentMethodOption{
			Method:      domain.PaymentMethodCash,
			DisplayName: "Cash",
		})
	}

	if settings.BankTransferEnabled {
		options = append(options, domain.PaymentMethodOption{
			Method:          domain.PaymentMethodBankTransfer,
			DisplayName:     "Bank Transfer",
			DiscountPercent: settings.BankTransferDiscountPct,
		})
	}

	if settings.CardEnabled {
		options = append(options, domain.PaymentMethodOption{
			Method:           domain.PaymentMethodCard,
			DisplayName:      "Credit Card",
			RequiresRedirect: true,
		})
	}

	return options
}

// PriceFor returns the effective price for the given method. Only bank
// transfer carries a discount; cash and card always pay the full total.
func (r *PaymentMethodResolver) PriceFor(method domain.PaymentMethod, settings domain.PaymentSettings, baseTotal float64) (float64, error) {
	option, err := r.option(method, settings)
	if err != nil {
		return 0, err
	}

	return r.fare.ComputeTotal(baseTotal, 0, option.DiscountPercent)
}

// CheckoutIntent carries what the caller needs to collect payment for a
// confirmed reservation.
type CheckoutIntent struct {
	Method           domain.PaymentMethod
	Amount           float64
	OrderReference   string // The reservation's pending id, for reconciliation
	RequiresRedirect bool
	RedirectURL      string // Set for card payments only
	BankName         string // Set for bank transfer only
	BankAccount      string
	BankHolder       string
}

// BeginCheckout resolves the chosen method into a checkout intent. For card
// payments it obtains a redirect handle from the gateway, carrying the final
// amount and the reservation id as idempotent order reference.
func (r *PaymentMethodResolver) BeginCheckout(ctx context.Context, method domain.PaymentMethod, settings domain.PaymentSettings, amount float64, orderRef string) (*CheckoutIntent, error) {
	option, err := r.option(method, settings)
	if err != nil {
		return nil, err
	}

	intent := &CheckoutIntent{
		Method:           option.Method,
		Amount:           amount,
		OrderReference:   orderRef,
		RequiresRedirect: option.RequiresRedirect,
	}

	switch option.Method {
	case domain.PaymentMethodBankTransfer:
		intent.BankName = settings.BankName
		intent.BankAccount = settings.BankAccountNumber
		intent.BankHolder = settings.BankAccountHolder
	case domain.PaymentMethodCard:
		redirect, err := r.gateway.CreateRedirect(ctx, amount, orderRef)
		if err != nil {
			return nil, err
		}
		intent.RedirectURL = redirect
	}

	return intent, nil
}

// option finds the offered option for a method, or fails when the method is
// unknown, disabled, or nothing is enabled at all.
func (r *PaymentMethodResolver) option(method domain.PaymentMethod, settings domain.PaymentSettings) (domain.PaymentMethodOption, error) {
	if _, ok := domain.ParsePaymentMethod(string(method)); !ok {
		return domain.PaymentMethodOption{}, ErrInvalidPaymentMethod
	}

	options := r.AvailableMethods(settings)
	if len(options) == 0 {
		return domain.PaymentMethodOption{}, ErrNoPaymentMethodAvailable
	}

	for _, o := range options {
		if o.Method == method {
			return o, nil
		}
	}

	return domain.PaymentMethodOption{}, ErrPaymentMethodDisabled
}
