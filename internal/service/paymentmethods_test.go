package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"transfer/internal/domain"
)

func allEnabledSettings() domain.PaymentSettings {
	return domain.PaymentSettings{
		CashEnabled:             true,
		BankTransferEnabled:     true,
		CardEnabled:             true,
		BankTransferDiscountPct: 5,
		BankName:                "Example Bank",
		BankAccountNumber:       "TR00 0000 0000 0000",
		BankAccountHolder:       "Transfer Co",
	}
}

func TestAvailableMethods_StableOrder(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	options := resolver.AvailableMethods(allEnabledSettings())
	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}

	expected := []domain.PaymentMethod{
		domain.PaymentMethodCash,
		domain.PaymentMethodBankTransfer,
		domain.PaymentMethodCard,
	}
	for i, method := range expected {
		if options[i].Method != method {
			t.Errorf("position %d: expected %s, got %s", i, method, options[i].Method)
		}
	}
}

func TestAvailableMethods_OnlyEnabledOffered(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	settings := allEnabledSettings()
	settings.CashEnabled = false
	settings.CardEnabled = false

	options := resolver.AvailableMethods(settings)
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}

	if options[0].Method != domain.PaymentMethodBankTransfer {
		t.Errorf("expected BANK_TRANSFER, got %s", options[0].Method)
	}

	if options[0].DiscountPercent != 5 {
		t.Errorf("expected discount 5, got %v", options[0].DiscountPercent)
	}
}

func TestPriceFor_BankTransferDiscounted(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	price, err := resolver.PriceFor(domain.PaymentMethodBankTransfer, allEnabledSettings(), 380)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if price != 361 {
		t.Errorf("expected discounted price 361, got %v", price)
	}
}

func TestPriceFor_CashAndCardPayFullTotal(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	for _, method := range []domain.PaymentMethod{domain.PaymentMethodCash, domain.PaymentMethodCard} {
		price, err := resolver.PriceFor(method, allEnabledSettings(), 380)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", method, err)
		}
		if price != 380 {
			t.Errorf("%s: expected full price 380, got %v", method, price)
		}
	}
}

func TestPriceFor_DisabledMethod_Rejected(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	settings := allEnabledSettings()
	settings.CardEnabled = false

	_, err := resolver.PriceFor(domain.PaymentMethodCard, settings, 380)
	if !errors.Is(err, ErrPaymentMethodDisabled) {
		t.Errorf("expected ErrPaymentMethodDisabled, got %v", err)
	}
}

func TestPriceFor_NothingEnabled_Rejected(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	_, err := resolver.PriceFor(domain.PaymentMethodCash, domain.PaymentSettings{}, 380)
	if !errors.Is(err, ErrNoPaymentMethodAvailable) {
		t.Errorf("expected ErrNoPaymentMethodAvailable, got %v", err)
	}
}

func TestPriceFor_UnknownMethod_Rejected(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	_, err := resolver.PriceFor(domain.PaymentMethod("CRYPTO"), allEnabledSettings(), 380)
	if !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Errorf("expected ErrInvalidPaymentMethod, got %v", err)
	}
}

func TestBeginCheckout_BankTransferCarriesBankDetails(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	intent, err := resolver.BeginCheckout(context.Background(), domain.PaymentMethodBankTransfer, allEnabledSettings(), 361, "res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if intent.BankName != "Example Bank" || intent.BankAccount == "" || intent.BankHolder == "" {
		t.Errorf("expected bank details on intent, got %+v", intent)
	}

	if intent.RequiresRedirect {
		t.Error("bank transfer must not require a redirect")
	}

	if intent.OrderReference != "res-1" {
		t.Errorf("expected order reference res-1, got %s", intent.OrderReference)
	}
}

func TestBeginCheckout_CardGetsRedirect(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	intent, err := resolver.BeginCheckout(context.Background(), domain.PaymentMethodCard, allEnabledSettings(), 380, "res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !intent.RequiresRedirect {
		t.Error("card payment must require a redirect")
	}

	if !strings.Contains(intent.RedirectURL, "res-1") {
		t.Errorf("expected redirect URL to reference the order, got %s", intent.RedirectURL)
	}
}

func TestBeginCheckout_CashIsImmediate(t *testing.T) {
	t.Parallel()

	resolver := NewPaymentMethodResolver(NewFareCalculator(), NewMockGateway())

	intent, err := resolver.BeginCheckout(context.Background(), domain.PaymentMethodCash, allEnabledSettings(), 380, "res-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if intent.RequiresRedirect || intent.RedirectURL != "" || intent.BankName != "" {
		t.Errorf("cash intent must carry no redirect or bank details, got %+v", intent)
	}

	if intent.Amount != 380 {
		t.Errorf("expected amount 380, got %v", intent.Amount)
	}
}
