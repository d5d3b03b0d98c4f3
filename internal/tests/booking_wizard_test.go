package tests

import (
	"context"
	"errors"
	"testing"

	"transfer/internal/domain"
	"transfer/internal/service"
)

// ──────────────────────────────────────────────
// BOOKING WIZARD
// ──────────────────────────────────────────────

type bookingFixture struct {
	drafts          *MockDraftStore
	reservationRepo *MockReservationRepository
	settingsRepo    *MockPaymentSettingsRepository
	booking         *service.BookingService
	tokens          *service.TokenService
}

func newBookingFixture() *bookingFixture {
	vehicleRepo := NewMockVehicleRepository()
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:              "veh-sedan",
		Name:            "Comfort Sedan",
		Type:            domain.VehicleTypeSedan,
		SeatCapacity:    4,
		BaggageCapacity: 3,
		PricePerKm:      12,
		Active:          true,
	})
	vehicleRepo.AddVehicle(&domain.Vehicle{
		ID:              "veh-van",
		Name:            "Family Van",
		Type:            domain.VehicleTypeVan,
		SeatCapacity:    8,
		BaggageCapacity: 10,
		PricePerKm:      20,
		Active:          true,
	})

	serviceRepo := NewMockServiceRepository()
	serviceRepo.AddService(&domain.Service{ID: "svc-child-seat", Name: "Child Seat", Price: 50, Category: "COMFORT", Active: true})
	serviceRepo.AddService(&domain.Service{ID: "svc-greet", Name: "Meet & Greet", Price: 30, Category: "ARRIVAL", Active: true})

	settingsRepo := NewMockPaymentSettingsRepository(domain.PaymentSettings{
		CashEnabled:             true,
		BankTransferEnabled:     true,
		CardEnabled:             true,
		BankTransferDiscountPct: 5,
		BankName:                "Example Bank",
		BankAccountNumber:       "TR00 0000 0000",
		BankAccountHolder:       "Transfer Co",
	})

	drafts := NewMockDraftStore()
	reservationRepo := NewMockReservationRepository()
	fare := service.NewFareCalculator()
	tokens := service.NewTokenService("test-secret")
	resolver := service.NewPaymentMethodResolver(fare, service.NewMockGateway())
	catalog := service.NewCatalogService(vehicleRepo, serviceRepo, nil)
	notifier := service.NewNotificationService()

	booking := service.NewBookingService(
		drafts, catalog, settingsRepo, reservationRepo, fare, resolver, tokens, notifier,
	)

	return &bookingFixture{
		drafts:          drafts,
		reservationRepo: reservationRepo,
		settingsRepo:    settingsRepo,
		booking:         booking,
		tokens:          tokens,
	}
}

func validRoute() service.RouteInput {
	return service.RouteInput{
		Direction:      "AIRPORT_TO_HOTEL",
		Origin:         "IST Airport",
		Destination:    "Hotel Marmara",
		Date:           "2026-09-15",
		Time:           "14:30",
		PassengerCount: 2,
		BaggageCount:   2,
		DistanceKm:     25,
	}
}

func validPersonalInfo() service.PersonalInfoInput {
	return service.PersonalInfoInput{
		FirstName: "Ada",
		LastName:  "Yilmaz",
		Email:     "ada@example.com",
		Phone:     "+90 555 123 45 67",
	}
}

// advanceToStep walks a fresh draft forward to the given step with valid inputs.
func (f *bookingFixture) advanceToStep(t *testing.T, target domain.BookingStep) *domain.ReservationDraft {
	t.Helper()
	ctx := context.Background()

	draft, err := f.booking.CreateDraft(ctx)
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	inputs := []service.StepInput{
		validRoute(),
		service.VehicleAndServicesInput{VehicleID: "veh-sedan", ServiceIDs: []string{"svc-child-seat", "svc-greet"}},
		validPersonalInfo(),
		service.PaymentInput{Method: "BANK_TRANSFER"},
	}

	for _, input := range inputs {
		if draft.Step >= target {
			break
		}
		draft, err = f.booking.Advance(ctx, draft.ID, input)
		if err != nil {
			t.Fatalf("Advance from step %s: %v", draft.Step, err)
		}
	}

	return draft
}

func TestWizard_NewDraftStartsAtRouteStep(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	draft, err := f.booking.CreateDraft(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Step != domain.StepRoute {
		t.Errorf("expected step ROUTE, got %s", draft.Step)
	}

	if draft.ID == "" {
		t.Error("expected a draft id")
	}
}

func TestWizard_FullWalkthrough_PricesPerScenario(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	draft := f.advanceToStep(t, domain.StepConfirmation)

	// pricePerKm=12 * 25km = 300, services 50+30 = 80, total 380,
	// bank transfer at 5% discount = 361.
	if draft.BasePrice != 300 {
		t.Errorf("expected base price 300, got %v", draft.BasePrice)
	}
	if draft.ServicesPrice != 80 {
		t.Errorf("expected services price 80, got %v", draft.ServicesPrice)
	}
	if draft.TotalPrice != 380 {
		t.Errorf("expected total price 380, got %v", draft.TotalPrice)
	}
	if draft.FinalPrice != 361 {
		t.Errorf("expected final price 361, got %v", draft.FinalPrice)
	}
	if draft.Step != domain.StepConfirmation {
		t.Errorf("expected step CONFIRMATION, got %s", draft.Step)
	}
}

func TestWizard_InputForWrongStep_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()

	draft, err := f.booking.CreateDraft(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Draft is at the route step; sending payment input must not advance it.
	_, err = f.booking.Advance(ctx, draft.ID, service.PaymentInput{Method: "CASH"})
	if !errors.Is(err, service.ErrStepMismatch) {
		t.Errorf("expected ErrStepMismatch, got %v", err)
	}

	stored, err := f.booking.GetDraft(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Step != domain.StepRoute {
		t.Errorf("expected step pointer unchanged at ROUTE, got %s", stored.Step)
	}
}

func TestWizard_InvalidRoute_NoPartialMerge(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()

	draft, err := f.booking.CreateDraft(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Valid origin but invalid date and distance. Nothing may stick.
	input := validRoute()
	input.Date = "15-09-2026"
	input.DistanceKm = -1

	_, err = f.booking.Advance(ctx, draft.ID, input)

	var verr *service.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if len(verr.Fields) != 2 {
		t.Errorf("expected 2 field errors, got %d: %+v", len(verr.Fields), verr.Fields)
	}

	stored, err := f.booking.GetDraft(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Origin != "" || stored.Step != domain.StepRoute {
		t.Errorf("expected untouched draft, got origin=%q step=%s", stored.Origin, stored.Step)
	}
}

func TestWizard_CapacityExceeded_StepPointerUnchanged(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()

	draft, err := f.booking.CreateDraft(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	route := validRoute()
	route.PassengerCount = 5
	draft, err = f.booking.Advance(ctx, draft.ID, route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Sedan seats 4, five passengers must be rejected.
	_, err = f.booking.Advance(ctx, draft.ID, service.VehicleAndServicesInput{VehicleID: "veh-sedan"})
	if !errors.Is(err, service.ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}

	stored, err := f.booking.GetDraft(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Step != domain.StepVehicleAndServices {
		t.Errorf("expected step pointer unchanged, got %s", stored.Step)
	}
	if stored.VehicleID != "" {
		t.Errorf("expected no vehicle merged, got %q", stored.VehicleID)
	}

	// The van fits and the wizard moves on.
	if _, err := f.booking.Advance(ctx, draft.ID, service.VehicleAndServicesInput{VehicleID: "veh-van"}); err != nil {
		t.Fatalf("expected van to be accepted: %v", err)
	}
}

func TestWizard_DuplicateServiceSelection_CountedOnce(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()

	draft, err := f.booking.CreateDraft(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft, err = f.booking.Advance(ctx, draft.ID, validRoute())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	draft, err = f.booking.Advance(ctx, draft.ID, service.VehicleAndServicesInput{
		VehicleID:  "veh-sedan",
		ServiceIDs: []string{"svc-child-seat", "svc-child-seat"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(draft.ServiceIDs) != 1 {
		t.Errorf("expected deduplicated selection, got %v", draft.ServiceIDs)
	}
	if draft.ServicesPrice != 50 {
		t.Errorf("expected services price 50, got %v", draft.ServicesPrice)
	}
}

func TestWizard_BackThenForward_Reprices(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()

	draft := f.advanceToStep(t, domain.StepPersonalInfo)

	// Step back to vehicle selection, then back to route.
	draft, err := f.booking.Back(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Step != domain.StepVehicleAndServices {
		t.Fatalf("expected VEHICLE_AND_SERVICES, got %s", draft.Step)
	}

	draft, err = f.booking.Back(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Stored values survive going back.
	if draft.VehicleID != "veh-sedan" || draft.Origin == "" {
		t.Errorf("expected preserved draft values, got %+v", draft)
	}

	// Re-advance with double the distance: the price must follow.
	route := validRoute()
	route.DistanceKm = 50
	draft, err = f.booking.Advance(ctx, draft.ID, route)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.BasePrice != 600 {
		t.Errorf("expected repriced base 600, got %v", draft.BasePrice)
	}
	if draft.TotalPrice != 680 {
		t.Errorf("expected repriced total 680, got %v", draft.TotalPrice)
	}
}

func TestWizard_BackFromFirstStep_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()

	draft, err := f.booking.CreateDraft(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.booking.Back(ctx, draft.ID); !errors.Is(err, service.ErrCannotGoBack) {
		t.Errorf("expected ErrCannotGoBack, got %v", err)
	}
}

func TestWizard_PaymentMethods_QuotesEffectivePrices(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	draft := f.advanceToStep(t, domain.StepPayment)

	quotes, err := f.booking.PaymentMethods(context.Background(), draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}

	for _, q := range quotes {
		switch q.Option.Method {
		case domain.PaymentMethodBankTransfer:
			if q.FinalPrice != 361 {
				t.Errorf("bank transfer: expected 361, got %v", q.FinalPrice)
			}
		default:
			if q.FinalPrice != 380 {
				t.Errorf("%s: expected 380, got %v", q.Option.Method, q.FinalPrice)
			}
		}
	}
}

func TestWizard_Confirm_FreezesReservationAndIssuesToken(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	ctx := context.Background()
	draft := f.advanceToStep(t, domain.StepConfirmation)

	result, err := f.booking.Confirm(ctx, draft.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reservation := result.Reservation
	if reservation.Status != domain.ReservationStatusPending {
		t.Errorf("expected PENDING, got %s", reservation.Status)
	}
	if reservation.FinalPrice != 361 {
		t.Errorf("expected final price 361, got %v", reservation.FinalPrice)
	}
	if reservation.VerificationToken == "" {
		t.Fatal("expected a verification token")
	}

	// The token must resolve back to the reservation.
	rid, err := f.tokens.Verify(reservation.VerificationToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rid != reservation.ID {
		t.Errorf("token bound to %s, expected %s", rid, reservation.ID)
	}

	// Reservation is persisted and the draft session is gone.
	if f.reservationRepo.GetReservation(reservation.ID) == nil {
		t.Error("expected reservation persisted")
	}
	if _, err := f.booking.GetDraft(ctx, draft.ID); !errors.Is(err, service.ErrDraftNotFound) {
		t.Errorf("expected draft discarded, got %v", err)
	}

	// Bank transfer checkout carries the transfer instructions.
	if result.Checkout.BankName == "" {
		t.Error("expected bank details on checkout intent")
	}
}

func TestWizard_ConfirmBeforeFinalStep_Rejected(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	draft := f.advanceToStep(t, domain.StepPayment)

	_, err := f.booking.Confirm(context.Background(), draft.ID)
	if !errors.Is(err, service.ErrNotConfirmable) {
		t.Errorf("expected ErrNotConfirmable, got %v", err)
	}
}

func TestWizard_Confirm_MethodDisabledMeanwhile_Blocked(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()
	draft := f.advanceToStep(t, domain.StepConfirmation)

	// Operator disables bank transfer between payment step and confirm.
	f.settingsRepo.SetSettings(domain.PaymentSettings{
		CashEnabled: true,
		CardEnabled: true,
	})

	_, err := f.booking.Confirm(context.Background(), draft.ID)
	if !errors.Is(err, service.ErrPaymentMethodDisabled) {
		t.Errorf("expected ErrPaymentMethodDisabled, got %v", err)
	}

	if f.reservationRepo.CreateCallCount != 0 {
		t.Error("expected no reservation created")
	}
}

func TestWizard_ExpiredDraft_NotFound(t *testing.T) {
	t.Parallel()

	f := newBookingFixture()

	_, err := f.booking.GetDraft(context.Background(), "gone-draft")
	if !errors.Is(err, service.ErrDraftNotFound) {
		t.Errorf("expected ErrDraftNotFound, got %v", err)
	}
}
