package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"transfer/internal/domain"
	"transfer/internal/redis"
	"transfer/internal/repository"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]*$`)
)

// StepInput is implemented by the per-step input types accepted by Advance.
type StepInput interface {
	step() domain.BookingStep
}

// RouteInput is the input for the route step. Distance is resolved by an
// external routing collaborator before the step is submitted.
type RouteInput struct {
	Direction      string
	Origin         string
	Destination    string
	Date           string // YYYY-MM-DD
	Time           string // HH:MM
	PassengerCount int
	BaggageCount   int
	DistanceKm     float64
}

func (RouteInput) step() domain.BookingStep { return domain.StepRoute }

// VehicleAndServicesInput is the input for the vehicle selection step.
type VehicleAndServicesInput struct {
	VehicleID  string
	ServiceIDs []string
}

func (VehicleAndServicesInput) step() domain.BookingStep { return domain.StepVehicleAndServices }

// PersonalInfoInput is the input for the personal info step.
type PersonalInfoInput struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	FlightNumber    string
	SpecialRequests string
}

func (PersonalInfoInput) step() domain.BookingStep { return domain.StepPersonalInfo }

// PaymentInput is the input for the payment step.
type PaymentInput struct {
	Method string
}

func (PaymentInput) step() domain.BookingStep { return domain.StepPayment }

// BookingService owns the draft-to-confirmed booking lifecycle across the
// five wizard steps. Each advance validates the active step's input, merges
// it into the draft only on success, and then moves the step pointer. Drafts
// live in the session store; one draft per booking session, operations on a
// draft are not internally reentrant-safe.
type BookingService struct {
	drafts          redis.DraftStoreInterface
	catalog         *CatalogService
	settingsRepo    repository.PaymentSettingsRepository
	reservationRepo repository.ReservationRepository
	fare            *FareCalculator
	resolver        *PaymentMethodResolver
	tokens          *TokenService
	notifier        *NotificationService
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	drafts redis.DraftStoreInterface,
	catalog *CatalogService,
	settingsRepo repository.PaymentSettingsRepository,
	reservationRepo repository.ReservationRepository,
	fare *FareCalculator,
	resolver *PaymentMethodResolver,
	tokens *TokenService,
	notifier *NotificationService,
) *BookingService {
	return &BookingService{
		drafts:          drafts,
		catalog:         catalog,
		settingsRepo:    settingsRepo,
		reservationRepo: reservationRepo,
		fare:            fare,
		resolver:        resolver,
		tokens:          tokens,
		notifier:        notifier,
	}
}

// CreateDraft starts a new booking session at the route step.
func (s *BookingService) CreateDraft(ctx context.Context) (*domain.ReservationDraft, error) {
	draft := &domain.ReservationDraft{
		ID:        uuid.New().String(),
		Step:      domain.StepRoute,
		CreatedAt: time.Now(),
	}

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// GetDraft retrieves the current state of a booking session.
func (s *BookingService) GetDraft(ctx context.Context, draftID string) (*domain.ReservationDraft, error) {
	return s.loadDraft(ctx, draftID)
}

// Advance validates the input against the draft's active step, merges it and
// moves the step pointer forward. On any failure the stored draft is left
// untouched: there is no partial merge.
func (s *BookingService) Advance(ctx context.Context, draftID string, input StepInput) (*domain.ReservationDraft, error) {
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if input == nil || input.step() != draft.Step {
		return nil, ErrStepMismatch
	}

	// Work on a copy so a validation failure never leaks into the session.
	updated := *draft
	updated.ServiceIDs = append([]string(nil), draft.ServiceIDs...)

	switch in := input.(type) {
	case RouteInput:
		err = s.applyRoute(ctx, &updated, in)
	case VehicleAndServicesInput:
		err = s.applyVehicleAndServices(ctx, &updated, in)
	case PersonalInfoInput:
		err = s.applyPersonalInfo(&updated, in)
	case PaymentInput:
		err = s.applyPayment(ctx, &updated, in)
	default:
		err = ErrStepMismatch
	}
	if err != nil {
		return nil, err
	}

	updated.Step++

	if err := s.drafts.Save(ctx, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// Back re-activates the previous step without discarding any stored values,
// so the step can be re-rendered pre-filled. Re-advancing it re-validates and
// reprices.
func (s *BookingService) Back(ctx context.Context, draftID string) (*domain.ReservationDraft, error) {
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Step <= domain.StepRoute {
		return nil, ErrCannotGoBack
	}

	draft.Step--

	if err := s.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// MethodQuote is a payment method option with its effective price for the
// draft's current total.
type MethodQuote struct {
	Option     domain.PaymentMethodOption
	FinalPrice float64
}

// PaymentMethods returns the currently offered payment methods with the
// effective price of each for the given draft.
func (s *BookingService) PaymentMethods(ctx context.Context, draftID string) ([]MethodQuote, error) {
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	options := s.resolver.AvailableMethods(*settings)
	if len(options) == 0 {
		return nil, ErrNoPaymentMethodAvailable
	}

	quotes := make([]MethodQuote, 0, len(options))
	for _, option := range options {
		price, err := s.fare.ComputeTotal(draft.TotalPrice, 0, option.DiscountPercent)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, MethodQuote{Option: option, FinalPrice: price})
	}

	return quotes, nil
}

// ConfirmResult is the outcome of freezing a draft.
type ConfirmResult struct {
	Reservation *domain.Reservation
	Checkout    *CheckoutIntent
}

// Confirm freezes the draft into an immutable pending reservation, issues its
// verification token and begins checkout. The draft session is discarded; the
// reservation belongs to dispatch from here on.
func (s *BookingService) Confirm(ctx context.Context, draftID string) (*ConfirmResult, error) {
	draft, err := s.loadDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft.Step != domain.StepConfirmation {
		return nil, ErrNotConfirmable
	}

	// Settings may have changed since the payment step; re-resolve so a
	// method disabled in the meantime blocks confirmation instead of
	// producing a stale price.
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	finalPrice, err := s.resolver.PriceFor(draft.PaymentMethod, *settings, draft.TotalPrice)
	if err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		ID:             uuid.New().String(),
		Direction:      draft.Direction,
		Origin:         draft.Origin,
		Destination:    draft.Destination,
		Date:           draft.Date,
		Time:           draft.Time,
		PassengerCount: draft.PassengerCount,
		BaggageCount:   draft.BaggageCount,
		DistanceKm:     draft.DistanceKm,
		VehicleID:      draft.VehicleID,
		ServiceIDs:     append([]string(nil), draft.ServiceIDs...),
		BasePrice:      draft.BasePrice,
		ServicesPrice:  draft.ServicesPrice,
		TotalPrice:     draft.TotalPrice,
		FinalPrice:     finalPrice,
		Customer:       draft.Customer,
		PaymentMethod:  draft.PaymentMethod,
		Status:         domain.ReservationStatusPending,
		CreatedAt:      time.Now(),
	}

	token, err := s.tokens.Issue(reservation.ID)
	if err != nil {
		return nil, err
	}
	reservation.VerificationToken = token

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	intent, err := s.resolver.BeginCheckout(ctx, reservation.PaymentMethod, *settings, finalPrice, reservation.ID)
	if err != nil {
		return nil, err
	}

	_ = s.drafts.Delete(ctx, draftID)

	if s.notifier != nil {
		_ = s.notifier.NotifyReservationConfirmed(ctx, reservation)
	}

	return &ConfirmResult{Reservation: reservation, Checkout: intent}, nil
}

// loadDraft fetches a draft or fails with ErrDraftNotFound.
func (s *BookingService) loadDraft(ctx context.Context, draftID string) (*domain.ReservationDraft, error) {
	if draftID == "" {
		return nil, ErrInvalidDraftID
	}

	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}

	if draft == nil {
		return nil, ErrDraftNotFound
	}

	return draft, nil
}

// applyRoute validates and merges the route step.
func (s *BookingService) applyRoute(ctx context.Context, draft *domain.ReservationDraft, in RouteInput) error {
	verr := &ValidationError{}

	direction, ok := domain.ParseDirection(in.Direction)
	if !ok {
		verr.add("direction", "must be AIRPORT_TO_HOTEL or HOTEL_TO_AIRPORT")
	}

	if in.Origin == "" {
		verr.add("origin", "is required")
	}

	if in.Destination == "" {
		verr.add("destination", "is required")
	}

	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		verr.add("date", "must be a valid date (YYYY-MM-DD)")
	}

	if _, err := time.Parse("15:04", in.Time); err != nil {
		verr.add("time", "must be a valid time (HH:MM)")
	}

	if in.PassengerCount < 1 {
		verr.add("passenger_count", "must be at least 1")
	}

	if in.BaggageCount < 0 {
		verr.add("baggage_count", "must not be negative")
	}

	if in.DistanceKm <= 0 {
		verr.add("distance_km", "must be greater than zero")
	}

	if !verr.ok() {
		return verr
	}

	draft.Direction = direction
	draft.Origin = in.Origin
	draft.Destination = in.Destination
	draft.Date = in.Date
	draft.Time = in.Time
	draft.PassengerCount = in.PassengerCount
	draft.BaggageCount = in.BaggageCount
	draft.DistanceKm = in.DistanceKm

	// A changed distance invalidates any previously computed price.
	return s.reprice(ctx, draft)
}

// applyVehicleAndServices validates and merges the vehicle selection step.
func (s *BookingService) applyVehicleAndServices(ctx context.Context, draft *domain.ReservationDraft, in VehicleAndServicesInput) error {
	if in.VehicleID == "" {
		verr := &ValidationError{}
		verr.add("vehicle_id", "is required")
		return verr
	}

	vehicle, err := s.catalog.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		if err == repository.ErrNotFound {
			verr := &ValidationError{}
			verr.add("vehicle_id", "unknown vehicle")
			return verr
		}
		return err
	}

	if vehicle.SeatCapacity < draft.PassengerCount || vehicle.BaggageCapacity < draft.BaggageCount {
		return ErrCapacityExceeded
	}

	draft.VehicleID = vehicle.ID
	draft.ServiceIDs = dedupe(in.ServiceIDs)

	return s.reprice(ctx, draft)
}

// applyPersonalInfo validates and merges the personal info step.
func (s *BookingService) applyPersonalInfo(draft *domain.ReservationDraft, in PersonalInfoInput) error {
	verr := &ValidationError{}

	if len(in.FirstName) < 2 {
		verr.add("first_name", "must be at least 2 characters")
	}

	if len(in.LastName) < 2 {
		verr.add("last_name", "must be at least 2 characters")
	}

	if !emailPattern.MatchString(in.Email) {
		verr.add("email", "must be a valid email address")
	}

	if !validPhone(in.Phone) {
		verr.add("phone", "must contain at least 10 digits")
	}

	if in.FlightNumber != "" && len(in.FlightNumber) < 3 {
		verr.add("flight_number", "must be at least 3 characters")
	}

	if !verr.ok() {
		return verr
	}

	draft.Customer = domain.Customer{
		FirstName:       in.FirstName,
		LastName:        in.LastName,
		Email:           in.Email,
		Phone:           in.Phone,
		FlightNumber:    in.FlightNumber,
		SpecialRequests: in.SpecialRequests,
	}

	return nil
}

// applyPayment validates and merges the payment step.
func (s *BookingService) applyPayment(ctx context.Context, draft *domain.ReservationDraft, in PaymentInput) error {
	method, ok := domain.ParsePaymentMethod(in.Method)
	if !ok {
		return ErrInvalidPaymentMethod
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}

	finalPrice, err := s.resolver.PriceFor(method, *settings, draft.TotalPrice)
	if err != nil {
		return err
	}

	draft.PaymentMethod = method
	draft.FinalPrice = finalPrice

	return nil
}

// reprice recomputes base, services and total prices from the draft's current
// vehicle, distance and selection. Called on every advance that can change a
// price input; the calculator is pure, so this is always recompute-from-
// scratch, never cache.
func (s *BookingService) reprice(ctx context.Context, draft *domain.ReservationDraft) error {
	if draft.VehicleID == "" {
		draft.BasePrice = 0
		draft.ServicesPrice = 0
		draft.TotalPrice = 0
		draft.FinalPrice = 0
		return nil
	}

	vehicle, err := s.catalog.GetVehicle(ctx, draft.VehicleID)
	if err != nil {
		return err
	}

	basePrice, err := s.fare.ComputeBasePrice(vehicle, draft.DistanceKm)
	if err != nil {
		return err
	}

	catalog, err := s.catalog.ServiceMap(ctx)
	if err != nil {
		return err
	}

	servicesPrice, err := s.fare.ComputeServicesPrice(draft.ServiceIDs, catalog)
	if err != nil {
		return err
	}

	totalPrice, err := s.fare.ComputeTotal(basePrice, servicesPrice, 0)
	if err != nil {
		return err
	}

	draft.BasePrice = basePrice
	draft.ServicesPrice = servicesPrice
	draft.TotalPrice = totalPrice
	draft.FinalPrice = totalPrice

	// Preserve the discount if a method was already chosen on a previous
	// pass through the payment step.
	if draft.PaymentMethod != "" {
		settings, err := s.settingsRepo.Get(ctx)
		if err != nil {
			return err
		}
		finalPrice, err := s.resolver.PriceFor(draft.PaymentMethod, *settings, totalPrice)
		if err != nil {
			return err
		}
		draft.FinalPrice = finalPrice
	}

	return nil
}

// validPhone accepts digits with common separators, at least 10 digits total.
func validPhone(phone string) bool {
	if !phonePattern.MatchString(phone) {
		return false
	}

	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 10
}

// dedupe collapses repeated ids, preserving first-seen order. Selection is a
// set: each add-on counts at most once.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
