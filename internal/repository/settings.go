package repository

import (
	"context"

	"transfer/internal/domain"
)

// PaymentSettingsRepository reads the operator's payment configuration. The
// settings are passed explicitly into the resolver per checkout; nothing in
// the core caches them.
type PaymentSettingsRepository interface {
	// Get retrieves the current payment settings.
	Get(ctx context.Context) (*domain.PaymentSettings, error)
}
