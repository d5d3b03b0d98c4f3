package postgres

import (
	"context"
	"database/sql"
	"errors"

	"transfer/internal/domain"
	"transfer/internal/repository"
)

// PaymentSettingsRepository is a PostgreSQL implementation of
// repository.PaymentSettingsRepository. Settings live in a single row
// maintained by the operator's admin tooling.
type PaymentSettingsRepository struct {
	q Querier
}

// NewPaymentSettingsRepository creates a new PostgreSQL payment settings repository.
func NewPaymentSettingsRepository(db *sql.DB) *PaymentSettingsRepository {
	return &PaymentSettingsRepository{q: db}
}

// Get retrieves the current payment settings.
func (r *PaymentSettingsRepository) Get(ctx context.Context) (*domain.PaymentSettings, error) {
	query := `
		SELECT cash_enabled, bank_transfer_enabled, card_enabled,
		       bank_transfer_discount_pct, bank_name, bank_account_number, bank_account_holder
		FROM payment_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s domain.PaymentSettings
	var bankName, bankAccount, bankHolder sql.NullString

	err := r.q.QueryRowContext(ctx, query).Scan(
		&s.CashEnabled,
		&s.BankTransferEnabled,
		&s.CardEnabled,
		&s.BankTransferDiscountPct,
		&bankName,
		&bankAccount,
		&bankHolder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	s.BankName = bankName.String
	s.BankAccountNumber = bankAccount.String
	s.BankAccountHolder = bankHolder.String

	return &s, nil
}

// Ensure PaymentSettingsRepository implements repository.PaymentSettingsRepository.
var _ repository.PaymentSettingsRepository = (*PaymentSettingsRepository)(nil)
