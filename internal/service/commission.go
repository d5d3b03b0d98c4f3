package service

import "math"

// CommissionSplit is the division of a settled amount between the driver and
// the operating company.
type CommissionSplit struct {
	DriverShare  float64
	CompanyShare float64
}

// CommissionSplitter splits a settled trip amount by a configured ratio.
type CommissionSplitter struct{}

// NewCommissionSplitter creates a new CommissionSplitter.
func NewCommissionSplitter() *CommissionSplitter {
	return &CommissionSplitter{}
}

// Split divides totalAmount so that DriverShare + CompanyShare == totalAmount
// exactly. The math is done in integer cents; the driver share is rounded
// half-up and the remainder goes to the company, so no cent is ever lost or
// invented. driverPercent must be in (0,100).
func (s *CommissionSplitter) Split(totalAmount, driverPercent float64) (CommissionSplit, error) {
	if driverPercent <= 0 || driverPercent >= 100 {
		return CommissionSplit{}, ErrInvalidCommissionPercent
	}

	if totalAmount < 0 {
		return CommissionSplit{}, ErrInvalidAmount
	}

	totalCents := int64(math.Floor(totalAmount*100 + 0.5))
	driverCents := int64(math.Floor(float64(totalCents)*driverPercent/100 + 0.5))
	companyCents := totalCents - driverCents

	return CommissionSplit{
		DriverShare:  float64(driverCents) / 100,
		CompanyShare: float64(companyCents) / 100,
	}, nil
}
