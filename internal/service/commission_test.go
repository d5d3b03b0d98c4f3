package service

import (
	"errors"
	"testing"
)

func TestSplit_SeventyFivePercent(t *testing.T) {
	t.Parallel()

	splitter := NewCommissionSplitter()

	split, err := splitter.Split(361, 75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if split.DriverShare != 270.75 {
		t.Errorf("expected driver share 270.75, got %v", split.DriverShare)
	}

	if split.CompanyShare != 90.25 {
		t.Errorf("expected company share 90.25, got %v", split.CompanyShare)
	}
}

func TestSplit_SharesSumToTotalExactly(t *testing.T) {
	t.Parallel()

	splitter := NewCommissionSplitter()

	// Amounts chosen so a naive float split would drop or invent a cent.
	amounts := []float64{0.01, 0.03, 10.01, 99.99, 123.45, 361, 1000.01}
	percents := []float64{1, 33.33, 50, 70, 75, 99}

	for _, amount := range amounts {
		for _, percent := range percents {
			split, err := splitter.Split(amount, percent)
			if err != nil {
				t.Fatalf("Split(%v, %v): unexpected error: %v", amount, percent, err)
			}

			sumCents := int64(split.DriverShare*100+0.5) + int64(split.CompanyShare*100+0.5)
			totalCents := int64(amount*100 + 0.5)
			if sumCents != totalCents {
				t.Errorf("Split(%v, %v): shares %v + %v do not sum to total",
					amount, percent, split.DriverShare, split.CompanyShare)
			}
		}
	}
}

func TestSplit_ZeroAmount_BothSharesZero(t *testing.T) {
	t.Parallel()

	splitter := NewCommissionSplitter()

	split, err := splitter.Split(0, 75)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if split.DriverShare != 0 || split.CompanyShare != 0 {
		t.Errorf("expected zero shares, got %v / %v", split.DriverShare, split.CompanyShare)
	}
}

func TestSplit_InvalidPercent_Rejected(t *testing.T) {
	t.Parallel()

	splitter := NewCommissionSplitter()

	for _, percent := range []float64{0, -10, 100, 120} {
		if _, err := splitter.Split(100, percent); !errors.Is(err, ErrInvalidCommissionPercent) {
			t.Errorf("percent %v: expected ErrInvalidCommissionPercent, got %v", percent, err)
		}
	}
}

func TestSplit_NegativeAmount_Rejected(t *testing.T) {
	t.Parallel()

	splitter := NewCommissionSplitter()

	if _, err := splitter.Split(-1, 75); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
}
