package ledger

import "testing"

func TestAllocationTierBoundary(t *testing.T) {
	// 99,999.99 is the last cent of the standard tier.
	if a := allocationFor(99_999_99); a != standardAllocation {
		t.Fatalf("main=99999.99 expected standard tier, got %+v", a)
	}
	if a := allocationFor(100_000_00); a != pivotAllocation {
		t.Fatalf("main=100000.00 expected pivot tier, got %+v", a)
	}
	if a := allocationFor(0); a != standardAllocation {
		t.Fatalf("main=0 expected standard tier, got %+v", a)
	}
}

func TestSplitAmountStandard(t *testing.T) {
	mainC, backupC, promoC := splitAmount(100_00, standardAllocation)
	if mainC != 50_00 || backupC != 25_00 || promoC != 25_00 {
		t.Fatalf("standard split of 100.00 = %d/%d/%d", mainC, backupC, promoC)
	}
}

func TestSplitAmountPivot(t *testing.T) {
	mainC, backupC, promoC := splitAmount(100_00, pivotAllocation)
	if mainC != 30_00 || backupC != 40_00 || promoC != 30_00 {
		t.Fatalf("pivot split of 100.00 = %d/%d/%d", mainC, backupC, promoC)
	}
}

func TestSplitAmountSumsExactly(t *testing.T) {
	amounts := []int64{1, 2, 3, 7, 99, 101, 12_34, 99_999_99, 1_000_000_01}
	for _, amount := range amounts {
		for _, a := range []allocation{standardAllocation, pivotAllocation} {
			mainC, backupC, promoC := splitAmount(amount, a)
			if mainC+backupC+promoC != amount {
				t.Fatalf("split of %d under %+v sums to %d", amount, a, mainC+backupC+promoC)
			}
			if mainC < 0 || backupC < 0 || promoC < 0 {
				t.Fatalf("split of %d under %+v produced negative portion", amount, a)
			}
		}
	}
}

func TestSplitEvenly(t *testing.T) {
	parts := splitEvenly(100, 3)
	if len(parts) != 3 {
		t.Fatalf("expected 3 parts, got %d", len(parts))
	}
	if parts[0] != 34 || parts[1] != 33 || parts[2] != 33 {
		t.Fatalf("unexpected parts: %v", parts)
	}

	parts = splitEvenly(0, 2)
	if parts[0] != 0 || parts[1] != 0 {
		t.Fatalf("zero amount should split to zeros: %v", parts)
	}

	parts = splitEvenly(7, 1)
	if parts[0] != 7 {
		t.Fatalf("single recipient should take all: %v", parts)
	}
}
