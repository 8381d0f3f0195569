package ledger

// PivotThresholdC is the Main balance at which contribution allocation
// switches from the standard to the pivot tier, in cents ($100,000.00).
const PivotThresholdC int64 = 100_000_00

type allocation struct {
	mainPct   int64
	backupPct int64
	promoPct  int64
}

var (
	standardAllocation = allocation{mainPct: 50, backupPct: 25, promoPct: 25}
	pivotAllocation    = allocation{mainPct: 30, backupPct: 40, promoPct: 30}
)

func allocationFor(mainBalanceC int64) allocation {
	if mainBalanceC >= PivotThresholdC {
		return pivotAllocation
	}
	return standardAllocation
}

// splitAmount divides amountC by the allocation percentages. The promo
// portion absorbs the rounding remainder, so the three portions always sum to
// amountC exactly.
func splitAmount(amountC int64, a allocation) (mainC, backupC, promoC int64) {
	mainC = amountC * a.mainPct / 100
	backupC = amountC * a.backupPct / 100
	promoC = amountC - mainC - backupC
	return mainC, backupC, promoC
}

// splitEvenly gives each of n recipients amountC/n; the first recipient
// absorbs the remainder so the parts sum to amountC exactly.
func splitEvenly(amountC int64, n int) []int64 {
	per := amountC / int64(n)
	out := make([]int64, n)
	for i := range out {
		out[i] = per
	}
	out[0] = amountC - per*int64(n-1)
	return out
}
