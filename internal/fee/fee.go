package fee

import "fmt"

// FeeMode selects how a fee is computed before clamping.
type FeeMode string

const (
	ModeFixed        FeeMode = "FIXED"
	ModeProportional FeeMode = "PROPORTIONAL"
	ModeEstimated    FeeMode = "ESTIMATED"
)

// Policy is the fee schedule applied whenever money leaves escrow.
// All amounts are in the smallest currency unit (nano).
type Policy struct {
	Enabled bool

	ServiceFeeMode FeeMode
	ServiceFeeBPS  int64
	ServiceFixed   int64
	ServiceFeeMin  int64
	ServiceFeeMax  int64 // 0 means unbounded above

	NetworkFeeMode FeeMode
	NetworkFixed   int64
	NetworkFeeMin  int64
	NetworkFeeMax  int64 // 0 means unbounded above

	// MinPayoutNano is the smallest net amount a payout may carry.
	MinPayoutNano int64
}

// Breakdown is the result of a fee computation. TotalDebit is what the
// escrow wallet is charged: amount + both fees.
type Breakdown struct {
	ServiceFee int64
	NetworkFee int64
	TotalDebit int64
}

type InvalidAmountError struct {
	Amount int64
	Min    int64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid payout amount %d (minimum %d)", e.Amount, e.Min)
}

type InsufficientBalanceError struct {
	Need int64
	Have int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: need %d, have %d", e.Need, e.Have)
}

// ceilDiv rounds up so the platform never under-collects on a
// proportional fee.
func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

func clamp(v, min, max int64) int64 {
	if v < min {
		v = min
	}
	if max > 0 && v > max {
		v = max
	}
	return v
}

// ComputeFees is a pure function: same inputs always yield the same
// breakdown. Each fee is computed by its mode and then clamped into
// [min, max], in that order.
func ComputeFees(amount int64, p Policy) Breakdown {
	if !p.Enabled {
		return Breakdown{TotalDebit: amount}
	}

	var service int64
	switch p.ServiceFeeMode {
	case ModeProportional:
		service = ceilDiv(amount*p.ServiceFeeBPS, 10000)
	default:
		service = p.ServiceFixed
	}
	service = clamp(service, p.ServiceFeeMin, p.ServiceFeeMax)

	// ESTIMATED falls back to the configured fixed value here; a live
	// network estimate would replace NetworkFixed upstream.
	network := clamp(p.NetworkFixed, p.NetworkFeeMin, p.NetworkFeeMax)

	return Breakdown{
		ServiceFee: service,
		NetworkFee: network,
		TotalDebit: amount + service + network,
	}
}

// ValidatePayout recomputes fees and checks them against the available
// balance. Callers must run it at the same logical instant as the
// balance read, inside a serializable transaction.
func ValidatePayout(amount, availableBalance int64, p Policy) (Breakdown, error) {
	if amount <= 0 || amount < p.MinPayoutNano {
		return Breakdown{}, &InvalidAmountError{Amount: amount, Min: p.MinPayoutNano}
	}
	b := ComputeFees(amount, p)
	if b.TotalDebit > availableBalance {
		return Breakdown{}, &InsufficientBalanceError{Need: b.TotalDebit, Have: availableBalance}
	}
	return b, nil
}
