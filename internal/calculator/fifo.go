package calculator

import "fmt"

// Epsilon absorbs floating point noise when comparing quantities.
const Epsilon = 1e-9

// Batch is the minimal view of an inventory batch needed for depletion.
type Batch struct {
	ID       string
	Quantity float64
}

// Draw is the amount taken from one batch.
type Draw struct {
	BatchID string
	Amount  float64
	// Emptied is set when the draw takes the whole batch; the batch is
	// then set to exactly zero rather than decremented.
	Emptied bool
}

// Depletion is the outcome of planning a FIFO draw.
type Depletion struct {
	Draws []Draw

	// Taken is the total drawn across batches.
	Taken float64

	// Shortfall is the part of the request no batch could cover.
	Shortfall float64
}

// Insufficient reports whether stock ran out before the request was met.
func (d Depletion) Insufficient() bool {
	return d.Shortfall > Epsilon
}

// PlanDepletion draws amount from batches in the order given, which must
// be oldest first. Each batch is visited at most once, so the loop runs at
// most len(batches) times. Running out of stock is not an error: the
// remainder is reported as Shortfall.
func PlanDepletion(batches []Batch, amount float64) (Depletion, error) {
	if amount <= 0 {
		return Depletion{}, fmt.Errorf("depletion amount must be positive, got %g", amount)
	}

	var d Depletion
	remaining := amount
	for _, b := range batches {
		if remaining <= Epsilon {
			break
		}
		if b.Quantity <= 0 {
			continue
		}

		// A batch within Epsilon of the remainder is taken whole, so float
		// noise never leaves a sliver of stock behind.
		draw := Draw{BatchID: b.ID, Amount: remaining}
		if b.Quantity-remaining <= Epsilon {
			draw.Amount = b.Quantity
			draw.Emptied = true
		}
		d.Draws = append(d.Draws, draw)
		d.Taken += draw.Amount
		remaining -= draw.Amount
	}

	if remaining > Epsilon {
		d.Shortfall = remaining
	}
	return d, nil
}
