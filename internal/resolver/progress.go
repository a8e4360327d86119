package resolver

import (
	"errors"
	"fmt"
)

// ErrProgressUndefined is returned for an empty guide or an index outside it.
var ErrProgressUndefined = errors.New("progress undefined")

// ComputeProgress returns the completion percentage after viewing the step
// at index: (index+1) / total * 100.
func ComputeProgress(index, total int) (float64, error) {
	if total <= 0 || index < 0 || index >= total {
		return 0, fmt.Errorf("%w: step %d of %d", ErrProgressUndefined, index, total)
	}
	// Multiply before dividing so the first and last steps are exact.
	return float64(index+1) * 100 / float64(total), nil
}
