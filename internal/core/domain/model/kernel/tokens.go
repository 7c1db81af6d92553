package kernel

import (
	"fmt"

	"tokenorders/internal/pkg/errs"
)

// ValidateTokens rejects negative reward-token amounts and counters.
func ValidateTokens(paramName string, n int64) error {
	if n < 0 {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%d is less than 0", n))
	}
	return nil
}
