package account

import (
	"errors"
	"fmt"

	"tokenorders/internal/core/domain/model/kernel"
)

var (
	// ErrAccountNotFound is wrapped by the not-found error of the account repository.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is returned when a debit exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

// InsufficientBalanceError describes a rejected debit.
type InsufficientBalanceError struct {
	AccountID kernel.UUID
	Balance   int64
	Requested int64
}

func NewInsufficientBalanceError(accountID kernel.UUID, balance, requested int64) *InsufficientBalanceError {
	return &InsufficientBalanceError{AccountID: accountID, Balance: balance, Requested: requested}
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s: account %s needs %d tokens but only has %d",
		ErrInsufficientBalance, e.AccountID, e.Requested, e.Balance)
}

func (e *InsufficientBalanceError) Unwrap() error {
	return ErrInsufficientBalance
}
