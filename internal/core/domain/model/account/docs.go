// Package account holds the Account aggregate of the token ledger.
//
// An Account carries a non-negative reward-token balance and three monotonic
// lifetime counters (tokens earned, orders completed, currency spent). The
// aggregate itself is read-only: balance and counters change only through the
// atomic ledger operations of ports.AccountRepository, which apply the rules
// defined here (Metrics, InsufficientBalanceError) in a
// single conditional statement.
package account
