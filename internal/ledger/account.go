package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind labels a transaction as money out or money in.
type Kind string

const (
	KindWithdrawal Kind = "Withdrawal"
	KindDeposit    Kind = "Deposit"
)

// Transaction is one immutable history record. Amount is in cents and signed:
// negative for withdrawals, positive for deposits.
type Transaction struct {
	ID     uuid.UUID `json:"id"`
	Time   time.Time `json:"time"`
	Kind   Kind      `json:"kind"`
	Amount int64     `json:"amount"`
}

// DisplayLine renders the record the way the ATM screen shows history,
// e.g. "2025-06-04 10:12:03 - Withdrawal: $-30.00".
func (t Transaction) DisplayLine() string {
	return fmt.Sprintf("%s - %s: $%s", t.Time.Format("2006-01-02 15:04:05"), t.Kind, FormatAmount(t.Amount))
}

// Account is one bank account held by the ledger. The PIN is kept only as a
// bcrypt hash.
type Account struct {
	Number  string
	pinHash []byte
	Balance int64
	History []Transaction
}

// SeedAccount is the bootstrap form of an account, injected at startup.
type SeedAccount struct {
	Number  string
	PIN     string
	Balance int64
}
