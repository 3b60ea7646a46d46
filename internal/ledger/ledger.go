// Package ledger owns the in-memory account records: PIN validation, balance
// mutation, and transaction history. It knows nothing about the UI or the
// session state machine; every operation is a plain synchronous call made by
// the single event-dispatch goroutine.
package ledger

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// DefaultMaxPINAttempts is the classic three-strikes card policy.
const DefaultMaxPINAttempts = 3

// Ledger holds the seeded accounts plus the single active session: the
// authenticated account (if any) and the PIN failure counter for the current
// login attempt. The counter is scoped to the login attempt, not the account;
// it resets on successful login and on logout.
type Ledger struct {
	accounts map[string]*Account
	current  *Account

	maxPINAttempts int
	pinAttempts    int
}

// New builds a ledger from the injected seed. Seed PINs are bcrypt-hashed
// before they are stored; a non-positive maxPINAttempts selects the default.
func New(seed []SeedAccount, maxPINAttempts int) (*Ledger, error) {
	if maxPINAttempts <= 0 {
		maxPINAttempts = DefaultMaxPINAttempts
	}
	l := &Ledger{
		accounts:       make(map[string]*Account, len(seed)),
		maxPINAttempts: maxPINAttempts,
	}
	for _, s := range seed {
		if s.Balance < 0 {
			return nil, fmt.Errorf("seed account %s: balance must not be negative", s.Number)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(s.PIN), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash PIN for account %s: %w", s.Number, err)
		}
		l.accounts[s.Number] = &Account{Number: s.Number, pinHash: hash, Balance: s.Balance}
	}
	return l, nil
}

// ValidatePIN checks the PIN for the given account number. On success the
// account becomes the authenticated one and the failure counter resets. A
// mismatch increments the counter; once the limit is reached this and every
// later call answer ErrCardBlocked until Logout, even for the correct PIN.
// Unknown account numbers never touch the counter.
func (l *Ledger) ValidatePIN(accountNumber, pin string) error {
	if l.pinAttempts >= l.maxPINAttempts {
		return ErrCardBlocked
	}
	acct, ok := l.accounts[accountNumber]
	if !ok {
		return ErrAccountNotFound
	}
	if bcrypt.CompareHashAndPassword(acct.pinHash, []byte(pin)) == nil {
		l.current = acct
		l.pinAttempts = 0
		return nil
	}
	l.pinAttempts++
	if remaining := l.maxPINAttempts - l.pinAttempts; remaining > 0 {
		return &IncorrectPINError{Remaining: remaining}
	}
	return ErrCardBlocked
}

// Authenticated reports whether an account is currently logged in.
func (l *Ledger) Authenticated() bool {
	return l.current != nil
}

// Balance returns the authenticated account's balance in cents.
func (l *Ledger) Balance() (int64, error) {
	if l.current == nil {
		return 0, ErrNotAuthenticated
	}
	return l.current.Balance, nil
}

// Withdraw debits the authenticated account and returns the new balance. The
// amount must be positive and no larger than the balance; nothing changes on
// a rejected call.
func (l *Ledger) Withdraw(amount int64) (int64, error) {
	if l.current == nil {
		return 0, ErrNotAuthenticated
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if amount > l.current.Balance {
		return 0, ErrInsufficientFunds
	}
	l.current.Balance -= amount
	l.record(KindWithdrawal, -amount)
	return l.current.Balance, nil
}

// Deposit credits the authenticated account and returns the new balance.
func (l *Ledger) Deposit(amount int64) (int64, error) {
	if l.current == nil {
		return 0, ErrNotAuthenticated
	}
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if amount > math.MaxInt64-l.current.Balance {
		return 0, ErrAmountTooLarge
	}
	l.current.Balance += amount
	l.record(KindDeposit, amount)
	return l.current.Balance, nil
}

func (l *Ledger) record(kind Kind, amount int64) {
	l.current.History = append(l.current.History, Transaction{
		ID:     uuid.New(),
		Time:   time.Now(),
		Kind:   kind,
		Amount: amount,
	})
}

// History returns the authenticated account's transactions, oldest first. The
// slice is a copy; callers cannot alter the ledger through it. An empty slice
// comes back when logged out or when nothing has happened yet.
func (l *Ledger) History() []Transaction {
	if l.current == nil {
		return nil
	}
	out := make([]Transaction, len(l.current.History))
	copy(out, l.current.History)
	return out
}

// Logout clears the authenticated account and the failure counter. Idempotent.
func (l *Ledger) Logout() {
	l.current = nil
	l.pinAttempts = 0
}
