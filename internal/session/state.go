package session

// State identifies where the interaction flow currently is. The zero value is
// the account-entry screen shown when no card is "inserted".
type State int

const (
	StateAccountEntry State = iota
	StatePINEntry
	StateMainMenu
	StateWithdrawAmount
	StateDepositAmount
)

func (s State) String() string {
	switch s {
	case StateAccountEntry:
		return "AccountEntry"
	case StatePINEntry:
		return "PinEntry"
	case StateMainMenu:
		return "MainMenu"
	case StateWithdrawAmount:
		return "WithdrawAmount"
	case StateDepositAmount:
		return "DepositAmount"
	default:
		return "Unknown"
	}
}
