package session

// EventKind discriminates the keypad and side-button inputs the controller
// accepts.
type EventKind int

const (
	EventDigit EventKind = iota
	EventDecimalPoint
	EventClear
	EventConfirm
	EventCancel
	EventSideAction
)

// Action is a side-button command. Only valid while the main menu is shown;
// the controller rejects it everywhere else even if a UI forgets to disable
// the buttons.
type Action string

const (
	ActionBalance  Action = "Balance"
	ActionWithdraw Action = "Withdraw"
	ActionDeposit  Action = "Deposit"
	ActionHistory  Action = "History"
)

// Event is one discrete unit of user input.
type Event struct {
	Kind   EventKind
	Digit  rune   // set for EventDigit
	Action Action // set for EventSideAction
}

func Digit(d rune) Event        { return Event{Kind: EventDigit, Digit: d} }
func DecimalPoint() Event       { return Event{Kind: EventDecimalPoint} }
func Clear() Event              { return Event{Kind: EventClear} }
func Confirm() Event            { return Event{Kind: EventConfirm} }
func Cancel() Event             { return Event{Kind: EventCancel} }
func SideAction(a Action) Event { return Event{Kind: EventSideAction, Action: a} }

// Prompts is the modal confirm/alert sink supplied by the presentation layer.
// Both calls block the event being processed until the user responds.
type Prompts interface {
	// ConfirmCancel asks the user to confirm logging out.
	ConfirmCancel() bool
	// Notify shows a dialog requiring a single acknowledgment, used for the
	// card-blocked alert and the transaction history.
	Notify(title, message string)
}
