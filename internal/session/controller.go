// Package session implements the ATM interaction state machine. The
// controller consumes discrete keypad and side-button events, calls the
// ledger, and decides the next state and what the screen should say. It never
// touches the terminal or the network itself; presentation adapters feed it
// events and render the Display it returns.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sultanahmad/atm-sim/internal/ledger"
)

// Input buffer limits: account numbers are up to nine digits, PINs exactly
// four.
const (
	accountNumberMax = 9
	pinLengthMax     = 4
)

// Screen text, kept together so the transition logic below stays readable.
const (
	msgWelcome         = "Welcome to Sultan Bank! Please insert your card (Enter Account Number)."
	msgGoodbye         = "Thank you for using the ATM. Please insert your card (Enter Account Number)."
	msgAccountEmpty    = "Account number cannot be empty. Please try again."
	msgEnterPIN        = "Please enter your PIN:"
	msgPINEmpty        = "PIN cannot be empty. Please try again."
	msgPINRetry        = "Please enter your PIN again:"
	msgAccountNotFound = "Account not found."
	msgCardBlocked     = "Too many incorrect PIN attempts. Card blocked."
	msgMainMenu        = "Select an option using the side buttons:"
	msgAnotherOption   = "Select another option."
	msgWithdrawPrompt  = "Enter amount to withdraw, then press ENTER:"
	msgDepositPrompt   = "Enter amount to deposit, then press ENTER:"
	msgWithdrawRetry   = "Enter amount to withdraw or CANCEL:"
	msgDepositRetry    = "Enter amount to deposit or CANCEL:"
	msgInvalidNumber   = "Invalid amount. Please enter a number."
	msgInvalidPositive = "Invalid amount. Please enter a positive number."
	msgInsufficient    = "Insufficient funds."
	msgLogInFirst      = "Please log in first."
	msgFinishAction    = "Please complete the current action or CANCEL."
	msgNoTransactions  = "No transactions yet."
)

// Display is what the presentation layer should render after an event: the
// narrative screen text, the (possibly masked) input buffer, and whether the
// side-action buttons are live.
type Display struct {
	Screen         string `json:"screen"`
	Input          string `json:"input"`
	ActionsEnabled bool   `json:"actionsEnabled"`
	State          string `json:"state"`
}

// Controller is the finite-state machine mediating between user input and the
// ledger. It is not safe for concurrent use; wrap it in a Loop when events can
// arrive from more than one goroutine.
type Controller struct {
	ledger  *ledger.Ledger
	prompts Prompts

	state         State
	buffer        string
	pinBuffer     string
	stagedAccount string
	screen        string
}

// New builds a controller showing the account-entry screen.
func New(l *ledger.Ledger, prompts Prompts) *Controller {
	return &Controller{ledger: l, prompts: prompts, state: StateAccountEntry, screen: msgWelcome}
}

// State reports the machine's current state.
func (c *Controller) State() State { return c.state }

// Display reports what should currently be on screen.
func (c *Controller) Display() Display {
	return Display{
		Screen:         c.screen,
		Input:          c.displayBuffer(),
		ActionsEnabled: c.state == StateMainMenu,
		State:          c.state.String(),
	}
}

// displayBuffer masks the PIN; every other buffer is shown raw.
func (c *Controller) displayBuffer() string {
	if c.state == StatePINEntry {
		return strings.Repeat("*", len(c.pinBuffer))
	}
	return c.buffer
}

// Handle processes one event to completion and returns the resulting display.
func (c *Controller) Handle(ev Event) Display {
	switch ev.Kind {
	case EventDigit:
		c.appendDigit(ev.Digit)
	case EventDecimalPoint:
		c.appendDecimalPoint()
	case EventClear:
		c.clearBuffers()
	case EventConfirm:
		c.confirm()
	case EventCancel:
		c.cancel()
	case EventSideAction:
		c.sideAction(ev.Action)
	}
	return c.Display()
}

func (c *Controller) appendDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	switch c.state {
	case StateAccountEntry:
		if len(c.buffer) < accountNumberMax {
			c.buffer += string(d)
		}
	case StatePINEntry:
		if len(c.pinBuffer) < pinLengthMax {
			c.pinBuffer += string(d)
		}
	case StateWithdrawAmount, StateDepositAmount:
		c.buffer += string(d)
	}
}

// appendDecimalPoint only applies in the amount states, and at most one point
// fits in the buffer.
func (c *Controller) appendDecimalPoint() {
	if c.state != StateWithdrawAmount && c.state != StateDepositAmount {
		return
	}
	if strings.ContainsRune(c.buffer, '.') {
		return
	}
	c.buffer += "."
}

func (c *Controller) clearBuffers() {
	c.buffer = ""
	if c.state == StatePINEntry {
		c.pinBuffer = ""
	}
}

func (c *Controller) confirm() {
	switch c.state {
	case StateAccountEntry:
		c.confirmAccount()
	case StatePINEntry:
		c.confirmPIN()
	case StateWithdrawAmount:
		c.confirmAmount(c.ledger.Withdraw, "Withdrawal successful.", msgWithdrawRetry)
	case StateDepositAmount:
		c.confirmAmount(c.ledger.Deposit, "Deposit successful.", msgDepositRetry)
	case StateMainMenu:
		// Nothing staged to confirm from the menu.
	}
}

func (c *Controller) confirmAccount() {
	if c.buffer == "" {
		c.screen = msgAccountEmpty
		return
	}
	c.stagedAccount = c.buffer
	c.buffer = ""
	c.pinBuffer = ""
	c.state = StatePINEntry
	c.screen = msgEnterPIN
}

func (c *Controller) confirmPIN() {
	if c.pinBuffer == "" {
		c.screen = msgPINEmpty
		return
	}
	pin := c.pinBuffer
	c.pinBuffer = ""
	c.buffer = ""

	err := c.ledger.ValidatePIN(c.stagedAccount, pin)
	if err == nil {
		c.showMainMenu()
		return
	}
	if errors.Is(err, ledger.ErrCardBlocked) {
		c.prompts.Notify("Error", msgCardBlocked)
		c.reset()
		return
	}
	// Recoverable: stay in PIN entry for another try.
	var pinErr *ledger.IncorrectPINError
	switch {
	case errors.As(err, &pinErr):
		c.screen = fmt.Sprintf("Incorrect PIN. %d attempts remaining.\n%s", pinErr.Remaining, msgPINRetry)
	case errors.Is(err, ledger.ErrAccountNotFound):
		c.screen = msgAccountNotFound + "\n" + msgPINRetry
	default:
		c.screen = err.Error() + "\n" + msgPINRetry
	}
}

// confirmAmount parses the buffer and applies op (withdraw or deposit). A
// successful operation lands back on the main menu with the new balance on
// screen; any failure keeps the amount state so the user can retype.
func (c *Controller) confirmAmount(op func(int64) (int64, error), success, retry string) {
	entered := c.buffer
	c.buffer = ""

	amount, err := ledger.ParseAmount(entered)
	if err != nil {
		c.screen = msgInvalidNumber
		return
	}
	balance, err := op(amount)
	if err != nil {
		c.screen = amountErrorText(err) + "\n" + retry
		return
	}
	c.state = StateMainMenu
	c.screen = fmt.Sprintf("%s New balance: $%s\n\n%s", success, ledger.FormatAmount(balance), msgMainMenu)
}

func amountErrorText(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return msgInsufficient
	case errors.Is(err, ledger.ErrInvalidAmount):
		return msgInvalidPositive
	case errors.Is(err, ledger.ErrAmountTooLarge):
		return msgInvalidPositive
	case errors.Is(err, ledger.ErrNotAuthenticated):
		return msgLogInFirst
	default:
		return "Transaction failed."
	}
}

func (c *Controller) cancel() {
	if !c.prompts.ConfirmCancel() {
		return
	}
	c.reset()
}

// reset forces the session back to the account-entry state: logged out, every
// buffer empty.
func (c *Controller) reset() {
	c.ledger.Logout()
	c.state = StateAccountEntry
	c.buffer = ""
	c.pinBuffer = ""
	c.stagedAccount = ""
	c.screen = msgGoodbye
}

func (c *Controller) sideAction(a Action) {
	if c.state != StateMainMenu {
		// The UI disables these buttons outside the menu, but a misbehaving
		// adapter must not be able to bypass the guard.
		c.screen = msgFinishAction
		return
	}
	switch a {
	case ActionBalance:
		c.showBalance()
	case ActionWithdraw:
		c.state = StateWithdrawAmount
		c.buffer = ""
		c.screen = msgWithdrawPrompt
	case ActionDeposit:
		c.state = StateDepositAmount
		c.buffer = ""
		c.screen = msgDepositPrompt
	case ActionHistory:
		c.showHistory()
	}
}

func (c *Controller) showBalance() {
	balance, err := c.ledger.Balance()
	if err != nil {
		c.screen = amountErrorText(err)
		return
	}
	c.buffer = ""
	c.screen = fmt.Sprintf("Your current balance is: $%s\n\n%s", ledger.FormatAmount(balance), msgAnotherOption)
}

// showHistory pushes the record list through the modal sink, the way the
// original kiosk used a dialog rather than the main screen.
func (c *Controller) showHistory() {
	records := c.ledger.History()
	text := msgNoTransactions
	if len(records) > 0 {
		lines := make([]string, len(records))
		for i, r := range records {
			lines[i] = r.DisplayLine()
		}
		text = strings.Join(lines, "\n")
	}
	c.prompts.Notify("Transaction History", text)
	c.buffer = ""
	c.screen = msgAnotherOption
}

func (c *Controller) showMainMenu() {
	c.state = StateMainMenu
	c.buffer = ""
	c.screen = msgMainMenu
}
