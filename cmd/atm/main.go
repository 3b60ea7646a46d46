// The atm binary is the interactive terminal front end: a single-threaded
// loop reading keypad input from stdin and rendering the controller's display
// after every event.
//
// Input, one command per line:
//
//	digits and "."  keypad presses, fed one character at a time
//	c               clear the input buffer
//	(empty line)    ENTER / confirm
//	x               CANCEL (asks for confirmation)
//	b w d h         side buttons: Balance, Withdraw, Deposit, History
//	q               quit
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sultanahmad/atm-sim/internal/config"
	"github.com/sultanahmad/atm-sim/internal/ledger"
	"github.com/sultanahmad/atm-sim/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bank, err := ledger.New(cfg.Seed, cfg.MaxPINAttempts)
	if err != nil {
		log.Fatalf("init ledger: %v", err)
	}

	stdin := bufio.NewScanner(os.Stdin)
	ctrl := session.New(bank, &terminalPrompts{stdin: stdin})

	render(ctrl.Display())
	for {
		fmt.Print("> ")
		if !stdin.Scan() {
			return
		}
		line := strings.TrimSpace(stdin.Text())

		var display session.Display
		switch line {
		case "q", "quit":
			return
		case "":
			display = ctrl.Handle(session.Confirm())
		case "c", "clear":
			display = ctrl.Handle(session.Clear())
		case "x", "cancel":
			display = ctrl.Handle(session.Cancel())
		case "b", "balance":
			display = ctrl.Handle(session.SideAction(session.ActionBalance))
		case "w", "withdraw":
			display = ctrl.Handle(session.SideAction(session.ActionWithdraw))
		case "d", "deposit":
			display = ctrl.Handle(session.SideAction(session.ActionDeposit))
		case "h", "history":
			display = ctrl.Handle(session.SideAction(session.ActionHistory))
		default:
			display = feedKeypad(ctrl, line)
		}
		render(display)
	}
}

// feedKeypad replays a typed run of keypad characters as individual events,
// exactly as if each key were pressed on its own.
func feedKeypad(ctrl *session.Controller, line string) session.Display {
	display := ctrl.Display()
	for _, r := range line {
		switch {
		case r >= '0' && r <= '9':
			display = ctrl.Handle(session.Digit(r))
		case r == '.':
			display = ctrl.Handle(session.DecimalPoint())
		default:
			fmt.Printf("ignoring %q: not a keypad key\n", r)
		}
	}
	return display
}

func render(d session.Display) {
	fmt.Println()
	fmt.Println(d.Screen)
	fmt.Printf("[%s]\n", d.Input)
	if d.ActionsEnabled {
		fmt.Println("(side buttons: b=Balance w=Withdraw d=Deposit h=History)")
	}
}

// terminalPrompts implements the modal confirm/alert sink on stdin/stdout.
type terminalPrompts struct {
	stdin *bufio.Scanner
}

func (p *terminalPrompts) ConfirmCancel() bool {
	fmt.Print("Do you want to cancel the current operation and log out? [y/N]: ")
	if !p.stdin.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(p.stdin.Text()))
	return answer == "y" || answer == "yes"
}

func (p *terminalPrompts) Notify(title, message string) {
	fmt.Printf("\n--- %s ---\n%s\n", title, message)
	fmt.Print("Press ENTER to continue... ")
	p.stdin.Scan()
	fmt.Println()
}
