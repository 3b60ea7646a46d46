package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sultanahmad/atm-sim/internal/ledger"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port           string
	CORSOrigins    []string
	MaxPINAttempts int
	Seed           []ledger.SeedAccount
}

// DefaultSeed is the demo pair of accounts used when ATM_SEED_ACCOUNTS is not
// set. A real deployment would pull these from a credential store.
func DefaultSeed() []ledger.SeedAccount {
	return []ledger.SeedAccount{
		{Number: "123456789", PIN: "1234", Balance: 150000},
		{Number: "987654321", PIN: "4321", Balance: 75000},
	}
}

// Load reads configuration from the environment and performs minimal
// validation. Every setting has a usable default, so an empty environment
// yields the stock demo ATM.
func Load() (Config, error) {
	cfg := Config{
		Port:        fallback(os.Getenv("ATM_PORT"), "8080"),
		CORSOrigins: parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	attempts := strings.TrimSpace(os.Getenv("ATM_MAX_PIN_ATTEMPTS"))
	if attempts == "" {
		cfg.MaxPINAttempts = ledger.DefaultMaxPINAttempts
	} else if n, err := strconv.Atoi(attempts); err == nil && n > 0 {
		cfg.MaxPINAttempts = n
	} else {
		return Config{}, fmt.Errorf("ATM_MAX_PIN_ATTEMPTS must be a positive integer, got %q", attempts)
	}

	spec := strings.TrimSpace(os.Getenv("ATM_SEED_ACCOUNTS"))
	if spec == "" {
		cfg.Seed = DefaultSeed()
		return cfg, nil
	}
	seed, err := parseSeed(spec)
	if err != nil {
		return Config{}, err
	}
	cfg.Seed = seed
	return cfg, nil
}

// parseSeed reads "number:pin:balance" triples separated by commas, the
// balance in dollars, e.g. "123456789:1234:1500.00,987654321:4321:750.00".
func parseSeed(spec string) ([]ledger.SeedAccount, error) {
	var out []ledger.SeedAccount
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("seed entry %q: want number:pin:balance", entry)
		}
		balance, err := ledger.ParseAmount(parts[2])
		if err != nil {
			return nil, fmt.Errorf("seed entry %q: bad balance: %w", entry, err)
		}
		out = append(out, ledger.SeedAccount{
			Number:  strings.TrimSpace(parts[0]),
			PIN:     strings.TrimSpace(parts[1]),
			Balance: balance,
		})
	}
	if len(out) == 0 {
		return nil, errors.New("ATM_SEED_ACCOUNTS is set but contains no accounts")
	}
	return out, nil
}

// HTTPAddress returns the host:port pair for the kiosk server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
