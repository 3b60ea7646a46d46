package ledger

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole dollars", input: "100", want: 10000},
		{name: "tenths digit is tens of cents", input: "20.5", want: 2050},
		{name: "full cents", input: "20.50", want: 2050},
		{name: "single cent", input: "0.01", want: 1},
		{name: "leading point", input: ".5", want: 50},
		{name: "trailing point", input: "20.", want: 2000},
		{name: "bare point", input: ".", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "zero", input: "0", wantErr: true},
		{name: "zero with cents", input: "0.00", wantErr: true},
		{name: "negative", input: "-5", wantErr: true},
		{name: "letters", input: "12a", wantErr: true},
		{name: "two points", input: "1.2.3", wantErr: true},
		{name: "finer than a cent", input: "1.005", wantErr: true},
		{name: "largest representable", input: "92233720368547757", want: 9223372036854775700},
		{name: "wraps int64", input: "184467440737095517", wantErr: true},
		{name: "beyond int64 digits", input: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAmount) {
					t.Fatalf("ParseAmount(%q) err = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseAmount(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{150000, "1500.00"},
		{2050, "20.50"},
		{5, "0.05"},
		{-3000, "-30.00"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.cents); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.cents, got, tt.want)
		}
	}
}
