package services

import "testing"

func TestFormatTWD(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"zero", 0, "$0"},
		{"hundreds", 500, "$500"},
		{"thousands", 15000, "$15,000"},
		{"millions", 1234567, "$1,234,567"},
		{"fraction", 12.5, "$12.5"},
		{"negative", -2500, "-$2,500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTWD(tt.amount); got != tt.want {
				t.Errorf("FormatTWD(%v) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestFormatQty(t *testing.T) {
	tests := []struct {
		qty  float64
		want string
	}{
		{1, "1"},
		{12, "12"},
		{1.5, "1.5"},
		{2.25, "2.25"},
		{0, "0"},
	}
	for _, tt := range tests {
		if got := FormatQty(tt.qty); got != tt.want {
			t.Errorf("FormatQty(%v) = %q, want %q", tt.qty, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(40); got != "40.0%" {
		t.Errorf("FormatPercent(40) = %q, want 40.0%%", got)
	}
	if got := FormatPercent(-12.345); got != "-12.3%" {
		t.Errorf("FormatPercent(-12.345) = %q, want -12.3%%", got)
	}
}
