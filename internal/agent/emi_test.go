package agent_test

import (
	"math"
	"testing"

	"github.com/unclebandit/loanchat-backend/internal/agent"
)

func TestCalculateEMIKnownValue(t *testing.T) {
	// 1 lakh at 12% p.a. over 12 months is the textbook EMI example
	got := agent.CalculateEMI(100000, 12, 12)
	if math.Abs(got-8884.88) > 0.01 {
		t.Errorf("expected EMI 8884.88, got %.2f", got)
	}
}

func TestCalculateEMIZeroRate(t *testing.T) {
	got := agent.CalculateEMI(120000, 0, 12)
	if got != 10000 {
		t.Errorf("expected EMI 10000 at zero rate, got %.2f", got)
	}
}

func TestCalculateEMIZeroTenure(t *testing.T) {
	if got := agent.CalculateEMI(120000, 10.5, 0); got != 0 {
		t.Errorf("expected 0 for zero tenure, got %.2f", got)
	}
}

func TestCalculateEMIBounds(t *testing.T) {
	// EMI must exceed the zero-interest installment but stay below principal
	principal := 300000.0
	emi := agent.CalculateEMI(principal, 10.5, 24)
	if emi <= principal/24 {
		t.Errorf("EMI %.2f should exceed interest-free installment %.2f", emi, principal/24)
	}
	if emi >= principal {
		t.Errorf("EMI %.2f should be far below principal %.2f", emi, principal)
	}
}

func TestMaxLoanForEMIInvertsEMI(t *testing.T) {
	maxEMI := 10000.0
	principal := agent.MaxLoanForEMI(maxEMI, 10.5, 36)
	if principal <= 0 {
		t.Fatalf("expected positive principal, got %.2f", principal)
	}
	back := agent.CalculateEMI(principal, 10.5, 36)
	if math.Abs(back-maxEMI) > 1 {
		t.Errorf("round trip EMI %.2f differs from %.2f", back, maxEMI)
	}
}

func TestMaxLoanForEMIZeroRate(t *testing.T) {
	if got := agent.MaxLoanForEMI(5000, 0, 12); got != 60000 {
		t.Errorf("expected 60000, got %.2f", got)
	}
}

func TestFormatINR(t *testing.T) {
	cases := map[float64]string{
		999:     "999",
		1000:    "1,000",
		300000:  "300,000",
		5000000: "5,000,000",
		13913.4: "13,913",
	}
	for in, want := range cases {
		if got := agent.FormatINR(in); got != want {
			t.Errorf("FormatINR(%v) = %q, want %q", in, got, want)
		}
	}
}
