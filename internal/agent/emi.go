package agent

import (
	"math"
	"strconv"
)

// CalculateEMI computes the equated monthly installment with the standard
// amortization formula. annualRate is in percent per annum.
func CalculateEMI(principal, annualRate float64, tenureMonths int) float64 {
	if tenureMonths <= 0 {
		return 0
	}
	if annualRate == 0 {
		return roundTo2(principal / float64(tenureMonths))
	}
	monthlyRate := annualRate / (12 * 100)
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	emi := principal * monthlyRate * factor / (factor - 1)
	return roundTo2(emi)
}

// MaxLoanForEMI inverts the EMI formula: the largest principal whose EMI stays
// at or below maxEMI for the given rate and tenure.
func MaxLoanForEMI(maxEMI, annualRate float64, tenureMonths int) float64 {
	if tenureMonths <= 0 {
		return 0
	}
	if annualRate == 0 {
		return math.Round(maxEMI * float64(tenureMonths))
	}
	monthlyRate := annualRate / (12 * 100)
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	principal := maxEMI * (factor - 1) / (monthlyRate * factor)
	return math.Round(principal)
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatINR renders an amount with thousands separators and no decimals,
// e.g. 300000 -> "300,000".
func FormatINR(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var out []byte
		pre := len(s) % 3
		if pre > 0 {
			out = append(out, s[:pre]...)
		}
		for i := pre; i < len(s); i += 3 {
			if len(out) > 0 {
				out = append(out, ',')
			}
			out = append(out, s[i:i+3]...)
		}
		s = string(out)
	}
	if neg {
		s = "-" + s
	}
	return s
}
