// Package sanction renders the PDF sanction letter for approved loans.
package sanction

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/unclebandit/loanchat-backend/internal/session"
)

// Generator writes sanction letters into the uploads directory
type Generator struct {
	UploadsDir string
}

// Letter describes a generated sanction letter
type Letter struct {
	Filename string
	Filepath string
	Message  string
}

// Generate builds the PDF for an approved session and returns the chat
// message announcing it
func (g *Generator) Generate(sess *session.Session) (*Letter, error) {
	customer := sess.Customer
	if customer == nil {
		return nil, fmt.Errorf("cannot generate sanction letter without a customer")
	}

	amount := sess.ApprovedAmount
	if amount == 0 {
		amount = sess.LoanAmount
	}
	tenure := sess.LoanTenure
	rate := sess.InterestRate
	emi := sess.EstimatedEMI

	if err := os.MkdirAll(g.UploadsDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create uploads dir: %w", err)
	}

	now := time.Now()
	refNo := fmt.Sprintf("CFL/PL/%s/%d", now.Format("20060102"), customer.ID)
	filename := fmt.Sprintf("sanction_letter_%d_%s.pdf", customer.ID, now.Format("20060102_150405"))
	fullPath := filepath.Join(g.UploadsDir, filename)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(25, 25, 25)
	pdf.AddPage()

	// Masthead
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(26, 54, 93)
	pdf.CellFormat(0, 10, "CAPITAL FINANCE LTD.", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "(A Non-Banking Financial Company)", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(197, 48, 48)
	pdf.CellFormat(0, 8, "SANCTION LETTER", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 6, "Reference No: "+refNo, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Date: "+now.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 6, "To,", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, customer.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, customer.City, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Phone: "+customer.Phone, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Subject: Sanction of Personal Loan", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "We are pleased to inform you that your Personal Loan application has been approved. "+
		"Please find below the details of your sanctioned loan:", "", "L", false)
	pdf.Ln(4)

	totalPayable := emi * float64(tenure)
	totalInterest := totalPayable - amount

	rows := [][2]string{
		{"Loan Amount", "Rs. " + formatINR(amount)},
		{"Loan Tenure", strconv.Itoa(tenure) + " months"},
		{"Interest Rate", fmt.Sprintf("%.1f%% per annum", rate)},
		{"Monthly EMI", "Rs. " + formatINR(emi)},
		{"Total Interest Payable", "Rs. " + formatINR(totalInterest)},
		{"Total Amount Payable", "Rs. " + formatINR(totalPayable)},
		{"Processing Fee", "Nil (Waived)"},
		{"Prepayment Charges", "Nil after 6 EMIs"},
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(26, 54, 93)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(80, 8, "Particulars", "1", 0, "L", true, 0, "")
	pdf.CellFormat(70, 8, "Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFillColor(247, 250, 252)
	for _, row := range rows {
		pdf.CellFormat(80, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.CellFormat(70, 8, row[1], "1", 1, "L", true, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Terms and Conditions:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	terms := []string{
		"1. This sanction is valid for 30 days from the date of this letter.",
		"2. The loan amount will be disbursed to your registered bank account within 48 hours of document submission.",
		"3. EMI will be auto-debited from your bank account on the 5th of every month.",
		"4. Prepayment is allowed after completion of 6 EMIs without any charges.",
		"5. In case of default, penal interest of 2% per month will be charged on the overdue amount.",
		"6. This sanction is subject to the terms mentioned in the loan agreement.",
	}
	for _, term := range terms {
		pdf.MultiCell(0, 5, term, "", "L", false)
		pdf.Ln(1)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, "Please sign and return the enclosed loan agreement along with the required documents "+
		"to complete the disbursement process.", "", "L", false)
	pdf.Ln(2)
	pdf.MultiCell(0, 6, "Congratulations and thank you for choosing Capital Finance Ltd.!", "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "For Capital Finance Ltd.", "", 1, "L", false, 0, "")
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "_______________________", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, "Authorized Signatory", "", 1, "L", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 5, "This is a system-generated letter and does not require a physical signature.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(fullPath); err != nil {
		return nil, fmt.Errorf("failed to write sanction letter: %w", err)
	}

	message := fmt.Sprintf(
		"📄 Your Sanction Letter has been generated!\n\n"+
			"Reference No: %s\n"+
			"Loan Amount: ₹%s\n"+
			"Monthly EMI: ₹%s\n\n"+
			"Click the download button below to get your sanction letter.\n\n"+
			"Thank you for choosing Capital Finance Ltd. We look forward to serving you!",
		refNo, formatINR(amount), formatINR(emi),
	)

	return &Letter{
		Filename: filename,
		Filepath: fullPath,
		Message:  message,
	}, nil
}

func formatINR(v float64) string {
	n := int64(math.Round(v))
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
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
	return string(out)
}
