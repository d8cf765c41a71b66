package sanction_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unclebandit/loanchat-backend/internal/model"
	"github.com/unclebandit/loanchat-backend/internal/sanction"
	"github.com/unclebandit/loanchat-backend/internal/session"
)

func approvedSession() *session.Session {
	return &session.Session{
		ID:             "test-session",
		LoanAmount:     300000,
		ApprovedAmount: 300000,
		LoanTenure:     24,
		InterestRate:   10.5,
		EstimatedEMI:   13913.39,
		Customer: &model.Customer{
			ID:    1,
			Name:  "Rahul Sharma",
			Phone: "9876543210",
			City:  "Mumbai",
		},
	}
}

func TestGenerateWritesPDF(t *testing.T) {
	dir := t.TempDir()
	g := &sanction.Generator{UploadsDir: dir}

	letter, err := g.Generate(approvedSession())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(letter.Filename, "sanction_letter_1_") {
		t.Errorf("unexpected filename: %s", letter.Filename)
	}
	if !strings.HasSuffix(letter.Filename, ".pdf") {
		t.Errorf("expected .pdf suffix: %s", letter.Filename)
	}

	info, err := os.Stat(filepath.Join(dir, letter.Filename))
	if err != nil {
		t.Fatalf("PDF not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("PDF is empty")
	}

	if !strings.Contains(letter.Message, "Sanction Letter") {
		t.Errorf("unexpected chat message: %q", letter.Message)
	}
	if !strings.Contains(letter.Message, "CFL/PL/") {
		t.Errorf("expected reference number in message: %q", letter.Message)
	}
}

func TestGenerateFallsBackToLoanAmount(t *testing.T) {
	dir := t.TempDir()
	g := &sanction.Generator{UploadsDir: dir}

	sess := approvedSession()
	sess.ApprovedAmount = 0
	letter, err := g.Generate(sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(letter.Message, "300,000") {
		t.Errorf("expected loan amount in message: %q", letter.Message)
	}
}

func TestGenerateRequiresCustomer(t *testing.T) {
	g := &sanction.Generator{UploadsDir: t.TempDir()}
	if _, err := g.Generate(&session.Session{}); err == nil {
		t.Error("expected error without customer")
	}
}
