package agent_test

import (
	"strings"
	"testing"

	"github.com/unclebandit/loanchat-backend/internal/session"
)

func TestVerificationRejectsBadPhone(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	env.drive(t, sess, "", "300000", "24", "yes")

	for _, input := range []string{"12345", "98765432101", "98765abcde"} {
		reply := env.drive(t, sess, input)
		if !strings.Contains(reply.Message, "valid 10-digit phone number") {
			t.Errorf("input %q: expected phone re-prompt, got %q", input, reply.Message)
		}
	}
}

func TestVerificationNormalizesPhone(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	env.drive(t, sess, "", "300000", "24", "yes")

	reply := env.drive(t, sess, "98765 432-10")
	if !strings.Contains(reply.Message, "Rahul Sharma") {
		t.Fatalf("expected profile echo after normalization, got %q", reply.Message)
	}
}

func TestVerificationUnknownPhone(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	env.drive(t, sess, "", "300000", "24", "yes")

	reply := env.drive(t, sess, "9999999999")
	if !strings.Contains(reply.Message, "couldn't find your profile") {
		t.Fatalf("expected not-found message, got %q", reply.Message)
	}
	if sess.VerificationState != session.VerificationNotFound {
		t.Fatalf("expected not_found state, got %s", sess.VerificationState)
	}

	// retry with a different number
	reply = env.drive(t, sess, "yes")
	if !strings.Contains(reply.Message, "10-digit phone number") {
		t.Fatalf("expected retry prompt, got %q", reply.Message)
	}
	reply = env.drive(t, sess, "9876543210")
	if !strings.Contains(reply.Message, "Rahul Sharma") {
		t.Errorf("expected profile after retry, got %q", reply.Message)
	}
}

func TestVerificationNotFoundDeclineEndsSession(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	env.drive(t, sess, "", "300000", "24", "yes", "9999999999")

	reply := env.drive(t, sess, "no")
	if !reply.SessionEnded {
		t.Fatalf("expected session to end, got %+v", reply)
	}
}

func TestVerificationIdentityDeniedAsksAgain(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()
	env.drive(t, sess, "", "300000", "24", "yes", "9876543210")

	reply := env.drive(t, sess, "no")
	if !strings.Contains(reply.Message, "phone number again") {
		t.Fatalf("expected re-ask for phone, got %q", reply.Message)
	}
	if sess.Customer != nil {
		t.Error("expected customer to be cleared")
	}
	if sess.InterestRate != session.DefaultInterestRate {
		t.Errorf("expected interest rate reset, got %v", sess.InterestRate)
	}
}
