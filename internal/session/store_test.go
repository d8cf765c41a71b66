package session_test

import (
	"testing"

	"github.com/unclebandit/loanchat-backend/internal/session"
)

func TestStoreCreateAndGet(t *testing.T) {
	store := session.NewStore()

	sess := store.Create()
	if sess.ID == "" {
		t.Fatal("expected a session id")
	}
	if sess.Stage != session.StageGreeting {
		t.Errorf("expected greeting stage, got %s", sess.Stage)
	}
	if sess.InterestRate != session.DefaultInterestRate {
		t.Errorf("expected default interest rate, got %v", sess.InterestRate)
	}

	got, ok := store.Get(sess.ID)
	if !ok || got != sess {
		t.Fatal("expected to get back the same session")
	}
}

func TestStoreCreateUniqueIDs(t *testing.T) {
	store := session.NewStore()
	a := store.Create()
	b := store.Create()
	if a.ID == b.ID {
		t.Errorf("expected unique ids, both were %s", a.ID)
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 sessions, got %d", store.Count())
	}
}

func TestStoreGetUnknown(t *testing.T) {
	store := session.NewStore()
	if _, ok := store.Get("nope"); ok {
		t.Error("expected miss for unknown id")
	}
}

func TestStoreDelete(t *testing.T) {
	store := session.NewStore()
	sess := store.Create()
	store.Delete(sess.ID)
	if _, ok := store.Get(sess.ID); ok {
		t.Error("expected session to be gone after delete")
	}
	// deleting twice is a no-op
	store.Delete(sess.ID)
}
