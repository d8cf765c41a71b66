package agent_test

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/unclebandit/loanchat-backend/internal/agent"
	"github.com/unclebandit/loanchat-backend/internal/model"
	"github.com/unclebandit/loanchat-backend/internal/sanction"
	"github.com/unclebandit/loanchat-backend/internal/service"
	"github.com/unclebandit/loanchat-backend/internal/session"
)

// --- Mock repositories ---

type mockCustomerRepo struct {
	customers map[string]*model.Customer
}

func (m *mockCustomerRepo) GetByID(id int) (*model.Customer, error) {
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCustomerRepo) GetByPhone(phone string) (*model.Customer, error) {
	return m.customers[phone], nil
}

func (m *mockCustomerRepo) ListAll() ([]model.Customer, error) {
	return []model.Customer{}, nil
}

type mockOfferRepo struct {
	offers map[int]*model.Offer
}

func (m *mockOfferRepo) GetByCustomerID(customerID int) (*model.Offer, error) {
	return m.offers[customerID], nil
}

type mockApplicationRepo struct {
	mu      sync.Mutex
	apps    map[int]*model.LoanApplication
	nextID  int
	updates []string
}

func (m *mockApplicationRepo) Create(a *model.LoanApplication) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a.ID = m.nextID
	m.apps[a.ID] = a
	return nil
}

func (m *mockApplicationRepo) GetByID(id int) (*model.LoanApplication, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.apps[id], nil
}

func (m *mockApplicationRepo) UpdateDecision(id int, status, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.apps[id]; ok {
		a.Status = status
		a.DecisionReason = reason
	}
	m.updates = append(m.updates, status)
	return nil
}

func (m *mockApplicationRepo) ListApplications(offset, limit int, status string) ([]*model.LoanApplication, int, error) {
	return []*model.LoanApplication{}, 0, nil
}

type mockNotificationRepo struct {
	mu      sync.Mutex
	created []*model.Notification
	nextID  int
}

func (m *mockNotificationRepo) Create(n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	n.ID = m.nextID
	m.created = append(m.created, n)
	return nil
}

func (m *mockNotificationRepo) Update(n *model.Notification) error { return nil }

func (m *mockNotificationRepo) GetByID(id int) (*model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.created {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

func (m *mockNotificationRepo) UpdateStatus(id int, status, lastError string) error { return nil }

type mockQueue struct {
	mu        sync.Mutex
	published []any
}

func (m *mockQueue) Publish(topic string, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, payload)
	return nil
}

func (m *mockQueue) Subscribe(topic string, handler func(payload any) error) error { return nil }

// --- Test harness ---

type testEnv struct {
	master   *agent.Master
	appRepo  *mockApplicationRepo
	notifs   *mockNotificationRepo
	queue    *mockQueue
	uploads  string
	sessions *session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	uploads := t.TempDir()

	customers := map[string]*model.Customer{
		"9876543210": {ID: 1, Name: "Rahul Sharma", Phone: "9876543210", City: "Mumbai", CreditScore: 780, PreapprovedLimit: 500000, Salary: 85000},
		"9988776655": {ID: 3, Name: "Amit Verma", Phone: "9988776655", City: "Delhi", CreditScore: 650, PreapprovedLimit: 200000, Salary: 45000},
		"9445566778": {ID: 5, Name: "Vikram Singh", Phone: "9445566778", City: "Jaipur", CreditScore: 705, PreapprovedLimit: 250000, Salary: 20000},
	}
	offers := map[int]*model.Offer{
		1: {ID: 1, CustomerID: 1, Product: "personal_loan", InterestRate: 10.5},
		3: {ID: 2, CustomerID: 3, Product: "personal_loan", InterestRate: 12.5},
		5: {ID: 3, CustomerID: 5, Product: "personal_loan", InterestRate: 11.5},
	}

	appRepo := &mockApplicationRepo{apps: map[int]*model.LoanApplication{}}
	notifs := &mockNotificationRepo{}
	q := &mockQueue{}

	master := &agent.Master{
		CustomerRepo: &mockCustomerRepo{customers: customers},
		OfferRepo:    &mockOfferRepo{offers: offers},
		LoanService: &service.LoanService{
			ApplicationRepo:  appRepo,
			NotificationRepo: notifs,
			Queue:            q,
		},
		Letters: &sanction.Generator{UploadsDir: uploads},
	}

	return &testEnv{
		master:   master,
		appRepo:  appRepo,
		notifs:   notifs,
		queue:    q,
		uploads:  uploads,
		sessions: session.NewStore(),
	}
}

func (e *testEnv) drive(t *testing.T, sess *session.Session, inputs ...string) *agent.Reply {
	t.Helper()
	var reply *agent.Reply
	for _, in := range inputs {
		reply = e.master.ProcessMessage(sess, in)
	}
	return reply
}

// --- Flow tests ---

func TestHappyPathWithinPreapprovedLimit(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	reply := env.drive(t, sess, "")
	if !strings.Contains(reply.Message, "Welcome to our Personal Loan service") {
		t.Fatalf("expected greeting, got %q", reply.Message)
	}

	reply = env.drive(t, sess, "300000", "24", "yes", "9876543210", "yes")
	if !strings.Contains(reply.Message, "APPROVED") {
		t.Fatalf("expected approval message, got %q", reply.Message)
	}
	if !reply.ShowDownload || reply.DownloadFile == "" {
		t.Fatalf("expected sanction letter download, got %+v", reply)
	}
	if sess.Stage != session.StageCompleted {
		t.Errorf("expected stage completed, got %s", sess.Stage)
	}

	// sanction letter written to disk
	info, err := os.Stat(filepath.Join(env.uploads, reply.DownloadFile))
	if err != nil {
		t.Fatalf("sanction letter missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("sanction letter is empty")
	}

	// decision persisted and notification queued
	if len(env.appRepo.apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(env.appRepo.apps))
	}
	for _, a := range env.appRepo.apps {
		if a.Status != "approved" {
			t.Errorf("expected application approved, got %s", a.Status)
		}
	}
	if len(env.queue.published) != 1 {
		t.Errorf("expected 1 queued notification, got %d", len(env.queue.published))
	}
}

func TestSalarySlipFlowApproves(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	reply := env.drive(t, sess, "", "600000", "24", "yes", "9876543210", "yes")
	if !reply.ShowUpload {
		t.Fatalf("expected salary slip request, got %+v", reply)
	}
	if sess.UnderwritingState != session.UnderwritingAwaitingSalarySlip {
		t.Fatalf("expected awaiting_salary_slip, got %s", sess.UnderwritingState)
	}

	// a nudge while waiting keeps asking for the upload
	reply = env.drive(t, sess, "hello?")
	if !reply.ShowUpload {
		t.Errorf("expected re-prompt for upload, got %+v", reply)
	}

	sess.SalarySlipUploaded = true
	reply = env.master.ProcessSalaryUpload(sess)
	if !strings.Contains(reply.Message, "APPROVED") {
		t.Fatalf("expected approval after salary verification, got %q", reply.Message)
	}
	if !reply.ShowDownload {
		t.Error("expected sanction letter download after approval")
	}

	// pending_verification first, then updated to approved
	if len(env.appRepo.updates) != 1 || env.appRepo.updates[0] != "approved" {
		t.Errorf("expected one update to approved, got %v", env.appRepo.updates)
	}
}

func TestSalarySlipFlowRejectsHighEMI(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	// Vikram: limit 250000, salary 20000. 400000 needs a slip, then fails the ratio.
	reply := env.drive(t, sess, "", "400000", "24", "yes", "9445566778", "yes")
	if !reply.ShowUpload {
		t.Fatalf("expected salary slip request, got %+v", reply)
	}

	sess.SalarySlipUploaded = true
	reply = env.master.ProcessSalaryUpload(sess)
	if !strings.Contains(reply.Message, "NOT APPROVED") {
		t.Fatalf("expected rejection, got %q", reply.Message)
	}
	if !reply.SessionEnded {
		t.Error("expected session to end after rejection")
	}
	if !strings.Contains(reply.Message, "Maximum loan amount") {
		t.Errorf("expected max affordable loan hint, got %q", reply.Message)
	}
}

func TestLowCreditScoreRejects(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	reply := env.drive(t, sess, "", "100000", "24", "yes", "9988776655", "yes")
	if !strings.Contains(reply.Message, "credit score") {
		t.Fatalf("expected credit score rejection, got %q", reply.Message)
	}
	if !reply.SessionEnded {
		t.Error("expected session to end")
	}
	if sess.Stage != session.StageEnded {
		t.Errorf("expected stage ended, got %s", sess.Stage)
	}
}

func TestAboveTwiceLimitRejects(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	reply := env.drive(t, sess, "", "2000000", "24", "yes", "9876543210", "yes")
	if !strings.Contains(reply.Message, "maximum eligible") {
		t.Fatalf("expected max-eligibility rejection, got %q", reply.Message)
	}
	if !reply.SessionEnded {
		t.Error("expected session to end")
	}
}

func TestUserCancelEndsSession(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	reply := env.drive(t, sess, "", "300000", "24", "no")
	if !reply.SessionEnded {
		t.Fatalf("expected session ended on cancel, got %+v", reply)
	}

	reply = env.drive(t, sess, "hello")
	if !strings.Contains(reply.Message, "conversation has ended") {
		t.Errorf("expected ended message, got %q", reply.Message)
	}
}

func TestCompletedSessionKeepsDownloadAvailable(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	env.drive(t, sess, "", "300000", "24", "yes", "9876543210", "yes")
	reply := env.drive(t, sess, "thanks")
	if !reply.ShowDownload || reply.DownloadFile == "" {
		t.Errorf("expected download to remain available, got %+v", reply)
	}
}

func TestOfferRateOverridesDefault(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create()

	env.drive(t, sess, "", "100000", "24", "yes", "9988776655")
	if sess.InterestRate != 12.5 {
		t.Errorf("expected offer rate 12.5, got %v", sess.InterestRate)
	}
}
