package services

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/testutil"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:            "test-secret",
		JWTAccessExpiry:      time.Hour,
		JWTRefreshExpiry:     7 * 24 * time.Hour,
		OTPExpiry:            10 * time.Minute,
		AdsPerBatch:          3,
		AdsRequiredForUnlock: 3,
		AdsUnlockCreditDebit: 9,
		MediaBaseURL:         "https://cdn.example.com/media/",
	}
}

func newStore(t *testing.T) (*gorm.DB, *repository.Store) {
	t.Helper()
	db := testutil.DB(t)
	return db, repository.NewStore(db)
}

type sentMail struct {
	To, Subject, Body string
}

// recordingMailer keeps every message instead of sending it.
type recordingMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *recordingMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		t.Fatal("no mail sent")
	}
	code := codePattern.FindString(m.sent[len(m.sent)-1].Body)
	if code == "" {
		t.Fatalf("no code in mail body %q", m.sent[len(m.sent)-1].Body)
	}
	return code
}
