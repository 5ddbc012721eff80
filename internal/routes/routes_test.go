package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/repository"
	"github.com/ahmetcoskunkizilkaya/reportvault-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:             "test-secret",
		JWTAccessExpiry:       time.Hour,
		JWTRefreshExpiry:      7 * 24 * time.Hour,
		OTPExpiry:             10 * time.Minute,
		AdsPerBatch:           3,
		AdsRequiredForUnlock:  3,
		AdsUnlockCreditDebit:  9,
		PurchaseWebhookSecret: "hook-secret",
		AdminToken:            "admin-token",
		AdminEmails:           "boss@example.com",
		CORSOrigins:           "*",
		MediaBaseURL:          "https://cdn.example.com/",
	}
}

type mailbox struct {
	mu     sync.Mutex
	bodies []string
}

func (m *mailbox) Send(_ context.Context, _, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies = append(m.bodies, body)
	return nil
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

func (m *mailbox) lastCode(t *testing.T) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.bodies)
	code := codePattern.FindString(m.bodies[len(m.bodies)-1])
	require.NotEmpty(t, code)
	return code
}

type harness struct {
	cfg  *config.Config
	db   *gorm.DB
	app  *fiber.App
	mail *mailbox
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := testConfig()
	db := testutil.DB(t)
	store := repository.NewStore(db)
	mail := &mailbox{}

	app := NewApp(cfg)
	Setup(app, cfg, store, NewHandlers(cfg, store, mail))
	return &harness{cfg: cfg, db: db, app: app, mail: mail}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (h *harness) do(t *testing.T, method, path, token string, body interface{}, headers ...string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), "data: %s", raw)
}

func (h *harness) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      u.ID.String(),
		"email":    u.Email,
		"is_staff": u.IsStaff,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	require.NoError(t, err)
	return signed
}

func (h *harness) login(t *testing.T, email string) string {
	t.Helper()
	status, env := h.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":      email,
		"first_name": "Grace",
		"last_name":  "Hopper",
		"dob":        "1986-12-09",
		"tob":        "07:45",
		"pob":        "New York",
		"gender":     "female",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = h.do(t, http.MethodPost, "/api/auth/otp/verify", "", map[string]string{
		"email": email,
		"code":  h.mail.lastCode(t),
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var auth struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, env.Data, &auth)
	require.NotEmpty(t, auth.Access)
	return auth.Access
}

type libraryRow struct {
	ReportID     string  `json:"report_id"`
	Title        string  `json:"title"`
	IsLocked     bool    `json:"is_locked"`
	UnlockedMode *string `json:"unlocked_mode"`
	AdsCount     int     `json:"ads_count"`
}

type adsOffer struct {
	Locked      bool `json:"locked"`
	AdsRequired int  `json:"ads_required"`
	Ads         []struct {
		ID string `json:"id"`
	} `json:"ads"`
}

func TestPurchaseThroughAdUnlock(t *testing.T) {
	h := newHarness(t)
	cat := testutil.SeedCategory(t, h.db, "Astrology")
	report := testutil.SeedReport(t, h.db, cat.ID, "Birth Chart", "9.99")
	for _, title := range []string{"a", "b", "c", "d"} {
		testutil.SeedAd(t, h.db, title, 15)
	}

	token := h.login(t, "grace@example.com")

	status, env := h.do(t, http.MethodPost, "/api/cart/add", token, map[string]interface{}{
		"report_id": report.ID.String(),
	})
	require.Equal(t, http.StatusCreated, status, env.Message)

	status, env = h.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	var cart []struct {
		ReportID string `json:"report_id"`
		Quantity int    `json:"quantity"`
		Checked  bool   `json:"is_checked"`
	}
	decode(t, env.Data, &cart)
	require.Len(t, cart, 1)
	assert.Equal(t, report.ID.String(), cart[0].ReportID)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.True(t, cart[0].Checked)

	status, env = h.do(t, http.MethodPost, "/api/cart/convert", token, nil)
	require.Equal(t, http.StatusCreated, status, env.Message)
	var converted struct {
		ReportsAdded int `json:"reports_added"`
	}
	decode(t, env.Data, &converted)
	assert.Equal(t, 1, converted.ReportsAdded)

	status, env = h.do(t, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, env.Data, &cart)
	assert.Empty(t, cart)

	status, env = h.do(t, http.MethodGet, "/api/library", token, nil)
	require.Equal(t, http.StatusOK, status)
	var library []libraryRow
	decode(t, env.Data, &library)
	require.Len(t, library, 1)
	assert.True(t, library[0].IsLocked)
	assert.Nil(t, library[0].UnlockedMode)

	adsPath := "/api/reports/" + report.ID.String() + "/ads"
	status, env = h.do(t, http.MethodGet, adsPath, token, nil)
	require.Equal(t, http.StatusOK, status, env.Message)
	var offer adsOffer
	decode(t, env.Data, &offer)
	require.True(t, offer.Locked)
	assert.Equal(t, 3, offer.AdsRequired)
	require.Len(t, offer.Ads, 3)

	for i, ad := range offer.Ads {
		status, env = h.do(t, http.MethodPost, "/api/ads/complete", token, map[string]string{
			"report_id": report.ID.String(),
			"ad_id":     ad.ID,
		})
		require.Equal(t, http.StatusOK, status, env.Message)
		var done struct {
			AdCompleted       bool `json:"ad_completed"`
			AdsCompletedCount int  `json:"ads_completed_count"`
			ReportUnlocked    bool `json:"report_unlocked"`
		}
		decode(t, env.Data, &done)
		assert.True(t, done.AdCompleted)
		assert.Equal(t, i+1, done.AdsCompletedCount)
		assert.Equal(t, i == 2, done.ReportUnlocked)
	}

	status, env = h.do(t, http.MethodGet, adsPath, token, nil)
	require.Equal(t, http.StatusOK, status)
	var after adsOffer
	decode(t, env.Data, &after)
	assert.False(t, after.Locked)
	assert.Empty(t, after.Ads)

	status, env = h.do(t, http.MethodGet, "/api/library", token, nil)
	require.Equal(t, http.StatusOK, status)
	decode(t, env.Data, &library)
	require.Len(t, library, 1)
	assert.False(t, library[0].IsLocked)
	require.NotNil(t, library[0].UnlockedMode)
	assert.Equal(t, models.UnlockModeAds, *library[0].UnlockedMode)
	assert.Equal(t, 3, library[0].AdsCount)
}

func TestCartAdd_ArrayReportsPerItem(t *testing.T) {
	h := newHarness(t)
	cat := testutil.SeedCategory(t, h.db, "Numerology")
	report := testutil.SeedReport(t, h.db, cat.ID, "Life Path", "4.50")
	user := testutil.SeedUser(t, h.db, "ada@example.com")
	token := h.tokenFor(t, user)

	status, env := h.do(t, http.MethodPost, "/api/cart/add", token, []map[string]interface{}{
		{"report_id": report.ID.String(), "quantity": 2},
		{"report_id": "not-a-uuid"},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	assert.True(t, env.Status)

	var resp struct {
		Results []struct {
			Added    bool              `json:"added"`
			Quantity int               `json:"quantity"`
			Error    string            `json:"error"`
			Fields   map[string]string `json:"fields"`
		} `json:"results"`
		Cart []struct {
			Quantity int `json:"quantity"`
		} `json:"cart"`
	}
	decode(t, env.Data, &resp)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Added)
	assert.Equal(t, 2, resp.Results[0].Quantity)
	assert.False(t, resp.Results[1].Added)
	assert.Contains(t, resp.Results[1].Fields, "report_id")
	require.Len(t, resp.Cart, 1)
}

func TestCartAdd_NothingAdded(t *testing.T) {
	h := newHarness(t)
	user := testutil.SeedUser(t, h.db, "ada@example.com")
	token := h.tokenFor(t, user)

	status, env := h.do(t, http.MethodPost, "/api/cart/add", token, map[string]interface{}{
		"report_id": "6f1c2a4e-0000-4000-8000-000000000000",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Status)

	status, env = h.do(t, http.MethodPost, "/api/cart/add", token, "[]")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Status)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)

	for _, path := range []string{"/api/cart", "/api/library"} {
		status, env := h.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.False(t, env.Status)
		assert.Equal(t, "Unauthorized: invalid or expired token", env.Message)
	}
}

func TestCatalogIsPublicAndHidesInactive(t *testing.T) {
	h := newHarness(t)
	cat := testutil.SeedCategory(t, h.db, "Tarot")
	visible := testutil.SeedReport(t, h.db, cat.ID, "Three Cards", "3.00")
	hidden := testutil.SeedReport(t, h.db, cat.ID, "Celtic Cross", "7.00")
	hidden.Active = false
	require.NoError(t, h.db.Omit("Category").Save(hidden).Error)

	status, env := h.do(t, http.MethodGet, "/api/reports?category_id="+cat.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, status)
	var reports []struct {
		ID string `json:"id"`
	}
	decode(t, env.Data, &reports)
	require.Len(t, reports, 1)
	assert.Equal(t, visible.ID.String(), reports[0].ID)

	status, _ = h.do(t, http.MethodGet, "/api/reports/"+hidden.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = h.do(t, http.MethodGet, "/api/reports?category_id=nope", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Status)
}

func TestAdminAccess(t *testing.T) {
	h := newHarness(t)
	plain := testutil.SeedUser(t, h.db, "plain@example.com")
	staff := testutil.SeedUser(t, h.db, "staff@example.com")
	require.NoError(t, h.db.Model(staff).Update("is_staff", true).Error)
	listed := testutil.SeedUser(t, h.db, "boss@example.com")

	status, env := h.do(t, http.MethodGet, "/api/admin/users", h.tokenFor(t, plain), nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, env.Status)

	status, _ = h.do(t, http.MethodGet, "/api/admin/users", h.tokenFor(t, staff), nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodGet, "/api/admin/users", h.tokenFor(t, listed), nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodGet, "/api/admin/users", h.tokenFor(t, plain), nil, "X-Admin-Token", "admin-token")
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminCategoryLifecycle(t *testing.T) {
	h := newHarness(t)
	staff := testutil.SeedUser(t, h.db, "staff@example.com")
	require.NoError(t, h.db.Model(staff).Update("is_staff", true).Error)
	token := h.tokenFor(t, staff)

	status, env := h.do(t, http.MethodPost, "/api/admin/report-categories", token, map[string]interface{}{
		"name":       "Vedic",
		"short_desc": "Vedic charts",
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var created struct {
		ID string `json:"id"`
	}
	decode(t, env.Data, &created)

	status, _ = h.do(t, http.MethodGet, "/api/report-categories/"+created.ID, "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodDelete, "/api/admin/report-categories/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = h.do(t, http.MethodGet, "/api/report-categories/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, env = h.do(t, http.MethodGet, "/api/admin/report-categories?is_deleted=true", token, nil)
	require.Equal(t, http.StatusOK, status)
	var deleted []struct {
		ID string `json:"id"`
	}
	decode(t, env.Data, &deleted)
	require.Len(t, deleted, 1)
	assert.Equal(t, created.ID, deleted[0].ID)

	status, env = h.do(t, http.MethodPost, "/api/admin/report-categories", token, map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
	var fields map[string]string
	decode(t, env.Data, &fields)
	assert.Contains(t, fields, "name")
}

func TestPurchaseWebhook(t *testing.T) {
	h := newHarness(t)
	cat := testutil.SeedCategory(t, h.db, "Astrology")
	report := testutil.SeedReport(t, h.db, cat.ID, "Transit", "12.00")
	user := testutil.SeedUser(t, h.db, "ada@example.com")
	g := testutil.SeedGeneratedReport(t, h.db, user.ID, report)

	payload := map[string]interface{}{
		"api_version": "1.0",
		"event": map[string]interface{}{
			"type":                "PURCHASE_CONFIRMED",
			"id":                  "evt_1",
			"generated_report_id": g.ID.String(),
			"paid_amount":         "12.00",
			"transaction_id":      "txn_1",
		},
	}

	status, _ := h.do(t, http.MethodPost, "/api/webhooks/purchases", "", payload, "Authorization", "wrong")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := h.do(t, http.MethodPost, "/api/webhooks/purchases", "", payload, "Authorization", "hook-secret")
	require.Equal(t, http.StatusOK, status, env.Message)
	var resp struct {
		Applied      bool    `json:"applied"`
		IsLocked     *bool   `json:"is_locked"`
		UnlockedMode *string `json:"unlocked_mode"`
	}
	decode(t, env.Data, &resp)
	assert.True(t, resp.Applied)
	require.NotNil(t, resp.IsLocked)
	assert.False(t, *resp.IsLocked)
	require.NotNil(t, resp.UnlockedMode)
	assert.Equal(t, models.UnlockModePayment, *resp.UnlockedMode)

	status, env = h.do(t, http.MethodPost, "/api/webhooks/purchases", "", payload, "Authorization", "hook-secret")
	require.Equal(t, http.StatusOK, status)
	decode(t, env.Data, &resp)
	assert.False(t, resp.Applied)
}

func TestHealth(t *testing.T) {
	h := newHarness(t)
	status, env := h.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)
}
