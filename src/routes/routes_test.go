package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Schoolhub/src/controllers"
	"Backend-Schoolhub/src/database/memory"
	"Backend-Schoolhub/src/models"
	"Backend-Schoolhub/src/services/attendance"
	"Backend-Schoolhub/src/services/fees"
	"Backend-Schoolhub/src/testutil"
	"Backend-Schoolhub/src/utils"
)

type testApp struct {
	app     *fiber.App
	token   string
	clock   *testutil.Clock
	records *memory.RecordStore
	ledger  *memory.LedgerStore
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	utils.SetJWTSecret("routes-test")
	t.Cleanup(func() { utils.SetJWTSecret("") })

	roster := memory.NewRosterStore(testutil.Students(3, "P1")...)
	roster.Put(testutil.Teacher("T-001", "Somsri"))
	records := memory.NewRecordStore()
	ledgerStore := memory.NewLedgerStore()
	locker := memory.NewKeyLocker()
	clock := testutil.NewClock(testutil.At(8, 30, 0))

	ledger := attendance.NewLedger(records, attendance.LedgerConfig{
		Locker:   locker,
		Location: testutil.Bangkok,
		Now:      clock.Now,
	})
	collector := fees.NewCollector(ledgerStore, roster, fees.CollectorConfig{Now: clock.Now})
	refresher := fees.NewSummaryRefresher(ledgerStore, roster, memory.NewSummaryCache(), nil)

	app := fiber.New()
	InitRoutes(app, Handlers{
		Attendance: controllers.NewAttendanceController(ledger, roster, memory.NewSessionStore(), locker),
		Fees:       controllers.NewFeesController(collector, ledgerStore, refresher),
		Persons:    controllers.NewPersonController(roster),
	})

	token, err := utils.GenerateJWT("T-001", "teacher", time.Hour)
	require.NoError(t, err)

	return &testApp{app: app, token: token, clock: clock, records: records, ledger: ledgerStore}
}

func (ta *testApp) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if ta.token != "" {
		req.Header.Set("Authorization", "Bearer "+ta.token)
	}

	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestHealth(t *testing.T) {
	ta := setupApp(t)
	resp, body := ta.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "API is running")
}

func TestAuthRequired(t *testing.T) {
	ta := setupApp(t)
	ta.token = ""

	for _, path := range []string{"/attendance/summary?kind=student", "/fees/summary", "/persons/S-001/badge.png"} {
		resp, _ := ta.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

func TestScanRoutes(t *testing.T) {
	t.Run("TestFirstScanThenDuplicate", func(t *testing.T) {
		ta := setupApp(t)
		scan := models.ScanRequest{Payload: "S-001", Kind: models.KindStudent}

		resp, body := ta.do(t, http.MethodPost, "/attendance/scan", scan)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var first struct {
			Scan attendance.ScanOutcome `json:"scan"`
		}
		require.NoError(t, json.Unmarshal(body, &first))
		assert.Equal(t, attendance.ScanMarked, first.Scan.Kind)
		assert.Equal(t, models.StatusPresent, first.Scan.Record.Status)
		assert.Equal(t, "T-001", first.Scan.Record.RecordedBy)

		ta.clock.Set(testutil.At(15, 0, 0))
		resp, body = ta.do(t, http.MethodPost, "/attendance/scan", scan)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var second struct {
			Scan attendance.ScanOutcome `json:"scan"`
		}
		require.NoError(t, json.Unmarshal(body, &second))
		assert.Equal(t, attendance.ScanDuplicateExit, second.Scan.Kind)
		assert.Equal(t, 1, ta.records.Len())
	})

	t.Run("TestUnknownPayload", func(t *testing.T) {
		ta := setupApp(t)
		resp, _ := ta.do(t, http.MethodPost, "/attendance/scan", models.ScanRequest{Payload: "ghost", Kind: models.KindStudent})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Zero(t, ta.records.Len())
	})

	t.Run("TestMissingKind", func(t *testing.T) {
		ta := setupApp(t)
		resp, _ := ta.do(t, http.MethodPost, "/attendance/scan", models.ScanRequest{Payload: "S-001"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("TestManualAndSummary", func(t *testing.T) {
		ta := setupApp(t)
		resp, body := ta.do(t, http.MethodPost, "/attendance/manual", models.ManualMarkRequest{
			PersonID: "S-002", Date: testutil.Date, Status: models.StatusLeave,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		resp, body = ta.do(t, http.MethodGet, "/attendance/summary?kind=student&date="+testutil.Date, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var summary models.DailyAttendanceSummary
		require.NoError(t, json.Unmarshal(body, &summary))
		assert.Equal(t, 3, summary.Registered)
		assert.Equal(t, 1, summary.Leave)
		assert.Equal(t, 2, summary.Unmarked)
	})
}

func TestSessionRoutes(t *testing.T) {
	ta := setupApp(t)

	resp, body := ta.do(t, http.MethodPost, "/attendance/sessions", models.StartSessionRequest{Kind: models.KindStudent})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var progress attendance.SessionProgress
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.Equal(t, 3, progress.Total)
	require.NotNil(t, progress.Next)
	assert.Equal(t, "S-001", progress.Next.ID)

	// สแกนผ่าน /scan พร้อม sessionId ก็เลื่อน cursor ได้
	resp, body = ta.do(t, http.MethodPost, "/attendance/scan", models.ScanRequest{
		Payload: "S-001", Kind: models.KindStudent, SessionID: progress.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	for _, id := range []string{"S-002", "S-003"} {
		resp, body = ta.do(t, http.MethodPost, "/attendance/sessions/"+progress.ID+"/confirm", models.ConfirmScanRequest{PersonID: id})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}

	resp, body = ta.do(t, http.MethodGet, "/attendance/sessions/"+progress.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &progress))
	assert.Equal(t, attendance.SessionComplete, progress.State)
	assert.Equal(t, 3, progress.Scanned)
	assert.Nil(t, progress.Next)

	resp, _ = ta.do(t, http.MethodGet, "/attendance/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFeesRoutes(t *testing.T) {
	payment := models.PaymentInstruction{
		PersonID:        "S-001",
		MonthlyFee:      testutil.Money("500"),
		PaidAmount:      testutil.Money("100"),
		NumberOfMonths:  3,
		StartMonthIndex: 0,
		VoucherNumber:   "V-1",
		PaymentMethod:   "cash",
		Date:            testutil.Date,
	}

	t.Run("TestCollectAndSummary", func(t *testing.T) {
		ta := setupApp(t)

		resp, body := ta.do(t, http.MethodPost, "/fees/collect", payment)
		require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
		var result fees.CollectResult
		require.NoError(t, json.Unmarshal(body, &result))
		assert.NotEmpty(t, result.BatchID)
		require.Len(t, result.Proration.Entries, 3)
		assert.Equal(t, "T-001", result.Proration.Entries[0].CollectedBy)

		resp, body = ta.do(t, http.MethodGet, "/fees/summary", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var summaries map[string]models.ClassFeeSummary
		require.NoError(t, json.Unmarshal(body, &summaries))
		p1 := summaries["P1"]
		assert.Equal(t, 3, p1.TotalPersonCount)
		assert.Equal(t, 1, p1.PaidPersonCount)
		assert.True(t, testutil.Money("1500").Equal(p1.TotalPaid.Add(p1.TotalDonation)), "covered %s", p1.TotalPaid.Add(p1.TotalDonation))

		resp, body = ta.do(t, http.MethodGet, "/fees/ledger?personId=S-001&limit=2", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var page struct {
			Data  []models.LedgerEntry `json:"data"`
			Total int64                `json:"total"`
		}
		require.NoError(t, json.Unmarshal(body, &page))
		assert.Len(t, page.Data, 2)
		assert.EqualValues(t, 3, page.Total)

		resp, body = ta.do(t, http.MethodGet, "/fees/ledger?page=9223372036854775807&limit=100", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		require.NoError(t, json.Unmarshal(body, &page))
		assert.Empty(t, page.Data)
		assert.EqualValues(t, 3, page.Total)
	})

	t.Run("TestPreviewDoesNotPersist", func(t *testing.T) {
		ta := setupApp(t)
		resp, body := ta.do(t, http.MethodPost, "/fees/preview", payment)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var p models.Proration
		require.NoError(t, json.Unmarshal(body, &p))
		assert.True(t, testutil.Money("1400").Equal(p.Donation))

		entries, total, err := ta.ledger.ListLedgerEntries(context.Background(), fees.LedgerFilter{})
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.Zero(t, total)
	})

	t.Run("TestInvalidMonths", func(t *testing.T) {
		ta := setupApp(t)
		bad := payment
		bad.NumberOfMonths = 13
		resp, _ := ta.do(t, http.MethodPost, "/fees/preview", bad)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("TestUnknownPerson", func(t *testing.T) {
		ta := setupApp(t)
		bad := payment
		bad.PersonID = "S-404"
		resp, _ := ta.do(t, http.MethodPost, "/fees/collect", bad)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestBadgeRoute(t *testing.T) {
	ta := setupApp(t)

	resp, body := ta.do(t, http.MethodGet, "/persons/S-001/badge.png?size=128", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(body, []byte("\x89PNG")))

	resp, _ = ta.do(t, http.MethodGet, "/persons/S-404/badge.png", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
