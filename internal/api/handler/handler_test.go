package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Xojiakbar-vscode/seamstress/internal/dto"
	"github.com/Xojiakbar-vscode/seamstress/internal/model"
	"github.com/Xojiakbar-vscode/seamstress/internal/service"
	"github.com/Xojiakbar-vscode/seamstress/pkg/jwt"
	"github.com/Xojiakbar-vscode/seamstress/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult *dto.LoginResponse
	loginErr    error
	logoutErr   error
	meResult    *dto.UserResponse
	meErr       error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.LoginResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ uint) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock WorkLogService ──

type mockWorkLogService struct {
	createResult    *model.WorkLog
	createErr       error
	getResult       *model.WorkLog
	getErr          error
	updateResult    *model.WorkLog
	updateErr       error
	deleteErr       error
	listResult      []model.WorkLog
	listErr         error
	dailyResult     *dto.DailyWorkLogsResponse
	dailyErr        error
	statsResult     *dto.MonthlyStatisticsResponse
	statsErr        error
	archiveResult   *dto.ArchiveResponse
	archiveErr      error
	historiesResult []model.WorkLogHistory
	historiesErr    error
	historyResult   *model.WorkLogHistory
	historyErr      error
	deleteHistErr   error
}

func (m *mockWorkLogService) Create(_ context.Context, _ *dto.CreateWorkLogRequest) (*model.WorkLog, error) {
	return m.createResult, m.createErr
}
func (m *mockWorkLogService) GetByID(_ context.Context, _ uint) (*model.WorkLog, error) {
	return m.getResult, m.getErr
}
func (m *mockWorkLogService) Update(_ context.Context, _ uint, _ *dto.UpdateWorkLogRequest) (*model.WorkLog, error) {
	return m.updateResult, m.updateErr
}
func (m *mockWorkLogService) Delete(_ context.Context, _ uint) error {
	return m.deleteErr
}
func (m *mockWorkLogService) List(_ context.Context, _ dto.WorkLogFilter) ([]model.WorkLog, error) {
	return m.listResult, m.listErr
}
func (m *mockWorkLogService) ListByDate(_ context.Context, _ string) (*dto.DailyWorkLogsResponse, error) {
	return m.dailyResult, m.dailyErr
}
func (m *mockWorkLogService) MonthlyStatistics(_ context.Context, _, _ int) (*dto.MonthlyStatisticsResponse, error) {
	return m.statsResult, m.statsErr
}
func (m *mockWorkLogService) ArchiveAll(_ context.Context, _ *dto.ArchiveWorkLogsRequest) (*dto.ArchiveResponse, error) {
	return m.archiveResult, m.archiveErr
}
func (m *mockWorkLogService) ListHistories(_ context.Context, _ dto.WorkLogHistoryFilter) ([]model.WorkLogHistory, error) {
	return m.historiesResult, m.historiesErr
}
func (m *mockWorkLogService) ListHistoriesByUser(_ context.Context, _ uint) ([]model.WorkLogHistory, error) {
	return m.historiesResult, m.historiesErr
}
func (m *mockWorkLogService) GetHistoryByID(_ context.Context, _ uint) (*model.WorkLogHistory, error) {
	return m.historyResult, m.historyErr
}
func (m *mockWorkLogService) DeleteHistory(_ context.Context, _ uint) error {
	return m.deleteHistErr
}

// ── Mock PaymentService ──

type mockPaymentService struct {
	balanceResult   *dto.BalanceResponse
	balanceErr      error
	createResult    *model.Payment
	createErr       error
	getResult       *model.Payment
	getErr          error
	listResult      []model.Payment
	listErr         error
	archiveResult   *dto.ArchiveResponse
	archiveErr      error
	historiesResult []model.PaymentHistory
	historiesErr    error
	historyResult   *model.PaymentHistory
	historyErr      error
	deleteHistErr   error
	deleteAllCount  int64
	deleteAllErr    error
}

func (m *mockPaymentService) Balance(_ context.Context, _ uint) (*dto.BalanceResponse, error) {
	return m.balanceResult, m.balanceErr
}
func (m *mockPaymentService) Create(_ context.Context, _ *dto.CreatePaymentRequest) (*model.Payment, error) {
	return m.createResult, m.createErr
}
func (m *mockPaymentService) GetByID(_ context.Context, _ uint) (*model.Payment, error) {
	return m.getResult, m.getErr
}
func (m *mockPaymentService) List(_ context.Context, _ dto.PaymentFilter) ([]model.Payment, error) {
	return m.listResult, m.listErr
}
func (m *mockPaymentService) ArchiveMonthly(_ context.Context, _ *dto.ArchivePaymentsRequest) (*dto.ArchiveResponse, error) {
	return m.archiveResult, m.archiveErr
}
func (m *mockPaymentService) ListHistories(_ context.Context, _ dto.PaymentFilter) ([]model.PaymentHistory, error) {
	return m.historiesResult, m.historiesErr
}
func (m *mockPaymentService) GetHistoryByID(_ context.Context, _ uint) (*model.PaymentHistory, error) {
	return m.historyResult, m.historyErr
}
func (m *mockPaymentService) DeleteHistory(_ context.Context, _ uint) error {
	return m.deleteHistErr
}
func (m *mockPaymentService) DeleteAllHistories(_ context.Context) (int64, error) {
	return m.deleteAllCount, m.deleteAllErr
}

// ── Mock ReportService ──

type mockReportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockReportService) MonthlyReport(_ context.Context, _, _ int) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockReportService) UserReport(_ context.Context, _ uint, _, _ int) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}
func (m *mockReportService) ModelReport(_ context.Context, _ uint) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func setupRecorder() *httptest.ResponseRecorder {
	return httptest.NewRecorder()
}

func setAuth(c *gin.Context) {
	c.Set("user_id", uint(1))
	c.Set("role", model.RoleManager)
	c.Set("claims", &jwt.Claims{UserID: 1, Role: model.RoleManager})
}

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

func parseResponse(w *httptest.ResponseRecorder) response.Response {
	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}

// ═══════════════════════════════════════════════════════════
// AuthHandler Tests
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	mock := &mockAuthService{
		loginResult: &dto.LoginResponse{
			Token: "test-token",
			User:  dto.UserResponse{ID: 1, Email: "chen@example.com"},
		},
	}
	h := NewAuthHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "chen@example.com",
		Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 0 {
		t.Errorf("expected code 0, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", bytes.NewReader([]byte("invalid json")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "chen@example.com",
		Password: "wrong",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 11001 {
		t.Errorf("expected error code 11001, got %d", resp.Code)
	}
}

func TestAuthHandler_Login_Disabled(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrUserDisabled})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/auth/login", jsonBody(dto.LoginRequest{
		Email:    "chen@example.com",
		Password: "secret123",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		meResult: &dto.UserResponse{ID: 1, Email: "chen@example.com"},
	})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", func(c *gin.Context) {
		setAuth(c)
		h.Me(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/auth/me", nil)

	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// WorkLogHandler Tests
// ═══════════════════════════════════════════════════════════

func TestWorkLogHandler_Create_Success(t *testing.T) {
	mock := &mockWorkLogService{
		createResult: &model.WorkLog{UserID: 1, ModelID: 1, DetailID: 1, Quantity: 100},
	}
	h := NewWorkLogHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/work-logs", jsonBody(dto.CreateWorkLogRequest{
		UserID: 1, ModelID: 1, DetailID: 1, Quantity: 100,
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/work-logs", func(c *gin.Context) {
		setAuth(c)
		h.CreateWorkLog(c)
	})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}
}

func TestWorkLogHandler_Create_BadJSON(t *testing.T) {
	h := NewWorkLogHandler(&mockWorkLogService{})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/work-logs", bytes.NewReader([]byte("bad")))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/work-logs", h.CreateWorkLog)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWorkLogHandler_Get_InvalidID(t *testing.T) {
	h := NewWorkLogHandler(&mockWorkLogService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/work-logs/abc", nil)

	r := gin.New()
	r.GET("/work-logs/:id", h.GetWorkLog)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWorkLogHandler_Statistics_MissingPeriod(t *testing.T) {
	h := NewWorkLogHandler(&mockWorkLogService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/work-logs/statistics", nil) // month/year 缺失

	r := gin.New()
	r.GET("/work-logs/statistics", h.GetMonthlyStatistics)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestWorkLogHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"NotFound", service.ErrWorkLogNotFound, 404, 24001},
		{"WorkerNotFound", service.ErrWorkerNotFound, 404, 20001},
		{"ModelNotActive", service.ErrModelNotActive, 400, 24002},
		{"QuotaNotFound", service.ErrQuotaNotFound, 400, 24003},
		{"NoActiveRate", service.ErrNoActiveRate, 400, 23002},
		{"QuotaExceeded", service.ErrQuotaExceeded, 400, 24004},
		{"WindowExpired", service.ErrEditWindowExpired, 400, 24005},
		{"InternalError", errors.New("unknown"), 500, 50000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewWorkLogHandler(&mockWorkLogService{getErr: tt.err})

			w := setupRecorder()
			req := httptest.NewRequest("GET", "/work-logs/1", nil)

			r := gin.New()
			r.GET("/work-logs/:id", h.GetWorkLog)
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			resp := parseResponse(w)
			if resp.Code != tt.wantCode {
				t.Errorf("expected code %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// PaymentHandler Tests
// ═══════════════════════════════════════════════════════════

func TestPaymentHandler_Balance_Success(t *testing.T) {
	mock := &mockPaymentService{
		balanceResult: &dto.BalanceResponse{UserID: 1, Month: 7, Year: 2026, Remaining: 100000},
	}
	h := NewPaymentHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/payments/balance/1", nil)

	r := gin.New()
	r.GET("/payments/balance/:user_id", h.GetBalance)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestPaymentHandler_Create_OverPayment(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{createErr: service.ErrOverPayment})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/payments", jsonBody(dto.CreatePaymentRequest{
		UserID: 1, PaidAmount: 120000, PaymentType: "monthly",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/payments", h.CreatePayment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	resp := parseResponse(w)
	if resp.Code != 25002 {
		t.Errorf("expected code 25002, got %d", resp.Code)
	}
}

func TestPaymentHandler_Create_UserNotFound(t *testing.T) {
	h := NewPaymentHandler(&mockPaymentService{createErr: service.ErrUserNotFound})

	w := setupRecorder()
	req := httptest.NewRequest("POST", "/payments", jsonBody(dto.CreatePaymentRequest{
		UserID: 99, PaidAmount: 1000, PaymentType: "monthly",
	}))
	req.Header.Set("Content-Type", "application/json")

	r := gin.New()
	r.POST("/payments", h.CreatePayment)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler Tests
// ═══════════════════════════════════════════════════════════

func TestReportHandler_Monthly_Success(t *testing.T) {
	buf := bytes.NewBufferString("excel content")
	mock := &mockReportService{buf: buf, filename: "月度报表_2026-07.xlsx"}
	h := NewReportHandler(mock)

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/reports/monthly?month=7&year=2026", nil)

	r := gin.New()
	r.GET("/reports/monthly", h.ExportMonthlyReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	ct := w.Header().Get("Content-Type")
	if ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if w.Header().Get("Content-Disposition") == "" {
		t.Error("expected Content-Disposition header")
	}
}

func TestReportHandler_Monthly_PeriodNotClosed(t *testing.T) {
	h := NewReportHandler(&mockReportService{err: service.ErrPeriodNotClosed})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/reports/monthly?month=7&year=2026", nil)

	r := gin.New()
	r.GET("/reports/monthly", h.ExportMonthlyReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_Monthly_MissingPeriod(t *testing.T) {
	h := NewReportHandler(&mockReportService{})

	w := setupRecorder()
	req := httptest.NewRequest("GET", "/reports/monthly", nil)

	r := gin.New()
	r.GET("/reports/monthly", h.ExportMonthlyReport)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
