package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/dto"
	"github.com/GlebRadaev/starmatch/internal/service/adminservice"
	"github.com/GlebRadaev/starmatch/internal/service/matchservice"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/pkg/auth"
)

type mocks struct {
	authService    *MockAuthService
	userService    *MockUserService
	matchService   *MockMatchService
	paymentService *MockPaymentService
	adminService   *MockAdminService
	botClient      *MockBotClient
}

func setupTest(t *testing.T) (*Handler, *mocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &mocks{
		authService:    NewMockAuthService(ctrl),
		userService:    NewMockUserService(ctrl),
		matchService:   NewMockMatchService(ctrl),
		paymentService: NewMockPaymentService(ctrl),
		adminService:   NewMockAdminService(ctrl),
		botClient:      NewMockBotClient(ctrl),
	}
	jwtService := auth.NewMockJWTServiceInterface(ctrl)
	h := New(m.authService, m.userService, m.matchService, m.paymentService, m.adminService, m.botClient, jwtService, "hook-secret")
	return h, m
}

func authedRequest(method, target string, body []byte, telegramID int64) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), auth.TelegramIDKey, telegramID)
	return req.WithContext(ctx)
}

func TestHandler_Auth(t *testing.T) {
	t.Run("returns token and profile", func(t *testing.T) {
		h, m := setupTest(t)

		m.authService.EXPECT().Authenticate(gomock.Any(), "init-data").
			Return("token-123", &domain.User{TelegramID: 100, Username: "alice"}, nil)

		body, _ := json.Marshal(dto.AuthRequestDTO{InitData: "init-data"})
		w := httptest.NewRecorder()
		h.Auth(w, httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader(body)))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.AuthResponseDTO
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "token-123", resp.Token)
		assert.Equal(t, int64(100), resp.User.TelegramID)
	})

	t.Run("invalid init data", func(t *testing.T) {
		h, m := setupTest(t)

		m.authService.EXPECT().Authenticate(gomock.Any(), "garbage").
			Return("", nil, auth.ErrInvalidInitData)

		body, _ := json.Marshal(dto.AuthRequestDTO{InitData: "garbage"})
		w := httptest.NewRecorder()
		h.Auth(w, httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader(body)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing init data", func(t *testing.T) {
		h, _ := setupTest(t)

		w := httptest.NewRecorder()
		h.Auth(w, httptest.NewRequest(http.MethodPost, "/api/auth", bytes.NewReader([]byte(`{}`))))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetProfile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, m := setupTest(t)

		m.userService.EXPECT().GetUser(gomock.Any(), int64(100)).
			Return(&domain.User{TelegramID: 100, StarsBalance: 20}, nil)

		w := httptest.NewRecorder()
		h.GetProfile(w, authedRequest(http.MethodGet, "/api/user", nil, 100))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("not found", func(t *testing.T) {
		h, m := setupTest(t)

		m.userService.EXPECT().GetUser(gomock.Any(), int64(100)).Return(nil, userservice.ErrUserNotFound)

		w := httptest.NewRecorder()
		h.GetProfile(w, authedRequest(http.MethodGet, "/api/user", nil, 100))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("no identity in context", func(t *testing.T) {
		h, _ := setupTest(t)

		w := httptest.NewRecorder()
		h.GetProfile(w, httptest.NewRequest(http.MethodGet, "/api/user", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestHandler_UpdateProfile(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, m := setupTest(t)

		m.userService.EXPECT().UpdateProfile(gomock.Any(), int64(100), gomock.Any()).
			Return(&domain.User{TelegramID: 100, Age: 30}, nil)

		body := []byte(`{"age": 30, "location": "Berlin"}`)
		w := httptest.NewRecorder()
		h.UpdateProfile(w, authedRequest(http.MethodPut, "/api/user", body, 100))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("underage", func(t *testing.T) {
		h, _ := setupTest(t)

		body := []byte(`{"age": 15}`)
		w := httptest.NewRecorder()
		h.UpdateProfile(w, authedRequest(http.MethodPut, "/api/user", body, 100))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad gender", func(t *testing.T) {
		h, _ := setupTest(t)

		body := []byte(`{"gender": "robot"}`)
		w := httptest.NewRecorder()
		h.UpdateProfile(w, authedRequest(http.MethodPut, "/api/user", body, 100))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_RandomMatch(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().RandomMatch(gomock.Any(), int64(100)).Return(&matchservice.Result{
			Found: true,
			Match: &domain.Match{ID: 11, MatchType: domain.MatchTypeRandom, Status: domain.MatchStatusPending},
		}, nil)

		w := httptest.NewRecorder()
		h.RandomMatch(w, authedRequest(http.MethodPost, "/api/match/random", nil, 100))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.MatchResponseDTO
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Found)
		assert.Equal(t, 11, resp.Match.ID)
	})

	t.Run("none available", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().RandomMatch(gomock.Any(), int64(100)).Return(&matchservice.Result{Found: false}, nil)

		w := httptest.NewRecorder()
		h.RandomMatch(w, authedRequest(http.MethodPost, "/api/match/random", nil, 100))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.MatchResponseDTO
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Found)
		assert.NotEmpty(t, resp.Message)
	})
}

func TestHandler_FilteredMatch(t *testing.T) {
	body := []byte(`{"filters": {"gender": "female", "ageRange": {"min": 25, "max": 35}}}`)

	t.Run("passes filters through", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().FilteredMatch(gomock.Any(), int64(100), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, filters *domain.MatchFilters) (*matchservice.Result, error) {
				assert.Equal(t, domain.GenderFemale, filters.Gender)
				assert.Equal(t, 25, filters.AgeRange.Min)
				return &matchservice.Result{Found: true, Charged: true, Match: &domain.Match{ID: 11}}, nil
			})

		w := httptest.NewRecorder()
		h.FilteredMatch(w, authedRequest(http.MethodPost, "/api/match/filtered", body, 100))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().FilteredMatch(gomock.Any(), int64(100), gomock.Any()).
			Return(nil, matchservice.ErrInsufficientBalance)

		w := httptest.NewRecorder()
		h.FilteredMatch(w, authedRequest(http.MethodPost, "/api/match/filtered", body, 100))

		assert.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("charged but nothing found", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().FilteredMatch(gomock.Any(), int64(100), gomock.Any()).
			Return(&matchservice.Result{Found: false, Charged: true}, nil)

		w := httptest.NewRecorder()
		h.FilteredMatch(w, authedRequest(http.MethodPost, "/api/match/filtered", body, 100))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.MatchResponseDTO
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Found)
		assert.True(t, resp.Charged)
	})

	t.Run("invalid age range", func(t *testing.T) {
		h, _ := setupTest(t)

		bad := []byte(`{"filters": {"ageRange": {"min": 30, "max": 20}}}`)
		w := httptest.NewRecorder()
		h.FilteredMatch(w, authedRequest(http.MethodPost, "/api/match/filtered", bad, 100))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func reactRequest(t *testing.T, h *Handler, matchID string, body []byte, telegramID int64) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Post("/api/match/{id}/react", h.React)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(http.MethodPost, "/api/match/"+matchID+"/react", body, telegramID))
	return w
}

func TestHandler_React(t *testing.T) {
	body := []byte(`{"reaction": "interested"}`)

	t.Run("ok", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().React(gomock.Any(), 11, int64(100), domain.ReactionInterested).
			Return(&domain.Match{ID: 11, Status: domain.MatchStatusAccepted}, nil)

		w := reactRequest(t, h, "11", body, 100)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("double reaction conflicts", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().React(gomock.Any(), 11, int64(100), domain.ReactionInterested).
			Return(nil, matchservice.ErrAlreadyReacted)

		w := reactRequest(t, h, "11", body, 100)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("match not found", func(t *testing.T) {
		h, m := setupTest(t)

		m.matchService.EXPECT().React(gomock.Any(), 11, int64(100), domain.ReactionInterested).
			Return(nil, matchservice.ErrMatchNotFound)

		w := reactRequest(t, h, "11", body, 100)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		h, _ := setupTest(t)

		w := reactRequest(t, h, "abc", body, 100)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown reaction", func(t *testing.T) {
		h, _ := setupTest(t)

		w := reactRequest(t, h, "11", []byte(`{"reaction": "maybe"}`), 100)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_CreateInvoice(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		h, m := setupTest(t)

		m.paymentService.EXPECT().CreateInvoice(gomock.Any(), int64(100), 50).
			Return("https://t.me/invoice/abc", nil)

		body := []byte(`{"amount": 50, "description": "50 Stars top-up"}`)
		w := httptest.NewRecorder()
		h.CreateInvoice(w, authedRequest(http.MethodPost, "/api/payment/invoice", body, 100))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.InvoiceResponseDTO
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://t.me/invoice/abc", resp.InvoiceURL)
	})

	t.Run("zero amount", func(t *testing.T) {
		h, _ := setupTest(t)

		body := []byte(`{"amount": 0, "description": "nothing"}`)
		w := httptest.NewRecorder()
		h.CreateInvoice(w, authedRequest(http.MethodPost, "/api/payment/invoice", body, 100))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_AdminOnly(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		h, m := setupTest(t)

		m.adminService.EXPECT().IsAdmin(int64(42)).Return(true)

		w := httptest.NewRecorder()
		h.adminOnly(next).ServeHTTP(w, authedRequest(http.MethodGet, "/api/admin/stats", nil, 42))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		h, m := setupTest(t)

		m.adminService.EXPECT().IsAdmin(int64(100)).Return(false)

		w := httptest.NewRecorder()
		h.adminOnly(next).ServeHTTP(w, authedRequest(http.MethodGet, "/api/admin/stats", nil, 100))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandler_AdminStats(t *testing.T) {
	h, m := setupTest(t)

	m.adminService.EXPECT().Stats(gomock.Any()).Return(&adminservice.Stats{
		TotalUsers: 10, ActiveUsers: 8, TotalMatches: 5, TotalTransactions: 7, TotalRevenue: 120,
	}, nil)

	w := httptest.NewRecorder()
	h.AdminStats(w, authedRequest(http.MethodGet, "/api/admin/stats", nil, 42))

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.StatsResponseDTO
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(120), resp.TotalRevenue)
}

func webhookRequest(body []byte, secret string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/bot/webhook", bytes.NewReader(body))
	if secret != "" {
		req.Header.Set(webhookSecretHeader, secret)
	}
	return req
}

func TestHandler_BotWebhook(t *testing.T) {
	t.Run("wrong secret", func(t *testing.T) {
		h, _ := setupTest(t)

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest([]byte(`{}`), "wrong"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("start with referral records login", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 1, "message": {"message_id": 1, "from": {"id": 100, "username": "alice", "first_name": "Alice"}, "chat": {"id": 100}, "text": "/start SM0000000000"}}`)

		m.userService.EXPECT().GetOrCreate(gomock.Any(), userservice.NewUserAttrs{
			TelegramID: 100, Username: "alice", FirstName: "Alice",
		}, "SM0000000000").Return(&domain.User{TelegramID: 100}, true, nil)
		m.userService.EXPECT().RecordLogin(gomock.Any(), int64(100)).
			Return(&domain.User{TelegramID: 100, DailyLoginStreak: 1}, nil)
		m.botClient.EXPECT().SendMessage(int64(100), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("pre-checkout is approved", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 2, "pre_checkout_query": {"id": "q1", "from": {"id": 100}, "currency": "XTR", "total_amount": 50, "invoice_payload": "payment_abc"}}`)

		m.botClient.EXPECT().AnswerPreCheckoutQuery("q1", true).Return(nil)

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("successful payment credits and confirms", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 3, "message": {"message_id": 2, "from": {"id": 100}, "chat": {"id": 100}, "successful_payment": {"currency": "XTR", "total_amount": 50, "invoice_payload": "payment_abc", "telegram_payment_charge_id": "charge-1"}}}`)

		m.paymentService.EXPECT().HandleSuccessfulPayment(gomock.Any(), int64(100), "payment_abc", "charge-1", 50).Return(nil)
		m.botClient.EXPECT().SendMessage(int64(100), gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("payment failure still returns ok", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 3, "message": {"message_id": 2, "from": {"id": 100}, "chat": {"id": 100}, "successful_payment": {"currency": "XTR", "total_amount": 50, "invoice_payload": "payment_abc", "telegram_payment_charge_id": "charge-1"}}}`)

		m.paymentService.EXPECT().HandleSuccessfulPayment(gomock.Any(), int64(100), "payment_abc", "charge-1", 50).
			Return(errors.New("db down"))

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("profile command replies with summary", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 4, "message": {"message_id": 3, "from": {"id": 100}, "chat": {"id": 100}, "text": "/profile"}}`)

		m.userService.EXPECT().GetUser(gomock.Any(), int64(100)).Return(&domain.User{
			TelegramID: 100, FirstName: "Alice", StarsBalance: 20, DailyLoginStreak: 3,
		}, nil)
		m.botClient.EXPECT().SendMessage(int64(100), gomock.Any()).
			DoAndReturn(func(_ int64, text string) error {
				assert.Contains(t, text, "Alice")
				assert.Contains(t, text, "20 Stars")
				return nil
			})

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("profile for unknown user suggests start", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 4, "message": {"message_id": 3, "from": {"id": 100}, "chat": {"id": 100}, "text": "/profile"}}`)

		m.userService.EXPECT().GetUser(gomock.Any(), int64(100)).Return(nil, userservice.ErrUserNotFound)
		m.botClient.EXPECT().SendMessage(int64(100), gomock.Any()).
			DoAndReturn(func(_ int64, text string) error {
				assert.Contains(t, text, "/start")
				return nil
			})

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stats command for admin", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 5, "message": {"message_id": 4, "from": {"id": 900}, "chat": {"id": 900}, "text": "/stats"}}`)

		m.adminService.EXPECT().IsAdmin(int64(900)).Return(true)
		m.adminService.EXPECT().Stats(gomock.Any()).Return(&adminservice.Stats{
			TotalUsers: 10, ActiveUsers: 8, TotalMatches: 4, TotalTransactions: 6, TotalRevenue: 120,
		}, nil)
		m.botClient.EXPECT().SendMessage(int64(900), gomock.Any()).
			DoAndReturn(func(_ int64, text string) error {
				assert.Contains(t, text, "120 Stars")
				return nil
			})

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("stats command is silent for non-admin", func(t *testing.T) {
		h, m := setupTest(t)

		body := []byte(`{"update_id": 5, "message": {"message_id": 4, "from": {"id": 100}, "chat": {"id": 100}, "text": "/stats"}}`)

		m.adminService.EXPECT().IsAdmin(int64(100)).Return(false)

		w := httptest.NewRecorder()
		h.BotWebhook(w, webhookRequest(body, "hook-secret"))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
