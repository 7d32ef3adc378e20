package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/starmatch/docs"
	"github.com/GlebRadaev/starmatch/internal/domain"
	"github.com/GlebRadaev/starmatch/internal/service/adminservice"
	"github.com/GlebRadaev/starmatch/internal/service/matchservice"
	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/pkg/auth"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

type AuthService interface {
	Authenticate(ctx context.Context, initData string) (string, *domain.User, error)
}

type UserService interface {
	GetUser(ctx context.Context, telegramID int64) (*domain.User, error)
	GetOrCreate(ctx context.Context, attrs userservice.NewUserAttrs, referralCode string) (*domain.User, bool, error)
	UpdateProfile(ctx context.Context, telegramID int64, update userservice.ProfileUpdate) (*domain.User, error)
	RecordLogin(ctx context.Context, telegramID int64) (*domain.User, error)
}

type MatchService interface {
	RandomMatch(ctx context.Context, telegramID int64) (*matchservice.Result, error)
	FilteredMatch(ctx context.Context, telegramID int64, filters *domain.MatchFilters) (*matchservice.Result, error)
	React(ctx context.Context, matchID int, telegramID int64, reaction string) (*domain.Match, error)
	ListMatches(ctx context.Context, telegramID int64) ([]domain.Match, error)
}

type PaymentService interface {
	CreateInvoice(ctx context.Context, telegramID int64, amount int) (string, error)
	HandleSuccessfulPayment(ctx context.Context, telegramID int64, payload, chargeID string, amount int) error
}

type AdminService interface {
	IsAdmin(telegramID int64) bool
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	Stats(ctx context.Context) (*adminservice.Stats, error)
}

type BotClient interface {
	SendMessage(chatID int64, text string) error
	AnswerPreCheckoutQuery(queryID string, ok bool) error
}

type Handler struct {
	authService    AuthService
	userService    UserService
	matchService   MatchService
	paymentService PaymentService
	adminService   AdminService
	botClient      BotClient
	jwtService     auth.JWTServiceInterface
	webhookSecret  string
	validator      *validator.Validate
}

func New(
	authService AuthService,
	userService UserService,
	matchService MatchService,
	paymentService PaymentService,
	adminService AdminService,
	botClient BotClient,
	jwtService auth.JWTServiceInterface,
	webhookSecret string,
) *Handler {
	return &Handler{
		authService:    authService,
		userService:    userService,
		matchService:   matchService,
		paymentService: paymentService,
		adminService:   adminService,
		botClient:      botClient,
		jwtService:     jwtService,
		webhookSecret:  webhookSecret,
		validator:      validator.New(),
	}
}

func (h *Handler) InitRoutes(r *chi.Mux) {
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth", h.Auth)
		r.Post("/bot/webhook", h.BotWebhook)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.jwtService))

			r.Get("/user", h.GetProfile)
			r.Put("/user", h.UpdateProfile)
			r.Post("/match/random", h.RandomMatch)
			r.Post("/match/filtered", h.FilteredMatch)
			r.Post("/match/{id}/react", h.React)
			r.Get("/matches", h.ListMatches)
			r.Post("/payment/invoice", h.CreateInvoice)

			r.Route("/admin", func(r chi.Router) {
				r.Use(h.adminOnly)
				r.Get("/users", h.AdminUsers)
				r.Get("/transactions", h.AdminTransactions)
				r.Get("/stats", h.AdminStats)
			})
		})
	})
}

func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		telegramID, ok := telegramIDFromContext(r)
		if !ok || !h.adminService.IsAdmin(telegramID) {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func telegramIDFromContext(r *http.Request) (int64, bool) {
	telegramID, ok := r.Context().Value(auth.TelegramIDKey).(int64)
	return telegramID, ok
}
