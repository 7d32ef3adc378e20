package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/GlebRadaev/starmatch/internal/service/userservice"
	"github.com/GlebRadaev/starmatch/internal/telegram"
	"github.com/GlebRadaev/starmatch/pkg/utils"
)

const webhookSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// BotWebhook godoc
// @Summary Bot update webhook
// @Description Consumes /start commands, pre-checkout queries and successful Stars payments
// @Tags bot
// @Accept json
// @Produce json
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /api/bot/webhook [post]
func (h *Handler) BotWebhook(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecret != "" {
		got := r.Header.Get(webhookSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid update payload")
		return
	}

	// Failures are logged, not surfaced: a non-200 would make the Bot API
	// redeliver the same update.
	switch {
	case update.PreCheckoutQuery != nil:
		h.handlePreCheckout(update.PreCheckoutQuery)
	case update.Message != nil && update.Message.SuccessfulPayment != nil:
		h.handleSuccessfulPayment(r, update.Message)
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/start"):
		h.handleStart(r, update.Message)
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/profile"):
		h.handleProfile(r, update.Message)
	case update.Message != nil && strings.HasPrefix(update.Message.Text, "/stats"):
		h.handleStats(r, update.Message)
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "ok"})
}

func (h *Handler) handlePreCheckout(query *telegram.PreCheckoutQuery) {
	if err := h.botClient.AnswerPreCheckoutQuery(query.ID, true); err != nil {
		zap.L().Error("can't answer pre-checkout query", zap.String("queryID", query.ID), zap.Error(err))
	}
}

func (h *Handler) handleSuccessfulPayment(r *http.Request, msg *telegram.Message) {
	if msg.From == nil {
		return
	}
	payment := msg.SuccessfulPayment

	err := h.paymentService.HandleSuccessfulPayment(
		r.Context(), msg.From.ID,
		payment.InvoicePayload, payment.TelegramPaymentChargeID, payment.TotalAmount,
	)
	if err != nil {
		zap.L().Error("can't apply successful payment", zap.Int64("telegramID", msg.From.ID), zap.Error(err))
		return
	}

	text := fmt.Sprintf("Payment received! %d Stars added to your balance.", payment.TotalAmount)
	if err := h.botClient.SendMessage(msg.Chat.ID, text); err != nil {
		zap.L().Warn("can't send payment confirmation", zap.Int64("chatID", msg.Chat.ID), zap.Error(err))
	}
}

func (h *Handler) handleStart(r *http.Request, msg *telegram.Message) {
	if msg.From == nil {
		return
	}

	var referralCode string
	if fields := strings.Fields(msg.Text); len(fields) > 1 {
		referralCode = fields[1]
	}

	attrs := userservice.NewUserAttrs{
		TelegramID: msg.From.ID,
		Username:   msg.From.Username,
		FirstName:  msg.From.FirstName,
		LastName:   msg.From.LastName,
	}
	user, created, err := h.userService.GetOrCreate(r.Context(), attrs, referralCode)
	if err != nil {
		zap.L().Error("can't upsert user on /start", zap.Int64("telegramID", msg.From.ID), zap.Error(err))
		return
	}

	user, err = h.userService.RecordLogin(r.Context(), user.TelegramID)
	if err != nil {
		zap.L().Error("can't record login", zap.Int64("telegramID", msg.From.ID), zap.Error(err))
		return
	}

	text := fmt.Sprintf("Welcome back! Day %d of your streak.", user.DailyLoginStreak)
	if created {
		text = "Welcome to StarMatch! Open the mini-app to set up your profile."
	}
	if err := h.botClient.SendMessage(msg.Chat.ID, text); err != nil {
		zap.L().Warn("can't send greeting", zap.Int64("chatID", msg.Chat.ID), zap.Error(err))
	}
}

func (h *Handler) handleProfile(r *http.Request, msg *telegram.Message) {
	if msg.From == nil {
		return
	}

	user, err := h.userService.GetUser(r.Context(), msg.From.ID)
	if err != nil {
		zap.L().Error("can't load profile for /profile", zap.Int64("telegramID", msg.From.ID), zap.Error(err))
		if errors.Is(err, userservice.ErrUserNotFound) {
			h.reply(msg.Chat.ID, "No profile yet. Send /start to register.")
		}
		return
	}

	text := fmt.Sprintf(
		"%s\nBalance: %d Stars\nFree matches: %d\nLogin streak: %d days\nReferrals: %d",
		user.FirstName, user.StarsBalance, user.FreeMatchesEarned, user.DailyLoginStreak, user.ReferralCount,
	)
	h.reply(msg.Chat.ID, text)
}

func (h *Handler) handleStats(r *http.Request, msg *telegram.Message) {
	if msg.From == nil || !h.adminService.IsAdmin(msg.From.ID) {
		return
	}

	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		zap.L().Error("can't load stats for /stats", zap.Error(err))
		return
	}

	text := fmt.Sprintf(
		"Users: %d (%d active)\nMatches: %d\nTransactions: %d\nRevenue: %d Stars",
		stats.TotalUsers, stats.ActiveUsers, stats.TotalMatches, stats.TotalTransactions, stats.TotalRevenue,
	)
	h.reply(msg.Chat.ID, text)
}

func (h *Handler) reply(chatID int64, text string) {
	if err := h.botClient.SendMessage(chatID, text); err != nil {
		zap.L().Warn("can't send bot reply", zap.Int64("chatID", chatID), zap.Error(err))
	}
}
