package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"quixbot/internal/bot"
	"quixbot/pkg/telegram"
)

// Update é o payload de webhook da Bot API do Telegram, reduzido aos
// campos que o bot consome.
type Update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		From struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"from"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
	CallbackQuery *struct {
		ID   string `json:"id"`
		From struct {
			ID        int64  `json:"id"`
			FirstName string `json:"first_name"`
		} `json:"from"`
		Message *struct {
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
		Data string `json:"data"`
	} `json:"callback_query"`
}

// Webhook recebe os updates do Telegram e os encaminha ao serviço
// conversacional.
type Webhook struct {
	bot    *bot.Service
	client *telegram.Client
}

// NewWebhook cria o handler de webhook.
func NewWebhook(b *bot.Service, client *telegram.Client) *Webhook {
	return &Webhook{bot: b, client: client}
}

// ServeHTTP implementa http.Handler para o endpoint do webhook.
func (h *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Metodo nao permitido", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Erro ao ler body", http.StatusInternalServerError)
		return
	}

	var update Update
	if err := json.Unmarshal(body, &update); err != nil {
		http.Error(w, "Erro ao decodificar a mensagem", http.StatusBadRequest)
		return
	}

	// Responde 200 imediatamente; o processamento não deve segurar o
	// webhook do Telegram.
	w.WriteHeader(http.StatusOK)

	go h.process(update)
}

func (h *Webhook) process(update Update) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch {
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			return
		}
		if err := h.client.AnswerCallback(ctx, cb.ID); err != nil {
			logrus.WithError(err).Warn("Falha ao confirmar callback")
		}
		userID := strconv.FormatInt(cb.From.ID, 10)
		h.send(ctx, cb.Message.Chat.ID, h.bot.HandleCallback(userID, cb.Data))

	case update.Message != nil:
		msg := update.Message
		userID := strconv.FormatInt(msg.From.ID, 10)

		var replies []bot.Reply
		if msg.Text == "/start" {
			replies = h.bot.HandleStart(userID, msg.From.FirstName)
		} else {
			replies = h.bot.HandleMessage(ctx, userID, msg.From.FirstName, msg.Text)
		}
		h.send(ctx, msg.Chat.ID, replies)
	}
}

func (h *Webhook) send(ctx context.Context, chatID int64, replies []bot.Reply) {
	for _, reply := range replies {
		msg := telegram.Message{
			ChatID:   chatID,
			Text:     reply.Text,
			Keyboard: reply.Keyboard,
		}
		for _, b := range reply.Buttons {
			msg.Buttons = append(msg.Buttons, telegram.Button{Text: b.Text, Data: b.Data})
		}
		if err := h.client.SendMessage(ctx, msg); err != nil {
			logrus.WithError(err).WithField("chat_id", chatID).
				Error("Falha ao enviar mensagem")
		}
	}
}
