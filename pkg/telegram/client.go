package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Button é um botão inline enviado com a mensagem.
type Button struct {
	Text string
	Data string
}

// Message é uma mensagem de saída: texto e, opcionalmente, um teclado de
// respostas rápidas ou botões inline.
type Message struct {
	ChatID   int64
	Text     string
	Keyboard [][]string
	Buttons  []Button
}

// Client envia mensagens pela Bot API do Telegram.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient cria um cliente para o token informado.
func NewClient(token string) *Client {
	return &Client{
		token:   token,
		baseURL: "https://api.telegram.org",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type replyKeyboard struct {
	Keyboard       [][]keyButton `json:"keyboard"`
	ResizeKeyboard bool          `json:"resize_keyboard"`
}

type keyButton struct {
	Text string `json:"text"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

type inlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

// SendMessage envia uma mensagem para o chat.
func (c *Client) SendMessage(ctx context.Context, msg Message) error {
	payload := map[string]any{
		"chat_id": msg.ChatID,
		"text":    msg.Text,
	}

	if len(msg.Keyboard) > 0 {
		kb := replyKeyboard{ResizeKeyboard: true}
		for _, row := range msg.Keyboard {
			var buttons []keyButton
			for _, label := range row {
				buttons = append(buttons, keyButton{Text: label})
			}
			kb.Keyboard = append(kb.Keyboard, buttons)
		}
		payload["reply_markup"] = kb
	} else if len(msg.Buttons) > 0 {
		var row []inlineButton
		for _, b := range msg.Buttons {
			row = append(row, inlineButton{Text: b.Text, CallbackData: b.Data})
		}
		payload["reply_markup"] = inlineKeyboard{InlineKeyboard: [][]inlineButton{row}}
	}

	return c.post(ctx, "sendMessage", payload)
}

// AnswerCallback confirma o recebimento de um callback de botão inline.
func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	return c.post(ctx, "answerCallbackQuery", map[string]any{
		"callback_query_id": callbackID,
	})
}

// SetWebhook registra a URL de webhook na Bot API.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.post(ctx, "setWebhook", map[string]any{"url": url})
}

func (c *Client) post(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao montar payload de %s: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("erro ao criar requisição de %s: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao chamar %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram %s retornou status %s: %s", method, resp.Status, string(respBody))
	}
	return nil
}
