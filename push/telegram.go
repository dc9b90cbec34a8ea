package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/helloworldpark/tickle-upper-limit/logger"
)

// DefaultTelegramURL is the Bot API base
const DefaultTelegramURL = "https://api.telegram.org"

type telegramError struct {
	msg string
}

func newError(msg string) telegramError {
	return telegramError{msg: msg}
}

func (e telegramError) Error() string {
	return fmt.Sprintf("[Push] Error at Telegram API Client: %s", e.msg)
}

// Telegram sends messages to a single chat through a bot.
type Telegram struct {
	baseURL string
	token   string
	chatID  int64
	client  *http.Client
}

// NewTelegram returns a pusher to chatID. Empty baseURL means DefaultTelegramURL.
func NewTelegram(baseURL, token string, chatID int64) *Telegram {
	if baseURL == "" {
		baseURL = DefaultTelegramURL
	}
	return &Telegram{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: time.Second * 30},
	}
}

func (t *Telegram) api(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (t *Telegram) request(method string, body map[string]interface{}) error {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return newError(err.Error())
	}
	resp, err := t.client.Post(t.api(method), "application/json", bytes.NewBuffer(bodyBytes))
	if err != nil {
		return newError(err.Error())
	}
	defer resp.Body.Close()

	respBody, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return newError(err.Error())
	}
	var result telegramResponse
	json.Unmarshal(respBody, &result)
	if resp.StatusCode/100 != 2 {
		if result.Description != "" {
			return newError(fmt.Sprintf("%d %s", resp.StatusCode, result.Description))
		}
		return newError(fmt.Sprintf("%d", resp.StatusCode))
	}
	if !result.OK {
		return newError(result.Description)
	}
	return nil
}

// SendMessage sends msg to the chat.
func (t *Telegram) SendMessage(msg string) error {
	body := map[string]interface{}{
		"chat_id": t.chatID,
		"text":    msg,
	}
	if err := t.request("sendMessage", body); err != nil {
		return err
	}
	logger.Info("[Push] Sent message to chat %d", t.chatID)
	return nil
}
