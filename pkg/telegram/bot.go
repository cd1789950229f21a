package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dklimov443/carminder/internal/entity"
)

type Bot struct {
	token   string
	chatID  string
	baseURL string
}

func NewBot(token, chatID string) *Bot {
	return &Bot{
		token:   token,
		chatID:  chatID,
		baseURL: "https://api.telegram.org/bot" + token,
	}
}

func (b *Bot) SendMessage(chatID, text string) error {
	endpoint := b.baseURL + "/sendMessage"

	params := url.Values{}
	params.Add("chat_id", chatID)
	params.Add("text", text)

	resp, err := http.PostForm(endpoint, params)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error: %s", resp.Status)
	}

	return nil
}

// Send implements the reminder notifier contract, mirroring the email
// channel for deployments that prefer chat notifications.
func (b *Bot) Send(ctx context.Context, toEmail string, car *entity.Car, rec *entity.ServiceRecord) error {
	text := fmt.Sprintf("Reminder for %s: %s expires on %s",
		car.DisplayName(), rec.Type.Label(), rec.ExpiryDate.String())
	return b.SendMessage(b.chatID, text)
}
