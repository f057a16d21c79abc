package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"churchconnect/internal/models"
)

// TelegramService pushes back-office alerts to the super-admin chat.
// Constructed with an empty token it degrades to a no-op, so local setups
// work without a bot.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, adminChatID int64) *TelegramService {
	if botToken == "" || adminChatID == 0 {
		log.Printf("[tg] no token or chat id, alerts disabled")
		return &TelegramService{}
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] bot init failed, alerts disabled: %v", err)
		return &TelegramService{}
	}
	return &TelegramService{bot: bot, chatID: adminChatID}
}

func (t *TelegramService) BookingRequested(b *models.Booking) error {
	text := fmt.Sprintf("New booking request %s\nchurch=%d service=%d date=%s",
		b.RefCode, b.ChurchID, b.ServiceID, b.Date.Format("2006-01-02"))
	return t.send(text)
}

func (t *TelegramService) send(text string) error {
	if t.bot == nil {
		return nil
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
