package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// messageSender *tgbotapi.BotAPI 满足该接口
type messageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramPublisher 只转发公告和设置变更，投票事件太频繁不发到群里
type TelegramPublisher struct {
	bot    messageSender
	chatID int64
}

func NewTelegramPublisher(token string, chatID int64) (*TelegramPublisher, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramPublisher{bot: bot, chatID: chatID}, nil
}

func (p *TelegramPublisher) Publish(ctx context.Context, _ string, ev Event) error {
	text, ok := telegramText(ev)
	if !ok {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.bot.Send(tgbotapi.NewMessage(p.chatID, text))
	return err
}

// telegramFields 公告和设置两种 payload 的字段并集
type telegramFields struct {
	Message         string `json:"message"`
	IsVotingEnabled *bool  `json:"is_voting_enabled"`
	MaxVotesPerUser int    `json:"max_votes_per_user"`
	VotingMode      string `json:"voting_mode"`
}

func telegramText(ev Event) (string, bool) {
	if ev.Type != TypeBroadcast && ev.Type != TypeSettingsChanged {
		return "", false
	}
	raw, err := json.Marshal(ev.Data)
	if err != nil {
		return "", false
	}
	var f telegramFields
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", false
	}

	if ev.Type == TypeBroadcast {
		if strings.TrimSpace(f.Message) == "" {
			return "", false
		}
		return "📢 " + f.Message, true
	}
	state := "关闭"
	if f.IsVotingEnabled != nil && *f.IsVotingEnabled {
		state = "开放"
	}
	return fmt.Sprintf("投票设置已更新：投票%s，每人 %d 票，模式 %s", state, f.MaxVotesPerUser, f.VotingMode), true
}
