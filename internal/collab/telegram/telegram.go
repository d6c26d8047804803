// Package telegram backs the Poster and Notifier collaborator
// interfaces with the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/dealgora/dealgora/internal/domain"
)

// BotAPI is the slice of tgbotapi.BotAPI the client uses; tests swap
// in a fake.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

type Client struct {
	bot   BotAPI
	botID int64
}

// templates maps notification keys to user-facing text. Localization
// is owned by the bot layer; these are operational fallbacks.
var templates = map[string]string{
	"deal_canceled": "Deal %s was canceled (%s).",
	"deal_disputed": "Deal %s was moved to dispute (%s). An operator will review it.",
	"deal_posted":   "The creative for deal %s has been published.",
	"deal_released": "Deal %s completed, escrow has been released.",
	"deadline_soon": "Deal %s has a deadline approaching.",

	"deadline_approaching_IDLE_SOON":         "Deal %s will be canceled soon unless it moves forward.",
	"deadline_approaching_CREATIVE_SOON":     "Deal %s is waiting for its creative; the deadline is approaching.",
	"deadline_approaching_ADMIN_REVIEW_SOON": "Deal %s is waiting for review; the deadline is approaching.",
	"deadline_approaching_PAYMENT_SOON":      "Deal %s is awaiting payment; the payment window closes soon.",
	"deadline_approaching_DELIVERY_SOON":     "Deal %s is scheduled to post soon.",
}

func New(token string, timeout time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("can't create telegram bot client: %w", err)
	}
	return &Client{bot: bot, botID: bot.Self.ID}, nil
}

// NewWithBot wires a prebuilt API client; used by tests.
func NewWithBot(bot BotAPI, botID int64) *Client {
	return &Client{bot: bot, botID: botID}
}

// CheckCanPost verifies the bot still holds posting rights in the
// target channel.
func (c *Client) CheckCanPost(ctx context.Context, channelChatID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	member, err := c.bot.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: channelChatID,
			UserID: c.botID,
		},
	})
	if err != nil {
		return fmt.Errorf("can't check channel membership: %w", err)
	}
	if member.Status != "administrator" && member.Status != "creator" {
		return fmt.Errorf("bot lost posting rights in chat %d (status %s)", channelChatID, member.Status)
	}
	return nil
}

// Publish sends the deal's creative into the channel. Each call is
// at-most-once; the caller decides whether to retry.
func (c *Client) Publish(ctx context.Context, deal *domain.Deal) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg := tgbotapi.NewMessage(deal.ListingSnapshot.ChannelChatID, deal.ListingSnapshot.Terms)
	sent, err := c.bot.Send(msg)
	if err != nil {
		return 0, fmt.Errorf("can't publish creative: %w", err)
	}
	return int64(sent.MessageID), nil
}

func (c *Client) Notify(ctx context.Context, userID int64, templateKey string, args map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	text := renderTemplate(templateKey, args)
	if _, err := c.bot.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		return fmt.Errorf("can't send notification: %w", err)
	}
	return nil
}

func renderTemplate(key string, args map[string]any) string {
	dealID, _ := args["deal_id"].(string)
	reason, _ := args["reason"].(string)

	tmpl, ok := templates[key]
	if !ok {
		zap.L().Debug("unknown notification template", zap.String("key", key))
		return fmt.Sprintf(templates["deadline_soon"], dealID)
	}
	switch key {
	case "deal_canceled", "deal_disputed":
		return fmt.Sprintf(tmpl, dealID, reason)
	default:
		return fmt.Sprintf(tmpl, dealID)
	}
}
