package notify

import (
	"fmt"

	"shareit/internal/events"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Sender is the part of tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewTelegramSender connects to the Bot API with the given token.
func NewTelegramSender(token string, debug bool) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = debug
	return bot, nil
}

// Notifier posts booking and comment events to an operations chat.
type Notifier struct {
	sender Sender
	chatID int64
	logger *zerolog.Logger
}

func NewNotifier(sender Sender, chatID int64, logger *zerolog.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		chatID: chatID,
		logger: logger,
	}
}

// Subscribe attaches the notifier to every lifecycle event on the bus.
func (n *Notifier) Subscribe(bus *events.EventBus) {
	bus.Subscribe(n.Handle, events.AllEventTypes...)
}

func (n *Notifier) Handle(event *events.Event) error {
	text, err := formatEvent(event)
	if err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Msg("failed to format notification")
		return err
	}
	if text == "" {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.sender.Send(msg); err != nil {
		n.logger.Error().Err(err).Str("event_type", event.Type).Int64("chat_id", n.chatID).Msg("failed to send notification")
		return err
	}
	return nil
}

func formatEvent(event *events.Event) (string, error) {
	switch event.Type {
	case events.EventBookingCreated, events.EventBookingApproved, events.EventBookingRejected:
		var p events.BookingEventPayload
		if err := event.Decode(&p); err != nil {
			return "", err
		}
		period := fmt.Sprintf("%s - %s", p.Start.Format("02.01.2006 15:04"), p.End.Format("02.01.2006 15:04"))
		switch event.Type {
		case events.EventBookingCreated:
			return fmt.Sprintf("Новое бронирование #%d\nВещь: %s (#%d)\nАрендатор: %s\nПериод: %s",
				p.BookingID, p.ItemName, p.ItemID, p.BookerName, period), nil
		case events.EventBookingApproved:
			return fmt.Sprintf("Бронирование #%d подтверждено\nВещь: %s\nПериод: %s", p.BookingID, p.ItemName, period), nil
		default:
			return fmt.Sprintf("Бронирование #%d отклонено\nВещь: %s\nПериод: %s", p.BookingID, p.ItemName, period), nil
		}
	case events.EventCommentAdded:
		var p events.CommentEventPayload
		if err := event.Decode(&p); err != nil {
			return "", err
		}
		return fmt.Sprintf("Новый отзыв к вещи #%d от %s:\n%s", p.ItemID, p.AuthorName, p.Text), nil
	default:
		return "", nil
	}
}
