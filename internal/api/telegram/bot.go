package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/labstack/gommon/log"

	app "agriassure/internal/application"
	"agriassure/internal/domain/entity"
)

const (
	msgStart = `👋 Hi! I check plant leaves for diseases.

📸 Send me a photo of a leaf and I will tell you whether the plant is healthy or which disease it shows.

📋 Commands:
/check — start a new check
/help — how to take a good photo
/cancel — cancel the current check`

	msgHelp = `ℹ️ How to use the bot:

1️⃣ Send /check
2️⃣ Send a photo of a single leaf
3️⃣ Get the diagnosis

💡 Tips:
• Shoot in daylight
• Fill the frame with the leaf
• Keep the photo sharp`

	msgAwaitingPhoto   = "📸 Send a photo of the leaf to check."
	msgCancelled       = "❌ Cancelled. Send /check to start again."
	msgSendPhoto       = "📸 Please send a photo of a leaf, or /help."
	msgUnknownCommand  = "❓ Unknown command. Use /help."
	msgProcessing      = "⏳ Analysing the photo..."
	msgProcessingError = "⚠️ Could not process the photo. Please try another one."
)

// botAPI is the part of tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type downloadFunc func(ctx context.Context, fileID string) ([]byte, error)

// Bot diagnoses plant photos sent over Telegram.
type Bot struct {
	api      botAPI
	sessions *app.SessionService
	download downloadFunc
}

func NewBot(token string, sessions *app.SessionService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("authorized on account %s", api.Self.UserName)

	b := &Bot{api: api, sessions: sessions}
	client := &http.Client{Timeout: 30 * time.Second}
	b.download = func(ctx context.Context, fileID string) ([]byte, error) {
		return b.downloadFile(ctx, client, api.Token, fileID)
	}
	return b, nil
}

// Run handles updates one at a time until ctx is done.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if len(msg.Photo) > 0 {
		b.handlePhoto(ctx, msg)
		return
	}
	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID

	var (
		reply string
		err   error
	)
	switch msg.Command() {
	case "start":
		_, err = b.sessions.Cancel(ctx, userID, chatID)
		reply = msgStart
	case "help":
		reply = msgHelp
	case "check":
		_, err = b.sessions.BeginCheck(ctx, userID, chatID)
		reply = msgAwaitingPhoto
	case "cancel":
		_, err = b.sessions.Cancel(ctx, userID, chatID)
		reply = msgCancelled
	default:
		reply = msgUnknownCommand
	}
	if err != nil {
		log.Errorf("chat %d: /%s: %v", chatID, msg.Command(), err)
	}
	b.sendMessage(chatID, reply)
}

func (b *Bot) handlePhoto(ctx context.Context, msg *tgbotapi.Message) {
	userID, chatID := msg.From.ID, msg.Chat.ID
	b.sendMessage(chatID, msgProcessing)

	// the last size is the largest
	photo := msg.Photo[len(msg.Photo)-1]
	data, err := b.download(ctx, photo.FileID)
	if err != nil {
		log.Errorf("chat %d: download photo: %v", chatID, err)
		if _, err := b.sessions.Cancel(ctx, userID, chatID); err != nil {
			log.Errorf("chat %d: reset session: %v", chatID, err)
		}
		b.sendMessage(chatID, msgProcessingError)
		return
	}
	log.Debugf("chat %d: received photo (%d bytes)", chatID, len(data))

	result, err := b.sessions.Diagnose(ctx, userID, chatID, data)
	if err != nil {
		log.Errorf("chat %d: diagnose: %v", chatID, err)
	}
	b.sendMessage(chatID, DiagnosisText(result))
}

// DiagnosisText is the chat reply for a cascade result.
func DiagnosisText(r entity.PredictionResult) string {
	switch r.Kind {
	case entity.ResultNonPlant:
		return "🔍 " + r.Text() + "\nThe photo does not look like a plant."
	case entity.ResultHealthy:
		return "✅ " + r.Text()
	case entity.ResultDisease:
		return "🦠 Detected: " + r.Text()
	default:
		return msgProcessingError
	}
}

func (b *Bot) downloadFile(ctx context.Context, client *http.Client, token, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Errorf("chat %d: send message: %v", chatID, err)
	}
}
