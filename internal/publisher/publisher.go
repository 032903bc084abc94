// Package publisher delivers formatted items to the Telegram channel. Items
// with an image go out as a photo with caption; when photo delivery fails the
// image is re-sent as an upload, and when that fails too the item falls back
// to a plain text message, whose outcome is final.
package publisher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/0x0BSoD/feedPoster/internal/markup"
	"github.com/0x0BSoD/feedPoster/internal/model"
)

const (
	// Telegram caps photo captions harder than text messages.
	PhotoCaptionLimit = 1024
	// The summary block of a message is bounded on its own.
	SummaryLimit = 800

	// Image downloads for the upload fallback are bounded so a
	// misbehaving host cannot balloon memory.
	maxImageBytes = 10 << 20
)

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Publisher struct {
	bot             Sender
	client          *http.Client
	chatID          int64
	channelUsername string
	display         string
	logger          *slog.Logger
}

// New builds a publisher for chat, which is either a public channel name
// ("@channel") or a numeric chat id.
func New(bot Sender, chat string, httpTimeout time.Duration, logger *slog.Logger) *Publisher {
	p := &Publisher{
		bot:     bot,
		client:  &http.Client{Timeout: httpTimeout},
		display: chat,
		logger:  logger,
	}

	if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
		p.chatID = id
	} else {
		p.channelUsername = chat
	}

	return p
}

// Publish sends one enriched item to the channel. It returns nil only when
// some variant of the message actually reached Telegram.
func (p *Publisher) Publish(ctx context.Context, item model.Item, summaryText, imageURL string) error {
	body := p.message(item, summaryText)

	if imageURL == "" {
		return p.sendText(body)
	}

	err := p.sendPhotoByURL(imageURL, body)
	if err == nil {
		return nil
	}
	p.logger.Info("photo by URL failed, trying upload fallback", "image", imageURL, "err", err)

	if err = p.sendPhotoUpload(ctx, imageURL, body); err == nil {
		return nil
	}
	p.logger.Info("photo upload failed, sending text message instead", "image", imageURL, "err", err)

	return p.sendText(body)
}

// message renders the HTML body: bold title, italic category, the
// feed-native timestamp, a bounded summary, the story link, and the channel
// name.
func (p *Publisher) message(item model.Item, summaryText string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b>\n", markup.EscapeHTML(item.Title))
	if item.Category != "" {
		fmt.Fprintf(&b, "\n<i>%s</i>", markup.EscapeHTML(item.Category))
	}
	if item.Published != "" {
		fmt.Fprintf(&b, "\n🕒 %s", markup.EscapeHTML(item.Published))
	}
	b.WriteString("\n")
	if summaryText != "" {
		fmt.Fprintf(&b, "\n%s", markup.Truncate(markup.EscapeHTML(summaryText), SummaryLimit))
	}
	b.WriteString("\n")
	if item.Link != "" {
		fmt.Fprintf(&b, "\n🔗 <a href=\"%s\">Read full story</a>", markup.EscapeHTML(item.Link))
	}
	if p.display != "" {
		fmt.Fprintf(&b, "\n\n ➡️ %s", markup.EscapeHTML(p.display))
	}
	b.WriteString("\n")

	return b.String()
}

func (p *Publisher) target(base *tgbotapi.BaseChat) {
	base.ChatID = p.chatID
	base.ChannelUsername = p.channelUsername
}

func (p *Publisher) sendText(body string) error {
	msg := tgbotapi.NewMessage(0, body)
	p.target(&msg.BaseChat)
	msg.ParseMode = tgbotapi.ModeHTML

	if _, err := p.bot.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (p *Publisher) sendPhotoByURL(imageURL, caption string) error {
	photo := tgbotapi.NewPhoto(0, tgbotapi.FileURL(imageURL))
	return p.sendPhoto(photo, caption)
}

// sendPhotoUpload downloads the image and re-sends it as a file upload, for
// hosts Telegram's own fetcher cannot reach.
func (p *Publisher) sendPhotoUpload(ctx context.Context, imageURL, caption string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return fmt.Errorf("build image request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	photo := tgbotapi.NewPhoto(0, tgbotapi.FileBytes{Name: imageName(resp.Header.Get("Content-Type")), Bytes: raw})
	return p.sendPhoto(photo, caption)
}

func (p *Publisher) sendPhoto(photo tgbotapi.PhotoConfig, caption string) error {
	p.target(&photo.BaseChat)
	photo.Caption = markup.Truncate(caption, PhotoCaptionLimit)
	photo.ParseMode = tgbotapi.ModeHTML

	if _, err := p.bot.Send(photo); err != nil {
		return fmt.Errorf("send photo: %w", err)
	}
	return nil
}

func imageName(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return "image.png"
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "image.jpg"
	default:
		return "image"
	}
}
