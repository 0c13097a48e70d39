package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"voxnote/internal/pipeline"
)

// Gateway adapts the Telegram client to the pipeline's chat-platform surface.
type Gateway struct {
	bot  *bot.Bot
	http *http.Client
}

func NewGateway(b *bot.Bot) *Gateway {
	return &Gateway{
		bot: b,
		// Voice messages run to tens of minutes, give downloads room.
		http: &http.Client{Timeout: 2 * time.Minute},
	}
}

// FetchAttachment resolves a Telegram file id and buffers the whole content
// in memory. Telegram caps voice message size, so no streaming is needed.
func (g *Gateway) FetchAttachment(ctx context.Context, fileID string) ([]byte, error) {
	file, err := g.bot.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.bot.FileDownloadLink(file), nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}
	return data, nil
}

func (g *Gateway) SendReply(ctx context.Context, chatID int64, replyTo int, text string) (pipeline.MessageRef, error) {
	msg, err := g.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:          chatID,
		Text:            text,
		ReplyParameters: &models.ReplyParameters{MessageID: replyTo},
	})
	if err != nil {
		return pipeline.MessageRef{}, fmt.Errorf("send reply: %w", err)
	}
	return pipeline.MessageRef{ChatID: chatID, MessageID: msg.ID}, nil
}

func (g *Gateway) EditMessage(ctx context.Context, ref pipeline.MessageRef, text string) error {
	_, err := g.bot.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    ref.ChatID,
		MessageID: ref.MessageID,
		Text:      text,
	})
	if err != nil {
		return fmt.Errorf("edit message %d: %w", ref.MessageID, err)
	}
	return nil
}
