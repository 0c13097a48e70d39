package telegram

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"voxnote/internal/pipeline"
)

const startText = "Hi! I transcribe voice messages. Send me a voice message, an audio file or a video note and I reply with its text.\n\n" +
	"There is a cap on audio length, roughly 40-80 minutes depending on how it was recorded. Transcription takes from a couple of seconds to a few dozen seconds depending on length.\n\n" +
	"In groups, reply to a voice message with /text or mention me to get its transcript.\n\n" +
	"Audio is never stored; only anonymous usage counters are kept."

// Service wires Telegram updates to the transcription pipeline.
type Service struct {
	pipeline *pipeline.Pipeline
	botName  string
}

func NewService(p *pipeline.Pipeline, botName string) *Service {
	return &Service{
		pipeline: p,
		botName:  strings.TrimPrefix(botName, "@"),
	}
}

// RegisterHandlers attaches the update routing to the bot client.
func (s *Service) RegisterHandlers(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, s.handleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/text", bot.MatchTypePrefix, s.handleReplyTrigger)
	b.RegisterHandlerMatchFunc(matchAudioMessage, s.handleAudio)
	b.RegisterHandlerMatchFunc(s.matchMention, s.handleReplyTrigger)
}

func (s *Service) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	_, _ = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   startText,
	})
}

// handleAudio runs the pipeline on a message that itself carries audio.
func (s *Service) handleAudio(ctx context.Context, b *bot.Bot, update *models.Update) {
	s.pipeline.Handle(ctx, inboundAudio(update.Message))
}

// handleReplyTrigger runs the pipeline on the replied-to message when the
// bot is addressed by /text or by mention. Without a qualifying reply
// target the pipeline is not invoked at all.
func (s *Service) handleReplyTrigger(ctx context.Context, b *bot.Bot, update *models.Update) {
	target := replyTarget(update)
	if target == nil {
		return
	}
	s.pipeline.Handle(ctx, inboundAudio(target))
}

// matchAudioMessage accepts private and group messages that carry one of
// the three supported attachment kinds.
func matchAudioMessage(update *models.Update) bool {
	msg := update.Message
	if msg == nil || !chatAllowed(msg.Chat.Type) {
		return false
	}
	return extractAttachment(msg) != nil
}

// matchMention accepts group messages whose text mentions the bot by name.
func (s *Service) matchMention(update *models.Update) bool {
	msg := update.Message
	if msg == nil || s.botName == "" {
		return false
	}
	if msg.Chat.Type != models.ChatTypeGroup && msg.Chat.Type != models.ChatTypeSupergroup {
		return false
	}
	return strings.Contains(strings.ToLower(msg.Text), "@"+strings.ToLower(s.botName))
}

// replyTarget returns the replied-to message when it carries a supported
// attachment kind, nil otherwise.
func replyTarget(update *models.Update) *models.Message {
	if update.Message == nil || update.Message.ReplyToMessage == nil {
		return nil
	}
	target := update.Message.ReplyToMessage
	if extractAttachment(target) == nil {
		return nil
	}
	return target
}

// inboundAudio builds the pipeline view of msg. The requesting user is the
// author of the audio message itself, also when triggered via a reply.
func inboundAudio(msg *models.Message) pipeline.InboundAudio {
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	return pipeline.InboundAudio{
		ChatID:     msg.Chat.ID,
		MessageID:  msg.ID,
		UserID:     userID,
		Attachment: extractAttachment(msg),
	}
}

// extractAttachment maps a Telegram message to the pipeline's attachment
// reference; video notes contribute their audio track.
func extractAttachment(msg *models.Message) *pipeline.Attachment {
	switch {
	case msg.Voice != nil:
		return &pipeline.Attachment{Kind: pipeline.KindVoice, FileID: msg.Voice.FileID, Duration: msg.Voice.Duration}
	case msg.Audio != nil:
		return &pipeline.Attachment{Kind: pipeline.KindAudio, FileID: msg.Audio.FileID, Duration: msg.Audio.Duration}
	case msg.VideoNote != nil:
		return &pipeline.Attachment{Kind: pipeline.KindVideoNote, FileID: msg.VideoNote.FileID, Duration: msg.VideoNote.Duration}
	}
	return nil
}

func chatAllowed(t models.ChatType) bool {
	return t == models.ChatTypePrivate || t == models.ChatTypeGroup || t == models.ChatTypeSupergroup
}
