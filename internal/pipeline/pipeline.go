// Package pipeline implements the transcription request pipeline: fetch the
// audio attachment, transcribe it, deliver the text back in chunks, and
// append one row to the usage log. The pipeline is a plain function over
// domain data; all platform specifics stay behind the Gateway interface.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"voxnote/internal/media"
	"voxnote/internal/model"
	"voxnote/internal/repository"
	"voxnote/internal/stt"
)

// MaxMessageLength is the chat platform's single-message character limit.
const MaxMessageLength = 4096

const (
	placeholderText  = "Transcribing, the text will be here in a moment..."
	unrecognizedText = "I can only transcribe voice messages, audio files and video notes. Send or reply to one of those."
	emptyText        = "I could not hear any speech in that recording."
	errorPrefix      = "Something went wrong: "
	forbiddenHint    = "\n\nThe transcription provider rejected the credentials. Check that GROQ_API_KEY is set to a valid key."
)

// AttachmentKind identifies which media type carries the audio track.
type AttachmentKind string

const (
	KindVoice     AttachmentKind = "voice"
	KindAudio     AttachmentKind = "audio"
	KindVideoNote AttachmentKind = "video_note"
)

// Attachment references the audio payload of an inbound message.
type Attachment struct {
	Kind     AttachmentKind
	FileID   string
	Duration int // seconds as reported by the platform, 0 when unknown
}

// InboundAudio is the platform-agnostic view of one audio-bearing message.
// When the bot is addressed as a reply to an audio message, this describes
// the replied-to message, not the trigger.
type InboundAudio struct {
	ChatID     int64
	MessageID  int
	UserID     int64
	Attachment *Attachment // nil when no recognized kind was present
}

// MessageRef identifies a sent message so it can later be edited in place.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Gateway is the chat-platform surface the pipeline consumes.
type Gateway interface {
	// FetchAttachment resolves a file reference to its full byte content.
	FetchAttachment(ctx context.Context, fileID string) ([]byte, error)
	// SendReply sends text threaded as a reply to the given message.
	SendReply(ctx context.Context, chatID int64, replyTo int, text string) (MessageRef, error)
	// EditMessage replaces the text of a previously sent message.
	EditMessage(ctx context.Context, ref MessageRef, text string) error
}

// Reporter forwards terminal failures to the operator's error tracking.
// Implementations must only ever see the pseudonymized user id.
type Reporter interface {
	CaptureError(err error, hashedUserID string)
}

type Pipeline struct {
	gateway  Gateway
	provider stt.Provider
	usage    repository.UsageRepository
	reporter Reporter
	log      zerolog.Logger
	limit    int
}

func New(gateway Gateway, provider stt.Provider, usage repository.UsageRepository, reporter Reporter, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		gateway:  gateway,
		provider: provider,
		usage:    usage,
		reporter: reporter,
		log:      log,
		limit:    MaxMessageLength,
	}
}

// Handle runs the whole pipeline for one inbound message. It never returns
// an error: every failure is delivered to the user, logged, and reported
// here. Safe for concurrent use; invocations share no mutable state.
func (p *Pipeline) Handle(ctx context.Context, msg InboundAudio) {
	digest := HashUserID(msg.UserID)
	logger := p.log.With().
		Str("request_id", uuid.NewString()).
		Str("user", digest).
		Logger()

	duration := 0
	if msg.Attachment != nil {
		duration = msg.Attachment.Duration
	}

	placeholder, phErr := p.gateway.SendReply(ctx, msg.ChatID, msg.MessageID, placeholderText)
	hasPlaceholder := phErr == nil
	if phErr != nil {
		logger.Warn().Err(phErr).Msg("placeholder send failed")
	}

	if msg.Attachment == nil {
		// Asymmetry kept from the reference behavior: no usage row and no
		// error-tracking escalation for an unrecognized attachment.
		if err := p.deliver(ctx, msg, placeholder, hasPlaceholder, unrecognizedText, logger); err != nil {
			logger.Warn().Err(err).Msg("clarification delivery failed")
		}
		logger.Info().Msg("no recognized attachment kind")
		return
	}

	elapsed, err := p.run(ctx, msg, placeholder, hasPlaceholder, logger)
	createdAt := time.Now().Format(model.TimeLayout)
	if err != nil {
		text := errorPrefix + err.Error()
		if stt.IsForbidden(err) {
			text += forbiddenHint
		}
		if derr := p.deliver(ctx, msg, placeholder, hasPlaceholder, text, logger); derr != nil {
			logger.Warn().Err(derr).Msg("error message delivery failed")
		}
		p.appendUsage(ctx, digest, duration, model.TranscriptionFailed, createdAt, logger)
		p.reporter.CaptureError(err, digest)
		logger.Error().Err(err).Msg("transcription request failed")
		return
	}

	p.appendUsage(ctx, digest, duration, elapsed.Seconds(), createdAt, logger)
	logger.Info().
		Int("audio_duration", duration).
		Float64("transcription_time", elapsed.Seconds()).
		Msg("transcript delivered")
}

// run performs fetch, sniff, transcribe and delivery. The returned elapsed
// time covers the provider call only.
func (p *Pipeline) run(ctx context.Context, msg InboundAudio, placeholder MessageRef, hasPlaceholder bool, logger zerolog.Logger) (time.Duration, error) {
	data, err := p.gateway.FetchAttachment(ctx, msg.Attachment.FileID)
	if err != nil {
		return 0, fmt.Errorf("fetch %s attachment: %w", msg.Attachment.Kind, err)
	}

	filename := media.DetectFilename(data)
	logger.Debug().Int("bytes", len(data)).Str("filename", filename).Msg("attachment fetched")

	start := time.Now()
	result, err := p.provider.Transcribe(ctx, data, filename)
	if err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	chunks := SplitText(result.Text, p.limit)
	if len(chunks) == 0 {
		chunks = []string{emptyText}
	}
	if err := p.deliver(ctx, msg, placeholder, hasPlaceholder, chunks[0], logger); err != nil {
		return elapsed, fmt.Errorf("deliver transcript: %w", err)
	}
	for _, chunk := range chunks[1:] {
		if _, err := p.gateway.SendReply(ctx, msg.ChatID, msg.MessageID, chunk); err != nil {
			return elapsed, fmt.Errorf("deliver transcript chunk: %w", err)
		}
	}
	return elapsed, nil
}

// deliver edits the placeholder in place, falling back to a fresh reply when
// the edit fails (stale or deleted placeholder). Edit failure is recovered
// locally and never escalated.
func (p *Pipeline) deliver(ctx context.Context, msg InboundAudio, placeholder MessageRef, hasPlaceholder bool, text string, logger zerolog.Logger) error {
	if hasPlaceholder {
		err := p.gateway.EditMessage(ctx, placeholder, text)
		if err == nil {
			return nil
		}
		logger.Debug().Err(err).Msg("placeholder edit failed, sending new reply")
	}
	_, err := p.gateway.SendReply(ctx, msg.ChatID, msg.MessageID, text)
	return err
}

func (p *Pipeline) appendUsage(ctx context.Context, digest string, duration int, transcriptionTime float64, createdAt string, logger zerolog.Logger) {
	rec := &model.UsageRecord{
		HashedUserID:      digest,
		AudioDuration:     duration,
		TranscriptionTime: transcriptionTime,
		CreatedAt:         createdAt,
	}
	if err := p.usage.Append(ctx, rec); err != nil {
		logger.Error().Err(err).Msg("usage log append failed")
	}
}
