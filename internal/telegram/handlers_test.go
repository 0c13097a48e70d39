package telegram

import (
	"testing"

	"github.com/go-telegram/bot/models"

	"voxnote/internal/pipeline"
)

func voiceMsg(chatType models.ChatType) *models.Message {
	return &models.Message{
		ID:    11,
		From:  &models.User{ID: 123456789},
		Chat:  models.Chat{ID: 100, Type: chatType},
		Voice: &models.Voice{FileID: "voice-1", Duration: 42},
	}
}

func TestExtractAttachment(t *testing.T) {
	tests := []struct {
		name     string
		msg      *models.Message
		wantKind pipeline.AttachmentKind
		wantID   string
	}{
		{"voice", &models.Message{Voice: &models.Voice{FileID: "v", Duration: 5}}, pipeline.KindVoice, "v"},
		{"audio", &models.Message{Audio: &models.Audio{FileID: "a", Duration: 6}}, pipeline.KindAudio, "a"},
		{"video note", &models.Message{VideoNote: &models.VideoNote{FileID: "n", Duration: 7}}, pipeline.KindVideoNote, "n"},
	}
	for _, tc := range tests {
		att := extractAttachment(tc.msg)
		if att == nil {
			t.Errorf("%s: extractAttachment() = nil", tc.name)
			continue
		}
		if att.Kind != tc.wantKind || att.FileID != tc.wantID {
			t.Errorf("%s: extractAttachment() = %+v, want kind %s file %s", tc.name, att, tc.wantKind, tc.wantID)
		}
	}

	if att := extractAttachment(&models.Message{Text: "plain text"}); att != nil {
		t.Errorf("extractAttachment(text message) = %+v, want nil", att)
	}
}

func TestMatchAudioMessage(t *testing.T) {
	tests := []struct {
		name   string
		update *models.Update
		want   bool
	}{
		{"voice in private", &models.Update{Message: voiceMsg(models.ChatTypePrivate)}, true},
		{"voice in group", &models.Update{Message: voiceMsg(models.ChatTypeGroup)}, true},
		{"voice in supergroup", &models.Update{Message: voiceMsg(models.ChatTypeSupergroup)}, true},
		{"voice in channel", &models.Update{Message: voiceMsg(models.ChatTypeChannel)}, false},
		{"text only", &models.Update{Message: &models.Message{Chat: models.Chat{Type: models.ChatTypePrivate}, Text: "hi"}}, false},
		{"no message", &models.Update{}, false},
	}
	for _, tc := range tests {
		if got := matchAudioMessage(tc.update); got != tc.want {
			t.Errorf("%s: matchAudioMessage() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMatchMention(t *testing.T) {
	s := NewService(nil, "@VoxBot")

	group := func(text string) *models.Update {
		return &models.Update{Message: &models.Message{
			Chat: models.Chat{Type: models.ChatTypeGroup},
			Text: text,
		}}
	}

	if !s.matchMention(group("@voxbot what does this say?")) {
		t.Error("case-insensitive mention in group not matched")
	}
	if s.matchMention(group("no mention here")) {
		t.Error("matched a message without a mention")
	}
	private := &models.Update{Message: &models.Message{
		Chat: models.Chat{Type: models.ChatTypePrivate},
		Text: "@voxbot hi",
	}}
	if s.matchMention(private) {
		t.Error("mention matching must be group-only")
	}
	unnamed := NewService(nil, "")
	if unnamed.matchMention(group("@voxbot hi")) {
		t.Error("matched a mention with no bot name configured")
	}
}

func TestReplyTarget(t *testing.T) {
	trigger := &models.Update{Message: &models.Message{
		ID:             20,
		Chat:           models.Chat{ID: 100, Type: models.ChatTypeGroup},
		Text:           "/text",
		ReplyToMessage: voiceMsg(models.ChatTypeGroup),
	}}
	target := replyTarget(trigger)
	if target == nil || target.ID != 11 {
		t.Fatalf("replyTarget() = %+v, want the replied-to voice message", target)
	}

	// The inbound view is built from the replied-to message, so the digest
	// belongs to the voice sender and chunks thread to the voice message.
	in := inboundAudio(target)
	if in.MessageID != 11 || in.UserID != 123456789 {
		t.Errorf("inboundAudio() = %+v, want message 11 from user 123456789", in)
	}
	if in.Attachment == nil || in.Attachment.Duration != 42 {
		t.Errorf("inboundAudio().Attachment = %+v, want the voice attachment", in.Attachment)
	}

	noReply := &models.Update{Message: &models.Message{Text: "/text"}}
	if got := replyTarget(noReply); got != nil {
		t.Errorf("replyTarget(no reply) = %+v, want nil", got)
	}
	textReply := &models.Update{Message: &models.Message{
		Text:           "/text",
		ReplyToMessage: &models.Message{Text: "just text"},
	}}
	if got := replyTarget(textReply); got != nil {
		t.Errorf("replyTarget(reply to text) = %+v, want nil", got)
	}
}
