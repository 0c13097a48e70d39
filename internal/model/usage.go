package model

// TimeLayout is the timestamp format used in the usage log, local process clock.
const TimeLayout = "2006-01-02 15:04:05"

// TranscriptionFailed is the sentinel stored in TranscriptionTime when a
// request failed before or during transcription.
const TranscriptionFailed = -1

// UsageRecord is one row of the append-only transcription usage log.
// The user is identified only by a one-way digest; the raw Telegram id
// is never persisted.
type UsageRecord struct {
	ID                int64   `json:"id"`
	HashedUserID      string  `json:"hashed_user_id"`
	AudioDuration     int     `json:"audio_duration"`     // reported audio length in seconds, 0 when unknown
	TranscriptionTime float64 `json:"transcription_time"` // provider call wall-clock seconds, -1 on failure
	CreatedAt         string  `json:"created_at"`
}

// Failed reports whether this record carries the failure sentinel.
func (r UsageRecord) Failed() bool {
	return r.TranscriptionTime < 0
}

// UsageSummary aggregates the usage log for the stats endpoint.
type UsageSummary struct {
	TotalRequests     int     `json:"total_requests"`
	FailedRequests    int     `json:"failed_requests"`
	TotalAudioSeconds int     `json:"total_audio_seconds"`
	AvgTranscribeSecs float64 `json:"avg_transcription_seconds"` // successful requests only
}
