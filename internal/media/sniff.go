// Package media derives a synthetic filename for an audio blob by sniffing
// its content type. The transcription provider infers decoding strategy
// partly from the file extension, so the hint matters even though nothing
// is ever written to disk.
package media

import (
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffLimit caps how many leading bytes are inspected; 2048 is enough
// for the common audio containers.
const sniffLimit = 2048

// DetectFilename sniffs the MIME type of data and returns "audio.<ext>".
// Unknown content falls back to the generic binary extension.
func DetectFilename(data []byte) string {
	if len(data) == 0 {
		return "audio.bin"
	}
	if len(data) > sniffLimit {
		data = data[:sniffLimit]
	}
	ext := strings.TrimPrefix(mimetype.Detect(data).Extension(), ".")
	if ext == "" {
		ext = "bin"
	}
	return "audio." + ext
}
