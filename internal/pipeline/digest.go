package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// HashUserID returns the hex SHA-256 digest of the decimal user id. Only
// this digest ever reaches the usage log or error tracking, so the bot
// cannot reconstruct who made a request from its own records.
func HashUserID(id int64) string {
	sum := sha256.Sum256([]byte(strconv.FormatInt(id, 10)))
	return hex.EncodeToString(sum[:])
}
