// Package api exposes a small read-only HTTP surface over the usage log:
// a health check and aggregate stats for the operator. It is optional and
// only mounted when HTTP_ADDR is configured.
package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"voxnote/internal/repository"
)

func RegisterRoutes(r *gin.Engine, usage repository.UsageRepository) {
	// Health check
	r.GET("/health", healthCheck)

	// API v1
	v1 := r.Group("/api/v1")
	{
		v1.GET("/usage/recent", recentUsage(usage))
		v1.GET("/usage/summary", usageSummary(usage))
	}
}

// healthCheck returns server health status
func healthCheck(c *gin.Context) {
	success(c, gin.H{
		"status":  "ok",
		"service": "voxnote",
	})
}

// recentUsage handles GET /api/v1/usage/recent
func recentUsage(usage repository.UsageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if err != nil || limit < 1 {
			limit = 20
		}
		if limit > 100 {
			limit = 100 // Max limit
		}

		records, err := usage.Recent(c.Request.Context(), limit)
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to retrieve usage records")
			return
		}

		items := make([]gin.H, 0, len(records))
		for _, rec := range records {
			items = append(items, gin.H{
				"id":                 rec.ID,
				"hashed_user_id":     rec.HashedUserID,
				"audio_duration":     rec.AudioDuration,
				"transcription_time": rec.TranscriptionTime,
				"created_at":         rec.CreatedAt,
				"failed":             rec.Failed(),
			})
		}

		success(c, gin.H{
			"items": items,
			"limit": limit,
			"count": len(items),
		})
	}
}

// usageSummary handles GET /api/v1/usage/summary
func usageSummary(usage repository.UsageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := usage.Summary(c.Request.Context())
		if err != nil {
			fail(c, http.StatusInternalServerError, "failed to summarize usage")
			return
		}

		success(c, gin.H{
			"total_requests":            s.TotalRequests,
			"failed_requests":           s.FailedRequests,
			"total_audio_seconds":       s.TotalAudioSeconds,
			"avg_transcription_seconds": s.AvgTranscribeSecs,
		})
	}
}
