package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"rssdigest/app/cfg"
)

func NewHandler(itemRepo ItemStoreInterface) *Handler {
	return &Handler{
		itemRepo:  itemRepo,
		startedAt: time.Now().Unix(),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"version":        cfg.GetVersion(),
		"uptime_seconds": time.Now().Unix() - h.startedAt,
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.itemRepo.GetStats()
	if err != nil {
		slog.Error("Database error", "operation", "get_stats", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	byFeed := make([]gin.H, 0, len(stats.ByFeed))
	for _, fc := range stats.ByFeed {
		byFeed = append(byFeed, gin.H{"feed": fc.FeedName, "count": fc.Count})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_items": stats.TotalCount,
		"by_feed":     byFeed,
	})
}

func (h *Handler) GetRecentItems(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.Status(http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	items, err := h.itemRepo.GetRecentItems(limit)
	if err != nil {
		slog.Error("Database error", "operation", "get_recent_items", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	results := make([]gin.H, 0, len(items))
	for _, item := range items {
		entry := gin.H{
			"fingerprint":  item.Fingerprint,
			"url":          item.URL,
			"title":        item.Title,
			"feed":         item.FeedName,
			"processed_at": item.ProcessedAt.Format(time.RFC3339),
		}
		if item.Summary != nil {
			entry["summary"] = *item.Summary
		}
		results = append(results, entry)
	}

	c.JSON(http.StatusOK, gin.H{"items": results})
}
