package api

import (
	"rssdigest/app/database"
)

type ItemStoreInterface interface {
	GetStats() (database.Stats, error)
	GetRecentItems(limit int) ([]database.ProcessedItem, error)
}

var _ ItemStoreInterface = (*database.ItemRepository)(nil)

type Handler struct {
	itemRepo  ItemStoreInterface
	startedAt int64
}
