package store

import (
	"context"

	"gorm.io/gorm"

	"workhub/internal/database"
)

// ListingStore 负责 B2B 买卖信息的读写。
type ListingStore struct {
	db *gorm.DB
}

// NewListingStore 构造 ListingStore。
func NewListingStore(db *gorm.DB) *ListingStore {
	return &ListingStore{db: db}
}

// CreateSellItem 写入新的出售信息。
func (s *ListingStore) CreateSellItem(ctx context.Context, item *database.SellItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// CreateBuyItem 写入新的求购信息。
func (s *ListingStore) CreateBuyItem(ctx context.Context, item *database.BuyItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// ListAvailableSellItems 返回全部在售信息，最新发布的在前。
func (s *ListingStore) ListAvailableSellItems(ctx context.Context) ([]database.SellItem, error) {
	var items []database.SellItem
	if err := s.db.WithContext(ctx).
		Where("status = ?", database.SellItemStatusAvailable).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListOpenBuyItems 返回全部未关闭的求购信息，最新发布的在前。
func (s *ListingStore) ListOpenBuyItems(ctx context.Context) ([]database.BuyItem, error) {
	var items []database.BuyItem
	if err := s.db.WithContext(ctx).
		Where("status = ?", database.BuyItemStatusOpen).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
