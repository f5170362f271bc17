package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SaleStatusPending   = "pending"
	SaleStatusPaid      = "paid"
	SaleStatusDelivered = "delivered"
	SaleStatusCancelled = "cancelled"
	SaleStatusRefunded  = "refunded"
)

// CountedSaleStatuses are the statuses that contribute to revenue and order goals.
var CountedSaleStatuses = []string{SaleStatusPaid, SaleStatusDelivered}

const (
	SaleSourceManual   = "manual"
	SaleSourcePagBank  = "pagbank"
	SaleSourceCoinzz   = "coinzz"
	SaleSourceWhatsApp = "whatsapp"
)

type Sale struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"owner_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Status    string          `db:"status" json:"status"`
	Source    string          `db:"source" json:"source"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

const (
	AdPlatformFacebook = "facebook_ads"
	AdPlatformGoogle   = "google_ads"
	AdPlatformTikTok   = "tiktok_ads"
)

type AdSpend struct {
	ID        string          `db:"id" json:"id"`
	UserID    string          `db:"user_id" json:"owner_id"`
	Amount    decimal.Decimal `db:"amount" json:"amount"`
	Platform  string          `db:"platform" json:"platform"`
	SpendDate time.Time       `db:"spend_date" json:"spend_date"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
