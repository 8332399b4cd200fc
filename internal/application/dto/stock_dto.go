package dto

import "time"

// StockAdjustRequest body para POST /api/stock/adjust. Delta puede ser
// negativo; el ajuste se rechaza si dejaría la cantidad bajo cero.
type StockAdjustRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	StoreID   string `json:"store_id" validate:"required,uuid"`
	Delta     int64  `json:"delta" validate:"required"`
}

// StockEntryResponse salida de una entrada del libro de stock.
type StockEntryResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	StoreID   string    `json:"store_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuditLogResponse salida de un registro de auditoría.
type AuditLogResponse struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	ActorID       string    `json:"actor_id"`
	ActorName     string    `json:"actor_name"`
	Detail        string    `json:"detail"`
	SourceAddress string    `json:"source_address"`
	CreatedAt     time.Time `json:"created_at"`
}
