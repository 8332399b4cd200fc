package stock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

// AdjustUseCase aplica ajustes administrativos sobre el libro de stock y
// expone las consultas del módulo de inventario.
type AdjustUseCase struct {
	txRunner    TxRunner
	ledgerRepo  repository.StockLedgerRepository
	productRepo repository.ProductRepository
	storeRepo   repository.StoreRepository
	log         *logger.Logger
}

// NewAdjustUseCase construye el caso de uso.
func NewAdjustUseCase(
	txRunner TxRunner,
	ledgerRepo repository.StockLedgerRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	log *logger.Logger,
) *AdjustUseCase {
	return &AdjustUseCase{
		txRunner:    txRunner,
		ledgerRepo:  ledgerRepo,
		productRepo: productRepo,
		storeRepo:   storeRepo,
		log:         log,
	}
}

// Adjust suma delta a la entrada (producto, tienda), creándola si no existe y
// delta es positivo. Corre en una transacción junto con su registro de
// auditoría.
func (uc *AdjustUseCase) Adjust(ctx context.Context, caller domain.CallerContext, in dto.StockAdjustRequest) (*dto.StockEntryResponse, error) {
	if in.ProductID == "" || in.StoreID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	var out *entity.StockEntry
	err = uc.txRunner.RunStock(ctx, func(
		ledgerRepo repository.StockLedgerRepository,
		auditRepo repository.AuditRepository,
	) error {
		entry, err := NewLedger(ledgerRepo).Upsert(in.ProductID, in.StoreID, in.Delta)
		if err != nil {
			return err
		}
		out = entry

		detail := fmt.Sprintf("producto=%s tienda=%s delta=%d cantidad=%d",
			product.Name, store.Name, in.Delta, entry.Quantity)
		structured, _ := json.Marshal(map[string]int64{
			"delta":    in.Delta,
			"cantidad": entry.Quantity,
		})
		return auditRepo.Create(&entity.AuditLog{
			ID:            uuid.New().String(),
			Action:        entity.AuditActionStockAdjust,
			ActorID:       caller.UserID,
			ActorName:     caller.Username,
			Detail:        detail,
			DetailJSON:    structured,
			SourceAddress: caller.SourceAddress,
			CreatedAt:     time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("store_id", in.StoreID).
		Int64("delta", in.Delta).
		Int64("quantity", out.Quantity).
		Str("actor", caller.Username).
		Msg("ajuste de inventario aplicado")

	return toEntryResponse(out), nil
}

// GetQuantity devuelve la cantidad disponible (0 si el par nunca fue abastecido).
func (uc *AdjustUseCase) GetQuantity(productID, storeID string) (int64, error) {
	return NewLedger(uc.ledgerRepo).GetQuantity(productID, storeID)
}

// List lista las entradas del libro, opcionalmente filtradas por tienda.
func (uc *AdjustUseCase) List(storeID string, limit, offset int) ([]dto.StockEntryResponse, error) {
	entries, err := uc.ledgerRepo.List(storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *toEntryResponse(e))
	}
	return out, nil
}

// DeleteEntry elimina una entrada del libro (operación administrativa).
func (uc *AdjustUseCase) DeleteEntry(id string) error {
	entry, err := uc.ledgerRepo.GetByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNotFound
	}
	return uc.ledgerRepo.Delete(id)
}

func toEntryResponse(e *entity.StockEntry) *dto.StockEntryResponse {
	return &dto.StockEntryResponse{
		ID:        e.ID,
		ProductID: e.ProductID,
		StoreID:   e.StoreID,
		Quantity:  e.Quantity,
		UpdatedAt: e.UpdatedAt,
	}
}
