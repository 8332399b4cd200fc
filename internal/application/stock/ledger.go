package stock

import (
	"time"

	"github.com/google/uuid"

	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// Ledger aplica las reglas del libro de stock sobre un repositorio. Dentro de
// una transacción (repositorio atado a la tx) las lecturas usan GetForUpdate,
// de modo que dos reservas concurrentes sobre la misma entrada se serializan
// y no pueden descontar ambas cuando solo una cabe.
type Ledger struct {
	repo repository.StockLedgerRepository
}

// NewLedger construye el servicio sobre el repositorio dado (pool o tx).
func NewLedger(repo repository.StockLedgerRepository) *Ledger {
	return &Ledger{repo: repo}
}

// GetQuantity devuelve la cantidad disponible del producto en la tienda.
// La ausencia de entrada se reporta como 0.
func (l *Ledger) GetQuantity(productID, storeID string) (int64, error) {
	entry, err := l.repo.Get(productID, storeID)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		return 0, nil
	}
	return entry.Quantity, nil
}

// Reserve descuenta quantity unidades de la entrada (producto, tienda).
// Falla con ErrNoLedgerEntry si el par nunca fue abastecido y con
// ErrInsufficientStock si quantity excede lo disponible; reservar exactamente
// lo disponible es válido y deja la entrada en 0.
func (l *Ledger) Reserve(productID, storeID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	entry, err := l.repo.GetForUpdate(productID, storeID)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNoLedgerEntry
	}
	if quantity > entry.Quantity {
		return domain.ErrInsufficientStock
	}
	return l.repo.SetQuantity(entry.ID, entry.Quantity-quantity)
}

// Release devuelve quantity unidades a la entrada (producto, tienda). La
// entrada debe existir: solo se libera lo que antes se reservó.
func (l *Ledger) Release(productID, storeID string, quantity int64) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	entry, err := l.repo.GetForUpdate(productID, storeID)
	if err != nil {
		return err
	}
	if entry == nil {
		return domain.ErrNoLedgerEntry
	}
	return l.repo.SetQuantity(entry.ID, entry.Quantity+quantity)
}

// Upsert aplica un ajuste administrativo de delta unidades. Si la entrada
// existe, suma delta y rechaza con ErrNegativeStock cuando el resultado
// quedaría bajo cero; si no existe y delta > 0, crea la entrada.
func (l *Ledger) Upsert(productID, storeID string, delta int64) (*entity.StockEntry, error) {
	entry, err := l.repo.GetForUpdate(productID, storeID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		if delta <= 0 {
			return nil, domain.ErrInvalidInput
		}
		entry = &entity.StockEntry{
			ID:        uuid.New().String(),
			ProductID: productID,
			StoreID:   storeID,
			Quantity:  delta,
			UpdatedAt: time.Now(),
		}
		if err := l.repo.Create(entry); err != nil {
			return nil, err
		}
		return entry, nil
	}
	next := entry.Quantity + delta
	if next < 0 {
		return nil, domain.ErrNegativeStock
	}
	if err := l.repo.SetQuantity(entry.ID, next); err != nil {
		return nil, err
	}
	entry.Quantity = next
	return entry, nil
}
