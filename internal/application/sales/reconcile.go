package sales

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

// ReconcileUseCase recalcula los campos derivados de todas las ventas: cada
// subtotal desde el precio vigente del producto y cada total desde sus
// líneas. Corrige deriva de precios; no toca el stock. Idempotente: una
// segunda corrida sin ventas intermedias no cambia nada.
type ReconcileUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewReconcileUseCase construye el caso de uso de reconciliación.
func NewReconcileUseCase(txRunner TxRunner, log *logger.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{txRunner: txRunner, log: log}
}

// Run ejecuta la pasada completa en una sola transacción: los valores
// recalculados y el registro de auditoría se confirman juntos o ninguno.
func (uc *ReconcileUseCase) Run(ctx context.Context, caller domain.CallerContext) (*dto.ReconcileResponse, error) {
	var out dto.ReconcileResponse

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		_ repository.StockLedgerRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error {
		prices, err := productRepo.AllPrices()
		if err != nil {
			return err
		}

		// Pasada 1: subtotales desde el precio vigente.
		lines, err := saleRepo.ListAllLines()
		if err != nil {
			return err
		}
		bySale := make(map[string]decimal.Decimal, len(lines))
		for _, line := range lines {
			out.DetallesRevisados++
			price, ok := prices[line.ProductID]
			if ok {
				want := price.Mul(decimal.NewFromInt(line.Quantity))
				if !want.Equal(line.Subtotal) {
					if err := saleRepo.UpdateLineSubtotal(line.ID, want); err != nil {
						return err
					}
					line.Subtotal = want
					out.DetallesActualizados++
				}
			}
			bySale[line.SaleID] = bySale[line.SaleID].Add(line.Subtotal)
		}

		// Pasada 2: totales desde las líneas ya corregidas.
		sales, err := saleRepo.ListAll()
		if err != nil {
			return err
		}
		for _, sale := range sales {
			out.VentasRevisadas++
			want := bySale[sale.ID] // cero si la venta no tiene líneas
			if !want.Equal(sale.Total) {
				if err := saleRepo.UpdateTotal(sale.ID, want); err != nil {
					return err
				}
				out.VentasActualizadas++
			}
		}

		detail := fmt.Sprintf(
			"detalles_revisados=%d detalles_actualizados=%d ventas_revisadas=%d ventas_actualizadas=%d",
			out.DetallesRevisados, out.DetallesActualizados,
			out.VentasRevisadas, out.VentasActualizadas,
		)
		structured, _ := json.Marshal(out)
		return auditRepo.Create(&entity.AuditLog{
			ID:            uuid.New().String(),
			Action:        entity.AuditActionReconcile,
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
		Int("detalles_actualizados", out.DetallesActualizados).
		Int("ventas_actualizadas", out.VentasActualizadas).
		Str("actor", caller.Username).
		Msg("reconciliación de totales completada")

	return &out, nil
}
