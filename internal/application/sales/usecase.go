package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/application/stock"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
	"github.com/inventario-pymes/pos-api/pkg/logger"
)

// SaleUseCase es el motor transaccional de ventas: crear, editar y eliminar
// una venta con sus líneas manteniendo consistente el libro de stock. Cada
// operación corre como unidad atómica: o todos los pasos se confirman o
// ninguno queda persistido.
type SaleUseCase struct {
	txRunner     TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	storeRepo    repository.StoreRepository
	productRepo  repository.ProductRepository
	log          *logger.Logger
}

// NewSaleUseCase construye el motor de ventas.
func NewSaleUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	log *logger.Logger,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:     txRunner,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		storeRepo:    storeRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

// pricedLine es una línea validada con el precio autoritativo ya resuelto.
type pricedLine struct {
	productID string
	quantity  int64
	subtotal  decimal.Decimal
}

// Create registra una venta nueva: valida la entrada, reserva stock por cada
// línea contra la tienda indicada, calcula el total con el precio de catálogo
// y persiste cabecera y líneas en una sola transacción.
func (uc *SaleUseCase) Create(ctx context.Context, caller domain.CallerContext, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" || in.StoreID == "" {
		return nil, domain.ErrMissingSelection
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	date, err := parseSaleDate(in.Date)
	if err != nil {
		return nil, err
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	priced, err := uc.priceLines(in.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		Date:       date,
		CustomerID: in.CustomerID,
		StoreID:    in.StoreID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	var lines []*entity.SaleLine

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.ProductRepository,
		_ repository.AuditRepository,
	) error {
		ledger := stock.NewLedger(ledgerRepo)
		total := decimal.Zero
		for _, pl := range priced {
			if err := ledger.Reserve(pl.productID, in.StoreID, pl.quantity); err != nil {
				return err
			}
			total = total.Add(pl.subtotal)
		}
		sale.Total = total
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, pl := range priced {
			line := &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: pl.productID,
				Quantity:  pl.quantity,
				Subtotal:  pl.subtotal,
			}
			if err := saleRepo.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("store_id", in.StoreID).
		Str("total", sale.Total.String()).
		Int("lines", len(lines)).
		Str("actor", caller.Username).
		Msg("venta registrada")

	return toSaleResponse(sale, lines), nil
}

// Edit reemplaza por completo el conjunto de líneas de una venta: libera el
// stock de las líneas actuales contra la tienda original, las descarta y
// vuelve a validar y reservar el conjunto nuevo, todo en una transacción.
// La tienda no se puede cambiar. Si el conjunto nuevo falla, la liberación
// tampoco se confirma.
func (uc *SaleUseCase) Edit(ctx context.Context, caller domain.CallerContext, saleID string, in dto.EditSaleRequest) (*dto.SaleResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.ErrMissingSelection
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	priced, err := uc.priceLines(in.Lines)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	var lines []*entity.SaleLine

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.ProductRepository,
		_ repository.AuditRepository,
	) error {
		sale, err = saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}

		ledger := stock.NewLedger(ledgerRepo)

		// Devolver el stock de las líneas actuales contra la tienda original.
		oldLines, err := saleRepo.ListLines(sale.ID)
		if err != nil {
			return err
		}
		for _, old := range oldLines {
			if err := ledger.Release(old.ProductID, sale.StoreID, old.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteLines(sale.ID); err != nil {
			return err
		}

		// Reservar y persistir el conjunto nuevo contra la misma tienda.
		total := decimal.Zero
		for _, pl := range priced {
			if err := ledger.Reserve(pl.productID, sale.StoreID, pl.quantity); err != nil {
				return err
			}
			total = total.Add(pl.subtotal)
		}
		for _, pl := range priced {
			line := &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: pl.productID,
				Quantity:  pl.quantity,
				Subtotal:  pl.subtotal,
			}
			if err := saleRepo.CreateLine(line); err != nil {
				return err
			}
			lines = append(lines, line)
		}

		sale.CustomerID = in.CustomerID
		if in.Date != "" {
			date, err := parseSaleDate(in.Date)
			if err != nil {
				return err
			}
			sale.Date = date
		}
		sale.Total = total
		sale.UpdatedAt = time.Now()
		if err := saleRepo.UpdateHeader(sale); err != nil {
			return err
		}
		return saleRepo.UpdateTotal(sale.ID, total)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("total", sale.Total.String()).
		Int("lines", len(lines)).
		Str("actor", caller.Username).
		Msg("venta actualizada")

	return toSaleResponse(sale, lines), nil
}

// Delete elimina una venta devolviendo el stock de cada línea a la tienda de
// la venta; líneas y cabecera desaparecen en la misma transacción.
func (uc *SaleUseCase) Delete(ctx context.Context, caller domain.CallerContext, saleID string) error {
	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		ledgerRepo repository.StockLedgerRepository,
		_ repository.ProductRepository,
		_ repository.AuditRepository,
	) error {
		sale, err := saleRepo.GetByID(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		lines, err := saleRepo.ListLines(sale.ID)
		if err != nil {
			return err
		}
		ledger := stock.NewLedger(ledgerRepo)
		for _, line := range lines {
			if err := ledger.Release(line.ProductID, sale.StoreID, line.Quantity); err != nil {
				return err
			}
		}
		if err := saleRepo.DeleteLines(sale.ID); err != nil {
			return err
		}
		return saleRepo.Delete(sale.ID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("sale_id", saleID).
		Str("actor", caller.Username).
		Msg("venta eliminada y stock restaurado")
	return nil
}

// GetByID devuelve una venta con sus líneas.
func (uc *SaleUseCase) GetByID(saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.ListLines(sale.ID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines), nil
}

// List devuelve ventas paginadas (cabeceras, sin líneas).
func (uc *SaleUseCase) List(limit, offset int) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		out = append(out, *toSaleResponse(s, nil))
	}
	return out, nil
}

// priceLines valida cantidades, resuelve cada producto y calcula el subtotal
// con el precio de catálogo. El precio enviado por el cliente, si existiera,
// nunca se usa.
func (uc *SaleUseCase) priceLines(reqs []dto.SaleLineRequest) ([]pricedLine, error) {
	priced := make([]pricedLine, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product, err := uc.productRepo.GetByID(req.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		priced = append(priced, pricedLine{
			productID: req.ProductID,
			quantity:  req.Quantity,
			subtotal:  product.Price.Mul(decimal.NewFromInt(req.Quantity)),
		})
	}
	return priced, nil
}

// parseSaleDate interpreta la fecha de la venta (2006-01-02); vacía = hoy.
func parseSaleDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return date, nil
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine) *dto.SaleResponse {
	out := &dto.SaleResponse{
		ID:         sale.ID,
		Date:       sale.Date,
		CustomerID: sale.CustomerID,
		StoreID:    sale.StoreID,
		Total:      sale.Total,
		Lines:      make([]dto.SaleLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}
