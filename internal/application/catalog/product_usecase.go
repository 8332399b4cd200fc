package catalog

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock por tienda se
// maneja en el libro de stock, no aquí; GlobalStock es el contador legado.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Precio y stock global no pueden ser negativos.
func (uc *ProductUseCase) Create(in dto.ProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.GlobalStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		GlobalStock: in.GlobalStock,
		SupplierID:  in.SupplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos; search filtra por nombre sin distinguir mayúsculas
// ni acentos.
func (uc *ProductUseCase) List(search string, limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(NormalizeSearch(search), limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update actualiza nombre, precio, stock global y proveedor.
func (uc *ProductUseCase) Update(id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Price.LessThan(decimal.Zero) || in.GlobalStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	product.Name = in.Name
	product.Price = in.Price
	product.GlobalStock = in.GlobalStock
	product.SupplierID = in.SupplierID
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// NormalizeSearch baja a minúsculas y elimina marcas diacríticas, de modo que
// "lápiz" y "Lapiz" busquen lo mismo.
func NormalizeSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}
	return strings.ToLower(strings.TrimSpace(plain))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		GlobalStock: p.GlobalStock,
		SupplierID:  p.SupplierID,
		CreatedAt:   p.CreatedAt,
	}
}
