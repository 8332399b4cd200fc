package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/inventario-pymes/pos-api/internal/application/dto"
	"github.com/inventario-pymes/pos-api/internal/domain"
	"github.com/inventario-pymes/pos-api/internal/domain/entity"
	"github.com/inventario-pymes/pos-api/internal/domain/repository"
)

// StoreUseCase casos de uso CRUD para tiendas.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una tienda.
func (uc *StoreUseCase) Create(in dto.StoreRequest) (*dto.StoreResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// List lista tiendas paginadas.
func (uc *StoreUseCase) List(limit, offset int) ([]dto.StoreResponse, error) {
	stores, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// Update actualiza una tienda.
func (uc *StoreUseCase) Update(id string, in dto.StoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	store.Name = in.Name
	store.Location = in.Location
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// Delete elimina una tienda.
func (uc *StoreUseCase) Delete(id string) error {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if store == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		CreatedAt: s.CreatedAt,
	}
}
