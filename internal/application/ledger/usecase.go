package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/runnersutah/pipetrack-api/internal/application/dto"
	"github.com/runnersutah/pipetrack-api/internal/domain"
	"github.com/runnersutah/pipetrack-api/internal/domain/entity"
	"github.com/runnersutah/pipetrack-api/internal/domain/inventory"
	"github.com/runnersutah/pipetrack-api/internal/domain/repository"
	"github.com/runnersutah/pipetrack-api/pkg/logger"
)

// UseCase registra y corrige movimientos del ledger de inventario de forma
// transaccional. Cada escritura rematerializa los balances de la pareja
// (cliente, producto) desde el ledger completo y rederiva el estado del
// cliente, dentro de la misma transacción.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	templateRepo repository.ProductTemplateRepository
	customerRepo repository.CustomerRepository
	locationRepo repository.StorageLocationRepository
	changeRepo   repository.InventoryChangeRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	templateRepo repository.ProductTemplateRepository,
	customerRepo repository.CustomerRepository,
	locationRepo repository.StorageLocationRepository,
	changeRepo repository.InventoryChangeRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		templateRepo: templateRepo,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		changeRepo:   changeRepo,
		log:          log,
	}
}

// RecordChange valida y agrega un registro al ledger. La cantidad autorada
// (entera o decimal) debe corresponder al tipo de conteo de la plantilla del
// producto; Footage solo acompaña a registros discretos.
func (uc *UseCase) RecordChange(ctx context.Context, userID string, in dto.RecordChangeRequest) (*dto.ChangeResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CustomerID != in.CustomerID {
		return nil, domain.ErrForbidden
	}
	template, err := uc.templateRepo.GetByID(product.TemplateID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, domain.ErrNotFound
	}
	if loc, err := uc.locationRepo.GetByID(in.LocationID); err != nil {
		return nil, err
	} else if loc == nil {
		return nil, domain.ErrNotFound
	}

	qty := inventory.SignedQuantity{Int: in.QuantityInt, Decimal: in.QuantityDecimal}
	if err := qty.Validate(template.CountingType); err != nil {
		return nil, err
	}

	var joints int64
	footage := decimal.Zero
	switch template.CountingType {
	case entity.CountingDiscrete:
		joints = *in.QuantityInt
		if in.Footage != nil {
			footage = *in.Footage
		}
	case entity.CountingContinuous:
		if in.Footage != nil {
			// La cantidad decimal YA es el footage; un acompañante es ambiguo.
			return nil, domain.ErrInvalidInput
		}
		footage = *in.QuantityDecimal
	}

	now := time.Now()
	change := &entity.InventoryChange{
		ID:                  uuid.New().String(),
		CustomerID:          in.CustomerID,
		ProductID:           in.ProductID,
		LocationID:          in.LocationID,
		Date:                in.Date,
		Joints:              joints,
		Footage:             footage,
		RR:                  in.RR,
		PO:                  in.PO,
		AFE:                 in.AFE,
		Carrier:             in.Carrier,
		ReceivedTransferred: in.ReceivedTransferred,
		Manufacturer:        in.Manufacturer,
		AttachmentID:        in.AttachmentID,
		CreatedAt:           now,
		CreatedBy:           userID,
	}

	err = uc.txRunner.Run(ctx, func(
		changeRepo repository.InventoryChangeRepository,
		balanceRepo repository.InventoryBalanceRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := changeRepo.Create(change); err != nil {
			return err
		}
		return uc.rematerialize(changeRepo, balanceRepo, customerRepo, in.CustomerID, in.ProductID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("change_id", change.ID).
		Str("customer_id", change.CustomerID).
		Str("product_id", change.ProductID).
		Int64("joints", change.Joints).
		Str("footage", change.Footage.String()).
		Msg("registro de inventario agregado")

	resp := toChangeResponse(change)
	return &resp, nil
}

// DeleteChange elimina un registro del ledger (corrección administrativa:
// una edición se modela como borrar y volver a insertar) y rematerializa.
func (uc *UseCase) DeleteChange(ctx context.Context, id string) error {
	change, err := uc.changeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if change == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		changeRepo repository.InventoryChangeRepository,
		balanceRepo repository.InventoryBalanceRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := changeRepo.Delete(id); err != nil {
			return err
		}
		return uc.rematerialize(changeRepo, balanceRepo, customerRepo, change.CustomerID, change.ProductID, now)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("change_id", id).Msg("registro de inventario eliminado")
	return nil
}

// ZeroOut agrega los registros compensatorios que dejan en cero todos los
// racks de la pareja (cliente, producto): uno por rack con balance no nulo,
// con joints y footage negados.
func (uc *UseCase) ZeroOut(ctx context.Context, userID string, in dto.ZeroOutRequest) ([]dto.ChangeResponse, error) {
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CustomerID != in.CustomerID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	var created []dto.ChangeResponse
	err = uc.txRunner.Run(ctx, func(
		changeRepo repository.InventoryChangeRepository,
		balanceRepo repository.InventoryBalanceRepository,
		customerRepo repository.CustomerRepository,
	) error {
		balances, err := balanceRepo.ListByKey(in.CustomerID, in.ProductID)
		if err != nil {
			return err
		}
		for _, b := range balances {
			if b.Joints == 0 && b.Footage.IsZero() {
				continue
			}
			offset := &entity.InventoryChange{
				ID:                  uuid.New().String(),
				CustomerID:          in.CustomerID,
				ProductID:           in.ProductID,
				LocationID:          b.LocationID,
				Date:                in.Date,
				Joints:              -b.Joints,
				Footage:             b.Footage.Neg(),
				ReceivedTransferred: "Zeroed out",
				CreatedAt:           now,
				CreatedBy:           userID,
			}
			if err := changeRepo.Create(offset); err != nil {
				return err
			}
			created = append(created, toChangeResponse(offset))
		}
		if len(created) == 0 {
			return nil
		}
		return uc.rematerialize(changeRepo, balanceRepo, customerRepo, in.CustomerID, in.ProductID, now)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", in.CustomerID).
		Str("product_id", in.ProductID).
		Int("offsets", len(created)).
		Msg("inventario puesto en cero")
	return created, nil
}

// ListChanges lista el ledger de un cliente, filtrable por rango de fechas.
func (uc *UseCase) ListChanges(ctx context.Context, customerID string, from, to *time.Time, page dto.PageRequest) (*dto.ChangeListResponse, error) {
	page.DefaultPage()
	changes, err := uc.changeRepo.ListByCustomer(customerID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ChangeResponse, 0, len(changes))
	for _, c := range changes {
		items = append(items, toChangeResponse(c))
	}
	return &dto.ChangeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// rematerialize reescribe los balances de la pareja (cliente, producto) desde
// el ledger completo (rescan desde cero, no incremental) y rederiva el estado
// del cliente sobre TODOS sus balances. Debe correr dentro de la tx que
// modificó el ledger.
func (uc *UseCase) rematerialize(
	changeRepo repository.InventoryChangeRepository,
	balanceRepo repository.InventoryBalanceRepository,
	customerRepo repository.CustomerRepository,
	customerID, productID string,
	now time.Time,
) error {
	changes, err := changeRepo.ListByKey(customerID, productID)
	if err != nil {
		return err
	}

	byLocation := make(map[string][]*entity.InventoryChange)
	for _, c := range changes {
		byLocation[c.LocationID] = append(byLocation[c.LocationID], c)
	}

	if err := balanceRepo.DeleteByKey(customerID, productID); err != nil {
		return err
	}
	for locationID, group := range byLocation {
		joints, footage := inventory.SumChanges(group)
		b := &entity.InventoryBalance{
			CustomerID:  customerID,
			ProductID:   productID,
			LocationID:  locationID,
			Joints:      joints,
			Footage:     footage,
			LastUpdated: now,
		}
		if err := balanceRepo.Upsert(b); err != nil {
			return err
		}
	}

	all, err := balanceRepo.ListByCustomer(customerID)
	if err != nil {
		return err
	}
	return customerRepo.UpdateStatus(customerID, inventory.DeriveStatus(all))
}

func toChangeResponse(c *entity.InventoryChange) dto.ChangeResponse {
	return dto.ChangeResponse{
		ID:                  c.ID,
		CustomerID:          c.CustomerID,
		ProductID:           c.ProductID,
		LocationID:          c.LocationID,
		Date:                c.Date,
		Joints:              c.Joints,
		Footage:             c.Footage,
		RR:                  c.RR,
		PO:                  c.PO,
		AFE:                 c.AFE,
		Carrier:             c.Carrier,
		ReceivedTransferred: c.ReceivedTransferred,
		Manufacturer:        c.Manufacturer,
		AttachmentID:        c.AttachmentID,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
	}
}
