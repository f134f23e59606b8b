package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jdcampos/inventario-ledger/internal/domain"
	"github.com/jdcampos/inventario-ledger/internal/domain/entity"
	"github.com/jdcampos/inventario-ledger/internal/domain/inventory"
	"github.com/jdcampos/inventario-ledger/internal/domain/repository"
)

// TransactionItem es una línea de una venta o compra.
type TransactionItem struct {
	ProductID string
	Quantity  int
}

// transactionVariant son los hooks específicos de cada variante (venta o
// compra): validación por ítem, signo del movimiento, armado del movimiento
// y creación del registro dueño. La orquestación compartida vive en create.
type transactionVariant interface {
	// validateItem corre sobre la lectura bloqueada del producto.
	validateItem(product *entity.Product, quantity int) error
	// buildMovement arma el movimiento de la línea, ya ligado al registro dueño.
	buildMovement(product *entity.Product, quantity int, userID string, date time.Time) *entity.Movement
	// createRecord persiste el registro dueño (Sale o Purchase) con el total calculado.
	createRecord(saleRepo repository.SaleRepository, purchaseRepo repository.PurchaseRepository,
		userID string, date time.Time, total decimal.Decimal) error
}

// TransactionUseCase crea ventas y compras como una sola unidad atómica:
// valida cada línea, calcula el total, crea el registro dueño y genera un
// movimiento del ledger por línea, con una única fecha de servidor compartida
// por el registro y todos sus movimientos.
type TransactionUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	userRepo     repository.UserRepository
	clock        Clock
	audit        AuditEmitter
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	userRepo repository.UserRepository,
	clock Clock,
	audit AuditEmitter,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		userRepo:     userRepo,
		clock:        clock,
		audit:        audit,
	}
}

// CreateSale crea una venta con múltiples productos. Cada línea valida stock
// disponible sobre la lectura bloqueada y genera un movimiento de salida.
func (uc *TransactionUseCase) CreateSale(ctx context.Context, customerID, userID string, items []TransactionItem) (*entity.Sale, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, fmt.Errorf("cliente %s: %w", customerID, err)
	}
	if customer == nil {
		return nil, fmt.Errorf("cliente %s: %w", customerID, domain.ErrNotFound)
	}

	variant := &saleVariant{sale: &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: customer.ID,
	}}
	if err := uc.create(ctx, variant, userID, items); err != nil {
		return nil, err
	}

	log.Info().Str("sale_id", variant.sale.ID).Int("items", len(items)).
		Str("total", variant.sale.Total.String()).Msg("venta creada")
	uc.emitRecordAudit(ctx, userID, "Sale", variant.sale.ID, variant.sale.Date, len(items), variant.sale.Total)
	return variant.sale, nil
}

// CreatePurchase crea una compra con múltiples productos. Cada línea valida
// que el producto pertenezca al proveedor y genera un movimiento de entrada.
func (uc *TransactionUseCase) CreatePurchase(ctx context.Context, supplierID, userID string, items []TransactionItem) (*entity.Purchase, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, fmt.Errorf("proveedor %s: %w", supplierID, err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("proveedor %s: %w", supplierID, domain.ErrNotFound)
	}

	variant := &purchaseVariant{supplier: supplier, purchase: &entity.Purchase{
		ID:         uuid.New().String(),
		SupplierID: supplier.ID,
	}}
	if err := uc.create(ctx, variant, userID, items); err != nil {
		return nil, err
	}

	log.Info().Str("purchase_id", variant.purchase.ID).Int("items", len(items)).
		Str("total", variant.purchase.Total.String()).Msg("compra creada")
	uc.emitRecordAudit(ctx, userID, "Purchase", variant.purchase.ID, variant.purchase.Date, len(items), variant.purchase.Total)
	return variant.purchase, nil
}

// create es la orquestación compartida entre venta y compra.
func (uc *TransactionUseCase) create(ctx context.Context, variant transactionVariant, userID string, items []TransactionItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: la transacción debe incluir al menos un producto", domain.ErrInvalidInput)
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
		}
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("usuario %s: %w", userID, err)
	}
	if user == nil {
		return fmt.Errorf("usuario %s: %w", userID, domain.ErrNotFound)
	}

	// Fecha única de servidor, compartida por el registro y todos sus movimientos.
	date := uc.clock.Now()

	// Los locks de producto se adquieren en orden ascendente de ID para que
	// dos transacciones concurrentes sobre los mismos productos no puedan
	// bloquearse en orden cruzado.
	ordered := make([]TransactionItem, len(items))
	copy(ordered, items)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ProductID < ordered[j].ProductID })

	return uc.txRunner.RunTransaction(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		alertRepo repository.AlertRepository,
		saleRepo repository.SaleRepository,
		purchaseRepo repository.PurchaseRepository,
	) error {
		type lockedItem struct {
			product  *entity.Product
			quantity int
		}
		locked := make([]lockedItem, 0, len(ordered))
		total := decimal.Zero

		for _, item := range ordered {
			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("producto %s: %w", item.ProductID, domain.ErrNotFound)
			}
			if err := variant.validateItem(product, item.Quantity); err != nil {
				return err
			}
			subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)
			locked = append(locked, lockedItem{product: product, quantity: item.Quantity})
		}

		if err := variant.createRecord(saleRepo, purchaseRepo, userID, date, total); err != nil {
			return err
		}

		for _, item := range locked {
			movement := variant.buildMovement(item.product, item.quantity, userID, date)
			if err := applyEntry(movRepo, productRepo, alertRepo, item.product, movement); err != nil {
				return err
			}
		}
		return nil
	})
}

func (uc *TransactionUseCase) emitRecordAudit(ctx context.Context, userID, model, id string, date time.Time, items int, total decimal.Decimal) {
	emitAudit(ctx, uc.audit, entity.AuditEvent{
		UserID:   userID,
		Action:   entity.AuditActionCreate,
		Model:    model,
		ObjectID: id,
		Changes: map[string]any{
			"items": items,
			"total": total.String(),
		},
		At: date,
	})
}

// saleVariant: salidas hacia un cliente; valida disponibilidad de stock.
type saleVariant struct {
	sale *entity.Sale
}

func (v *saleVariant) validateItem(product *entity.Product, quantity int) error {
	return inventory.CheckAvailability(product.ID, product.CurrentStock, quantity)
}

func (v *saleVariant) buildMovement(product *entity.Product, quantity int, userID string, date time.Time) *entity.Movement {
	return &entity.Movement{
		ID:         uuid.New().String(),
		Type:       entity.MovementTypeOutput,
		ProductID:  product.ID,
		Quantity:   quantity,
		UserID:     userID,
		CustomerID: &v.sale.CustomerID,
		SaleID:     &v.sale.ID,
		Price:      product.Price,
		Date:       date,
		CreatedAt:  date,
		UpdatedAt:  date,
	}
}

func (v *saleVariant) createRecord(saleRepo repository.SaleRepository, _ repository.PurchaseRepository,
	userID string, date time.Time, total decimal.Decimal) error {
	v.sale.UserID = userID
	v.sale.Date = date
	v.sale.Total = total
	v.sale.CreatedAt = date
	v.sale.UpdatedAt = date
	return saleRepo.Create(v.sale)
}

// purchaseVariant: entradas desde un proveedor; valida que cada producto
// pertenezca a ese proveedor.
type purchaseVariant struct {
	supplier *entity.Supplier
	purchase *entity.Purchase
}

func (v *purchaseVariant) validateItem(product *entity.Product, _ int) error {
	if product.SupplierID != v.supplier.ID {
		return &domain.SupplierMismatchError{ProductName: product.Name, SupplierName: v.supplier.Name}
	}
	return nil
}

func (v *purchaseVariant) buildMovement(product *entity.Product, quantity int, userID string, date time.Time) *entity.Movement {
	return &entity.Movement{
		ID:         uuid.New().String(),
		Type:       entity.MovementTypeInput,
		ProductID:  product.ID,
		Quantity:   quantity,
		UserID:     userID,
		PurchaseID: &v.purchase.ID,
		Price:      product.Price,
		Date:       date,
		CreatedAt:  date,
		UpdatedAt:  date,
	}
}

func (v *purchaseVariant) createRecord(_ repository.SaleRepository, purchaseRepo repository.PurchaseRepository,
	userID string, date time.Time, total decimal.Decimal) error {
	v.purchase.UserID = userID
	v.purchase.Date = date
	v.purchase.Total = total
	v.purchase.CreatedAt = date
	v.purchase.UpdatedAt = date
	return purchaseRepo.Create(v.purchase)
}
