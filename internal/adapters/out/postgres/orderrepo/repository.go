package orderrepo

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/order"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const DefaultTimeout = 5 * time.Second

var (
	_ ports.OrderStore        = (*GormOrderRepository)(nil)
	_ ports.ActiveOrderFinder = (*GormOrderRepository)(nil)
)

// GormOrderRepository implements the Order Store on postgres. Every call runs
// under its own timeout; driver failures and timeouts surface as
// *errs.StoreUnavailableError.
type GormOrderRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewGormOrderRepository creates a new GORM order repository. A non-positive
// timeout selects DefaultTimeout.
func NewGormOrderRepository(db *gorm.DB, timeout time.Duration) *GormOrderRepository {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GormOrderRepository{
		db:      db,
		timeout: timeout,
	}
}

// Add saves a new order. The order service owns order creation; Add is used
// for seeding and tests.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewStoreUnavailableError("add order", err)
	}
	return nil
}

// FindOrderByID retrieves an order by its id.
func (r *GormOrderRepository) FindOrderByID(ctx context.Context, id string) (*order.Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("orderId")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, errs.NewStoreUnavailableError("find order", err)
	}

	return toDomain(dto)
}

// UpdateOrderFields writes the set fields in one transaction. The row is
// locked first, so a status change racing another closer sees the committed
// terminal status and is refused with the real current status.
func (r *GormOrderRepository) UpdateOrderFields(
	ctx context.Context,
	id string,
	fields ports.OrderFields,
) (*order.Order, error) {
	if id == "" {
		return nil, errs.NewValueIsRequiredError("orderId")
	}
	if fields.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("fields")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var updated OrderDTO
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current OrderDTO
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NewObjectNotFoundError("orderId", id)
			}
			return errs.NewStoreUnavailableError("lock order", err)
		}

		if fields.Status != nil {
			if status, parseErr := order.ParseStatus(current.Status); parseErr == nil && status.IsTerminal() {
				return errs.NewInvalidTransitionError(current.Status, fields.Status.String())
			}
		}

		changes := columnsOf(fields)
		if err := tx.Model(&OrderDTO{}).Where("id = ?", id).Updates(changes).Error; err != nil {
			return errs.NewStoreUnavailableError("update order", err)
		}
		if err := tx.First(&updated, "id = ?", id).Error; err != nil {
			return errs.NewStoreUnavailableError("reload order", err)
		}
		return nil
	})
	if err != nil {
		var notFound *errs.ObjectNotFoundError
		var transition *errs.InvalidTransitionError
		var unavailable *errs.StoreUnavailableError
		if errors.As(err, &notFound) || errors.As(err, &transition) || errors.As(err, &unavailable) {
			return nil, err
		}
		return nil, errs.NewStoreUnavailableError("update order", err)
	}

	return toDomain(updated)
}

// FindActiveOrdersByCustomer lists the customer's orders in non-terminal statuses.
func (r *GormOrderRepository) FindActiveOrdersByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	terminal := make([]string, 0, len(order.TerminalStatuses()))
	for _, s := range order.TerminalStatuses() {
		terminal = append(terminal, s.String())
	}

	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status NOT IN ?", customerID, terminal).
		Find(&dtos).Error; err != nil {
		return nil, errs.NewStoreUnavailableError("find active orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func columnsOf(fields ports.OrderFields) map[string]any {
	changes := make(map[string]any, 5)
	if fields.Status != nil {
		changes["status"] = fields.Status.String()
	}
	if fields.StatusUpdatedAt != nil {
		changes["status_updated_at"] = fields.StatusUpdatedAt.UTC()
	}
	if fields.DeliveryLocation != nil {
		changes["delivery_lat"] = fields.DeliveryLocation.Lat()
		changes["delivery_lng"] = fields.DeliveryLocation.Lng()
	}
	if fields.LastLocationUpdate != nil {
		changes["last_location_update"] = fields.LastLocationUpdate.UTC()
	}
	return changes
}
