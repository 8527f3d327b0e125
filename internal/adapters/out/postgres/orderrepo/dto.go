// Package orderrepo is the postgres Order Store. It persists the tracking
// projection of orders through GORM and maps rows to the order aggregate.
package orderrepo

import (
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"
)

// OrderDTO represents the tracking columns of the orders table.
// Status is stored by name so the table stays readable for the rest of the
// platform; coordinates are nullable pairs.
type OrderDTO struct {
	ID                 string `gorm:"primaryKey"`
	CustomerID         string `gorm:"index;not null"`
	Status             string `gorm:"index;not null"`
	StatusUpdatedAt    time.Time
	Delivery           LocationDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	LastLocationUpdate *time.Time
	Restaurant         LocationDTO `gorm:"embedded;embeddedPrefix:restaurant_"`
	Customer           LocationDTO `gorm:"embedded;embeddedPrefix:customer_"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// LocationDTO is an optional coordinate pair embedded in the orders table.
type LocationDTO struct {
	Lat *float64
	Lng *float64
}

func fromLocation(loc *kernel.Location) LocationDTO {
	if loc == nil {
		return LocationDTO{}
	}
	lat, lng := loc.Lat(), loc.Lng()
	return LocationDTO{Lat: &lat, Lng: &lng}
}

func (l LocationDTO) toDomain() (*kernel.Location, error) {
	if l.Lat == nil || l.Lng == nil {
		return nil, nil //nolint:nilnil // absent location
	}
	loc, err := kernel.NewLocation(*l.Lat, *l.Lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// fromDomain converts an order aggregate to its row.
func fromDomain(o *order.Order) OrderDTO {
	st := o.State()
	return OrderDTO{
		ID:                 st.ID,
		CustomerID:         st.CustomerID,
		Status:             st.Status.String(),
		StatusUpdatedAt:    st.StatusUpdatedAt.UTC(),
		Delivery:           fromLocation(st.DeliveryLocation),
		LastLocationUpdate: st.LastLocationUpdate,
		Restaurant:         fromLocation(st.RestaurantLocation),
		Customer:           fromLocation(st.CustomerLocation),
	}
}

// toDomain rebuilds the aggregate from a row using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	delivery, err := dto.Delivery.toDomain()
	if err != nil {
		return nil, err
	}
	restaurant, err := dto.Restaurant.toDomain()
	if err != nil {
		return nil, err
	}
	customer, err := dto.Customer.toDomain()
	if err != nil {
		return nil, err
	}

	var lastUpdate *time.Time
	if dto.LastLocationUpdate != nil {
		at := dto.LastLocationUpdate.UTC()
		lastUpdate = &at
	}

	return order.RestoreOrder(order.State{
		ID:                 dto.ID,
		CustomerID:         dto.CustomerID,
		Status:             status,
		StatusUpdatedAt:    dto.StatusUpdatedAt.UTC(),
		DeliveryLocation:   delivery,
		LastLocationUpdate: lastUpdate,
		RestaurantLocation: restaurant,
		CustomerLocation:   customer,
	})
}
