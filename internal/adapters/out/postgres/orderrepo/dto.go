// Package orderrepo persists order aggregates, including the embedded passcode
// state, in the orders table.
package orderrepo

import (
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of an order. The passcode is stored inline so that
// locking the order row also locks its passcode.
type OrderDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Code        string      `gorm:"type:varchar(8);uniqueIndex;not null"`
	UserID      uuid.UUID   `gorm:"type:uuid;index:idx_orders_user_status;not null"`
	ProductName string      `gorm:"type:varchar(255);not null"`
	Price       float64     `gorm:"type:numeric(12,2);not null"`
	Address     string      `gorm:"type:text;not null"`
	PaymentType string      `gorm:"type:varchar(16);not null"`
	Status      int         `gorm:"index:idx_orders_user_status;not null"`
	Passcode    PasscodeDTO `gorm:"embedded;embeddedPrefix:passcode_"`
	CreatedAt   time.Time   `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PasscodeDTO holds the stored passcode state. IssuedAt is NULL until the first
// code is issued.
type PasscodeDTO struct {
	State    int        `gorm:"not null"`
	Code     string     `gorm:"type:varchar(6)"`
	IssuedAt *time.Time `gorm:"type:timestamptz"`
	Attempts int        `gorm:"not null"`
}

func fromDomain(o *order.Order) OrderDTO {
	p := o.Passcode()

	var issuedAt *time.Time
	if t := p.IssuedAt(); !t.IsZero() {
		utc := t.UTC()
		issuedAt = &utc
	}

	return OrderDTO{
		ID:          o.ID().Bytes(),
		Code:        o.Code().String(),
		UserID:      o.UserID().Bytes(),
		ProductName: o.ProductName(),
		Price:       o.Price(),
		Address:     o.Address(),
		PaymentType: o.PaymentType(),
		Status:      int(o.Status()),
		Passcode: PasscodeDTO{
			State:    int(p.StoredState()),
			Code:     p.Code(),
			IssuedAt: issuedAt,
			Attempts: p.Attempts(),
		},
		CreatedAt: o.CreatedAt().UTC(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	code, err := kernel.OrderCodeFromString(dto.Code)
	if err != nil {
		return nil, err
	}

	var issuedAt time.Time
	if dto.Passcode.IssuedAt != nil {
		issuedAt = *dto.Passcode.IssuedAt
	}

	passcode, err := order.RestorePasscode(
		order.PasscodeState(dto.Passcode.State),
		dto.Passcode.Code,
		issuedAt,
		dto.Passcode.Attempts,
	)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		code,
		userID,
		dto.ProductName,
		dto.Price,
		dto.Address,
		dto.PaymentType,
		order.Status(dto.Status),
		passcode,
		dto.CreatedAt,
	)
}
