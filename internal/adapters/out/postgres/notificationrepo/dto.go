// Package notificationrepo is the outbox of undelivered passcode messages.
package notificationrepo

import (
	"time"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Recipient string    `gorm:"type:varchar(255);not null"`
	Subject   string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text;not null"`
	Status    int       `gorm:"index;not null"`
	Attempts  int       `gorm:"not null"`
	LastError string    `gorm:"type:varchar(500)"`
	// ClaimedUntil is NULL when no sender holds the entry.
	ClaimedUntil *time.Time `gorm:"index"`
	CreatedAt    time.Time  `gorm:"not null"`
	ExpiresAt    time.Time  `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) NotificationDTO {
	return NotificationDTO{
		ID:           n.ID().Bytes(),
		OrderID:      n.OrderID().Bytes(),
		Recipient:    n.Recipient().String(),
		Subject:      n.Subject(),
		Body:         n.Body(),
		Status:       int(n.Status()),
		Attempts:     n.Attempts(),
		LastError:    n.LastError(),
		ClaimedUntil: claimedUntilColumn(n.ClaimedUntil()),
		CreatedAt:    n.CreatedAt().UTC(),
		ExpiresAt:    n.ExpiresAt().UTC(),
	}
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	recipient, err := kernel.NewEmail(dto.Recipient)
	if err != nil {
		return nil, err
	}

	var claimedUntil time.Time
	if dto.ClaimedUntil != nil {
		claimedUntil = *dto.ClaimedUntil
	}

	return notification.RestoreNotification(id, orderID, recipient, dto.Subject, dto.Body,
		notification.Status(dto.Status), dto.Attempts, dto.LastError, claimedUntil, dto.CreatedAt, dto.ExpiresAt)
}

func claimedUntilColumn(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
