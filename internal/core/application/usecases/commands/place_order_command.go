package commands

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"shopsecure/internal/core/domain/model/kernel"
	"shopsecure/internal/pkg/errs"
	"shopsecure/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a customer placing an order.
// The reference image is optional at placement; it can be registered later by an
// administrator at fulfillment time.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(principal.UserID, "Desk lamp", 39.90, "12 Harbour Road", "", nil)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	userID         kernel.UUID
	productName    string
	price          float64
	address        string
	paymentType    string
	referenceImage []byte

	guard guard.ConstructorGuard
}

func NewPlaceOrderCommand(
	userID kernel.UUID,
	productName string,
	price float64,
	address string,
	paymentType string,
	referenceImage []byte,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		paymentType: strings.TrimSpace(paymentType),
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setProductName(productName),
		cmd.setPrice(price),
		cmd.setAddress(address),
		cmd.setReferenceImage(referenceImage),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) UserID() kernel.UUID {
	return c.userID
}

func (c PlaceOrderCommand) ProductName() string {
	return c.productName
}

func (c PlaceOrderCommand) Price() float64 {
	return c.price
}

func (c PlaceOrderCommand) Address() string {
	return c.address
}

// PaymentType returns the requested payment tag; empty means the order default.
func (c PlaceOrderCommand) PaymentType() string {
	return c.paymentType
}

func (c PlaceOrderCommand) ReferenceImage() []byte {
	return c.referenceImage
}

func (c PlaceOrderCommand) HasReferenceImage() bool {
	return len(c.referenceImage) > 0
}

func (c *PlaceOrderCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *PlaceOrderCommand) setProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	c.productName = name
	return nil
}

func (c *PlaceOrderCommand) setPrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is not greater than 0", price))
	}
	c.price = price
	return nil
}

func (c *PlaceOrderCommand) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setReferenceImage(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := validateDecodableImage("reference image", data); err != nil {
		return err
	}
	c.referenceImage = data
	return nil
}
