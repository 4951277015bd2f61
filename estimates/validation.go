package estimates

import (
	"github.com/go-playground/validator/v10"
	"github.com/jrsteele09/wave-console/internal/validation"
)

const (
	msgSelectCustomer = "Please select a customer"
	msgAddItem        = "Please add at least one item"
)

// Validate checks a new estimate before it is sent.
func Validate(e NewEstimate) error {
	if e.CustomerID <= 0 {
		return single("CustomerID", msgSelectCustomer)
	}
	if len(e.Items) == 0 {
		return single("Items", msgAddItem)
	}
	return validation.Struct(e, message)
}

func single(field, msg string) error {
	e := &validation.Error{}
	e.Add(field, msg)
	return e
}

func message(fe validator.FieldError) string {
	switch fe.Field() {
	case "Quantity":
		return "Quantity must be greater than zero"
	case "UnitPrice":
		return "Unit price cannot be negative"
	case "ItemID":
		return "Please choose an item for every line"
	}
	return fe.Field() + " is invalid"
}
