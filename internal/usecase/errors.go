package usecase

import "fmt"

const (
	CodeEmptyOrder             = "EMPTY_ORDER"
	CodeMissingShippingAddress = "MISSING_SHIPPING_ADDRESS"
	CodeMissingCustomerEmail   = "MISSING_CUSTOMER_EMAIL"
	CodeInvalidEmail           = "INVALID_EMAIL"
	CodeInvalidFilter          = "INVALID_FILTER"
	CodeInvalidQuantity        = "INVALID_QUANTITY"
	CodeInvalidProduct         = "INVALID_PRODUCT"
)

// ValidationError is a rejected request the client can fix.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}
