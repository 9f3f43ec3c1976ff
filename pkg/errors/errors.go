package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeValidation      Code = "VALIDATION_ERROR"
	CodeNotFound        Code = "NOT_FOUND"
	CodeDuplicateName   Code = "DUPLICATE_NAME"
	CodeDuplicateItem   Code = "DUPLICATE_ITEM"
	CodeInvalidQuantity Code = "INVALID_QUANTITY"
	CodeInvalidProduct  Code = "INVALID_PRODUCT"
	CodeConnection      Code = "CONNECTION_ERROR"
	CodeCancelled       Code = "CANCELLED"
	CodeInternal        Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Retryable:      false,
		PublicMessage:  "invalid input",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:      false,
		PublicMessage:  "not found",
		DetailsAllowed: true,
	},
	CodeDuplicateName: {
		Retryable:      false,
		PublicMessage:  "a wishlist with that name already exists",
		DetailsAllowed: false,
	},
	CodeDuplicateItem: {
		Retryable:      false,
		PublicMessage:  "that product is already in the wishlist",
		DetailsAllowed: false,
	},
	CodeInvalidQuantity: {
		Retryable:      false,
		PublicMessage:  "quantity must be a whole number of at least 1",
		DetailsAllowed: false,
	},
	CodeInvalidProduct: {
		Retryable:      false,
		PublicMessage:  "product does not exist in the catalog",
		DetailsAllowed: false,
	},
	CodeConnection: {
		Retryable:      true,
		PublicMessage:  "unable to reach the database",
		DetailsAllowed: true,
	},
	CodeCancelled: {
		Retryable:      false,
		PublicMessage:  "operation canceled",
		DetailsAllowed: false,
	},
	CodeInternal: {
		Retryable:      true,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf returns the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// Is reports whether err carries the provided code.
func Is(err error, code Code) bool {
	typed := As(err)
	return typed != nil && typed.Code() == code
}

// Cancelled is returned when the user aborts a prompt sequence.
func Cancelled() *Error {
	return New(CodeCancelled, "operation canceled")
}
