package validators

import (
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
)

// DefaultCancelWord aborts any prompt when typed on its own.
const DefaultCancelWord = "exit"

// MaxQuantity is the largest quantity the INTEGER column holds. Keep it in
// sync with the lte rule on the item request structs.
const MaxQuantity = 2147483647

// IsCancel reports whether the raw prompt input asks to abort the operation.
func IsCancel(input, cancelWord string) bool {
	if cancelWord == "" {
		cancelWord = DefaultCancelWord
	}
	return strings.EqualFold(strings.TrimSpace(input), cancelWord)
}

// ParseQuantity converts prompt input into a quantity between 1 and
// MaxQuantity.
func ParseQuantity(input string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInvalidQuantity, err, "quantity must be a number")
	}
	if value < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1")
	}
	if value > MaxQuantity {
		return 0, pkgerrors.New(pkgerrors.CodeInvalidQuantity, fmt.Sprintf("quantity must be at most %d", MaxQuantity))
	}
	return value, nil
}

// ParseID converts prompt input into a positive catalog identifier.
func ParseID(input, label string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, label+" must be a positive whole number")
	}
	return value, nil
}

// ParseYesNo accepts y/yes/n/no answers.
func ParseYesNo(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, pkgerrors.New(pkgerrors.CodeValidation, "answer yes or no")
}
