package validators

import (
	"testing"

	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Name     string    `json:"name" validate:"notblank,max=10"`
	Quantity int       `json:"quantity" validate:"min=1,max=2147483647" errcode:"INVALID_QUANTITY"`
}

func TestStructPassesValidRequest(t *testing.T) {
	req := sampleRequest{ID: uuid.New(), Name: "Gravel", Quantity: 2}
	require.NoError(t, Struct(req))
	require.NoError(t, Struct(&req))
}

func TestStructUsesFieldErrorCode(t *testing.T) {
	err := Struct(sampleRequest{ID: uuid.New(), Name: "Gravel", Quantity: 0})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidQuantity, pkgerrors.CodeOf(err))

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "must be at least 1", details["quantity"])
}

func TestStructRejectsQuantityAboveColumnRange(t *testing.T) {
	err := Struct(sampleRequest{ID: uuid.New(), Name: "Gravel", Quantity: 1 << 40})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidQuantity, pkgerrors.CodeOf(err))

	require.NoError(t, Struct(sampleRequest{ID: uuid.New(), Name: "Gravel", Quantity: MaxQuantity}))
}

func TestStructDefaultsToValidationCode(t *testing.T) {
	err := Struct(&sampleRequest{ID: uuid.New(), Name: "   ", Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	assert.Contains(t, pkgerrors.As(err).Message(), "name is required")

	err = Struct(sampleRequest{Name: "ok", Quantity: 1})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	err = Struct(sampleRequest{ID: uuid.New(), Name: "far too long", Quantity: 1})
	assert.Contains(t, pkgerrors.As(err).Message(), "at most 10 characters")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "Commuter", SanitizeString("  Commuter \n", 0))
	assert.Equal(t, "Comm", SanitizeString("Commuter", 4))
	assert.Equal(t, "Vélo", SanitizeString("Vélo rapide", 4))
}

func TestIsCancel(t *testing.T) {
	assert.True(t, IsCancel(" EXIT ", ""))
	assert.True(t, IsCancel("quit", "quit"))
	assert.False(t, IsCancel("exit now", ""))
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity(" 3 ")
	require.NoError(t, err)
	assert.Equal(t, 3, q)

	q, err = ParseQuantity("2147483647")
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity, q)

	for _, input := range []string{"0", "-2", "two", "", "2147483648", "3000000000", "99999999999999999999"} {
		_, err := ParseQuantity(input)
		assert.Equal(t, pkgerrors.CodeInvalidQuantity, pkgerrors.CodeOf(err), "input %q", input)
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("12", "product id")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = ParseID("abc", "product id")
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	_, err = ParseID("0", "product id")
	assert.Error(t, err)
}

func TestParseYesNo(t *testing.T) {
	yes, err := ParseYesNo("Yes")
	require.NoError(t, err)
	assert.True(t, yes)

	no, err := ParseYesNo("n")
	require.NoError(t, err)
	assert.False(t, no)

	_, err = ParseYesNo("maybe")
	assert.Error(t, err)
}
