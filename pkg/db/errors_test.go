package db

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/angelmondragon/bikewish/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "wishlists_name_key"}

	assert.False(t, IsUniqueViolation(nil, ""))
	assert.True(t, IsUniqueViolation(pgErr, ""))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", pgErr), "wishlists_name_key"))
	assert.False(t, IsUniqueViolation(pgErr, "wishlist_items_wishlist_product_key"))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey, ""))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: wishlists.name"), ""))
	assert.False(t, IsUniqueViolation(errors.New("syntax error"), ""))
}

func TestIsConnectionError(t *testing.T) {
	assert.True(t, IsConnectionError(driver.ErrBadConn))
	assert.True(t, IsConnectionError(fmt.Errorf("query: %w", context.DeadlineExceeded)))
	assert.True(t, IsConnectionError(&pgconn.PgError{Code: "28P01"}))
	assert.True(t, IsConnectionError(&pgconn.PgError{Code: "08006"}))
	assert.False(t, IsConnectionError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsConnectionError(errors.New("syntax error")))
	assert.False(t, IsConnectionError(nil))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil, "noop"))

	typed := pkgerrors.New(pkgerrors.CodeNotFound, "wishlist not found")
	assert.Same(t, typed, Classify(typed, "load"))

	assert.Equal(t, pkgerrors.CodeConnection, pkgerrors.CodeOf(Classify(driver.ErrBadConn, "load")))
	assert.Equal(t, pkgerrors.CodeInternal, pkgerrors.CodeOf(Classify(errors.New("bad sql"), "load")))
}
