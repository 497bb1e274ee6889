package ilerr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vansweej/parlang/frontend/ilerr"
	"github.com/vansweej/parlang/frontend/types"
)

func TestFormatWithCode(t *testing.T) {
	err := ilerr.New(ilerr.NewUnboundVariable{Name: "x"})
	assert.Equal(t, ilerr.UnboundVariable, err.Code())
	assert.Contains(t, ilerr.FormatWithCode(err), "(E001)")
	assert.Contains(t, err.Error(), "x")

	mismatch := ilerr.New(ilerr.NewUnificationFailure{
		First:  types.IntType,
		Second: types.BoolType,
	})
	assert.Contains(t, mismatch.Error(), "Int")
	assert.Contains(t, mismatch.Error(), "Bool")
}

func TestErrorsAccumulator(t *testing.T) {
	var errs *ilerr.Errors
	assert.False(t, errs.HasError())
	assert.Empty(t, errs.Errors())

	errs = errs.With(ilerr.New(ilerr.NewUnboundVariable{Name: "x"}))
	assert.True(t, errs.HasError())
	assert.Len(t, errs.Errors(), 1)

	var other *ilerr.Errors
	other = other.With(ilerr.New(ilerr.NewUnknownConstructor{Name: "Some"}))
	merged := errs.Merge(other).Merge(nil)
	assert.Len(t, merged.Errors(), 2)
}
