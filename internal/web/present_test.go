package web

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/domain"
	"github.com/vbonduro/cartwise/internal/pricing"
)

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "kg", unitLabel(pricing.UnitKilogram))
	assert.Equal(t, "g", unitLabel(pricing.UnitGram))
	assert.Equal(t, "L", unitLabel(pricing.UnitLiter))
	assert.Equal(t, "mL", unitLabel(pricing.UnitMilliliter))
	assert.Equal(t, "un", unitLabel(pricing.UnitEach))
	assert.Equal(t, "dz", unitLabel(pricing.Unit("dz")))
}

func TestCategoryIconCoversDefaultTaxonomy(t *testing.T) {
	for _, name := range category.DefaultTaxonomy().Names() {
		assert.Contains(t, categoryIcons, name)
	}
	assert.NotEqual(t, categoryIcon(category.Uncategorized), categoryIcon("Promoções"))
}

func TestNumber(t *testing.T) {
	f, err := number("amount", json.Number("2.5"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	f, err = number("amount", json.Number(""))
	require.NoError(t, err)
	assert.Zero(t, f)

	_, err = number("amount", json.Number("abc"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInteger(t *testing.T) {
	i, err := integer("quantity", json.Number("3"))
	require.NoError(t, err)
	assert.Equal(t, 3, i)

	_, err = integer("quantity", json.Number("1.5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
