package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeUnitPrice(t *testing.T) {
	assert.Equal(t, 5.0, ComputeUnitPrice(2, 10))
	assert.Equal(t, 0.0, ComputeUnitPrice(0, 10))
	assert.Equal(t, 0.0, ComputeUnitPrice(0, 0))
	assert.Equal(t, 0.0, ComputeUnitPrice(3, 0))
}

func TestNormalize(t *testing.T) {
	u, a := Normalize(UnitGram, 500)
	assert.Equal(t, UnitKilogram, u)
	assert.InDelta(t, 0.5, a, 1e-9)

	u, a = Normalize(UnitMilliliter, 350)
	assert.Equal(t, UnitLiter, u)
	assert.InDelta(t, 0.35, a, 1e-9)

	u, a = Normalize(UnitEach, 12)
	assert.Equal(t, UnitEach, u)
	assert.Equal(t, 12.0, a)

	u, a = Normalize(Unit("dz"), 2)
	assert.Equal(t, Unit("dz"), u)
	assert.Equal(t, 2.0, a)
}

func TestParseUnit(t *testing.T) {
	assert.Equal(t, UnitLiter, ParseUnit(" L "))
	assert.Equal(t, UnitMilliliter, ParseUnit("mL"))
	assert.Equal(t, UnitKilogram, ParseUnit("KG"))
	assert.Equal(t, UnitEach, ParseUnit("unidade"))
	assert.False(t, ParseUnit("box").Known())
}

func TestGramsCompareAgainstKilograms(t *testing.T) {
	products := []Product{
		{ID: "a", Unit: UnitKilogram, Amount: 1, PackagePrice: 10},
		{ID: "b", Unit: UnitGram, Amount: 500, PackagePrice: 4},
	}

	groups := GroupByUnit(products)
	require.Len(t, groups, 1)
	kg := groups[UnitKilogram]
	require.Len(t, kg, 2)
	assert.Equal(t, "b", kg[0].ID)
	assert.InDelta(t, 8.0, kg[0].PricePerUnit, 1e-9)
	assert.InDelta(t, 10.0, kg[1].PricePerUnit, 1e-9)

	best := BestInUnit(products, UnitKilogram)
	require.NotNil(t, best)
	assert.Equal(t, "b", best.ID)
	assert.True(t, IsBest(products, products[1]))
	assert.False(t, IsBest(products, products[0]))
}

func TestGroupByUnitSortedWithinFamily(t *testing.T) {
	products := []Product{
		{ID: "1", Unit: UnitLiter, Amount: 2, PackagePrice: 9},
		{ID: "2", Unit: UnitEach, Amount: 6, PackagePrice: 12},
		{ID: "3", Unit: UnitMilliliter, Amount: 500, PackagePrice: 2},
		{ID: "4", Unit: UnitLiter, Amount: 1, PackagePrice: 3.5},
		{ID: "5", Unit: UnitEach, Amount: 12, PackagePrice: 18},
	}

	groups := GroupByUnit(products)
	require.Len(t, groups, 2)
	for unit, g := range groups {
		for i := 1; i < len(g); i++ {
			assert.LessOrEqual(t, g[i-1].PricePerUnit, g[i].PricePerUnit, "family %s not sorted", unit)
		}
	}
	assert.Equal(t, []string{"4", "3", "1"}, ids(groups[UnitLiter]))
	assert.Equal(t, []string{"5", "2"}, ids(groups[UnitEach]))
	assert.Equal(t, []Unit{UnitLiter, UnitEach}, Families(products))
}

func TestGroupByUnitStableOnTies(t *testing.T) {
	products := []Product{
		{ID: "first", Unit: UnitKilogram, Amount: 1, PackagePrice: 10},
		{ID: "second", Unit: UnitGram, Amount: 1000, PackagePrice: 10},
		{ID: "cheap", Unit: UnitKilogram, Amount: 2, PackagePrice: 10},
		{ID: "third", Unit: UnitKilogram, Amount: 0.5, PackagePrice: 5},
	}

	g := GroupByUnit(products)[UnitKilogram]
	assert.Equal(t, []string{"cheap", "first", "second", "third"}, ids(g))
}

func TestBestInUnitTieReturnsFirstInserted(t *testing.T) {
	products := []Product{
		{ID: "x", Unit: UnitEach, Amount: 2, PackagePrice: 4},
		{ID: "y", Unit: UnitEach, Amount: 1, PackagePrice: 2},
	}
	best := BestInUnit(products, UnitEach)
	require.NotNil(t, best)
	assert.Equal(t, "x", best.ID)
	assert.True(t, IsBest(products, products[0]))
	assert.False(t, IsBest(products, products[1]))
}

func TestBestInUnitIsMinimum(t *testing.T) {
	products := []Product{
		{ID: "a", Unit: UnitGram, Amount: 200, PackagePrice: 3},
		{ID: "b", Unit: UnitKilogram, Amount: 1, PackagePrice: 14},
		{ID: "c", Unit: UnitGram, Amount: 750, PackagePrice: 9},
	}
	best := BestInUnit(products, UnitGram)
	require.NotNil(t, best)
	for _, p := range products {
		assert.LessOrEqual(t, best.PricePerUnit, UnitPrice(p))
	}
}

func TestBestInUnitEmpty(t *testing.T) {
	assert.Nil(t, BestInUnit(nil, UnitKilogram))
	assert.Nil(t, BestInUnit([]Product{{ID: "a", Unit: UnitEach, Amount: 1, PackagePrice: 1}}, UnitLiter))
	assert.False(t, IsBest(nil, Product{ID: "a", Unit: UnitEach}))
}

func TestZeroAmountIsDegenerate(t *testing.T) {
	products := []Product{
		{ID: "zero", Unit: UnitKilogram, Amount: 0, PackagePrice: 25},
		{ID: "real", Unit: UnitKilogram, Amount: 1, PackagePrice: 12},
	}
	g := GroupByUnit(products)[UnitKilogram]
	assert.Equal(t, "zero", g[0].ID)
	assert.Equal(t, 0.0, g[0].PricePerUnit)
	assert.InDelta(t, 12.0, PotentialSavings(products), 1e-9)
}

func TestPotentialSavings(t *testing.T) {
	assert.Equal(t, 0.0, PotentialSavings(nil))
	assert.Equal(t, 0.0, PotentialSavings([]Product{{ID: "a", Unit: UnitKilogram, Amount: 1, PackagePrice: 9}}))

	products := []Product{
		{ID: "a", Unit: UnitKilogram, Amount: 1, PackagePrice: 10},
		{ID: "b", Unit: UnitGram, Amount: 500, PackagePrice: 4},
		{ID: "c", Unit: UnitLiter, Amount: 1, PackagePrice: 7},
		{ID: "d", Unit: UnitEach, Amount: 6, PackagePrice: 12},
		{ID: "e", Unit: UnitEach, Amount: 4, PackagePrice: 12},
	}
	// kg: 10 - 8, l: single product, un: 3 - 2
	assert.InDelta(t, 3.0, PotentialSavings(products), 1e-9)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Stats{}, Summarize(nil))

	products := []Product{
		{ID: "a", Unit: UnitKilogram, Amount: 1, PackagePrice: 10},
		{ID: "b", Unit: UnitGram, Amount: 500, PackagePrice: 4},
		{ID: "c", Unit: UnitMilliliter, Amount: 1000, PackagePrice: 7},
	}
	stats := Summarize(products)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalUnits)
	assert.InDelta(t, 2.0, stats.PotentialSavings, 1e-9)
}

func TestRepriceAfterEdit(t *testing.T) {
	p := Reprice(Product{ID: "a", Unit: UnitGram, Amount: 250, PackagePrice: 5})
	assert.InDelta(t, 20.0, p.PricePerUnit, 1e-9)

	p.Amount = 1000
	p.PackagePrice = 6
	p = Reprice(p)
	_, base := Normalize(p.Unit, p.Amount)
	assert.Equal(t, ComputeUnitPrice(base, p.PackagePrice), p.PricePerUnit)
}

func TestGroupByUnitIgnoresStalePrice(t *testing.T) {
	stale := Product{ID: "a", Unit: UnitKilogram, Amount: 2, PackagePrice: 10, PricePerUnit: 99}
	g := GroupByUnit([]Product{stale})[UnitKilogram]
	assert.InDelta(t, 5.0, g[0].PricePerUnit, 1e-9)
}

func TestGroupByUnitDoesNotMutateInput(t *testing.T) {
	products := []Product{
		{ID: "a", Unit: UnitKilogram, Amount: 1, PackagePrice: 10},
		{ID: "b", Unit: UnitKilogram, Amount: 1, PackagePrice: 5},
	}
	_ = GroupByUnit(products)
	assert.Equal(t, "a", products[0].ID)
	assert.Equal(t, 0.0, products[0].PricePerUnit)
}

func TestIdempotent(t *testing.T) {
	products := []Product{
		{ID: "a", Unit: UnitKilogram, Amount: 1, PackagePrice: 10.1},
		{ID: "b", Unit: UnitGram, Amount: 300, PackagePrice: 4.3},
		{ID: "c", Unit: UnitMilliliter, Amount: 900, PackagePrice: 3.7},
		{ID: "d", Unit: UnitLiter, Amount: 2, PackagePrice: 6.9},
	}
	first := PotentialSavings(products)
	for range 20 {
		assert.Equal(t, first, PotentialSavings(products))
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}
