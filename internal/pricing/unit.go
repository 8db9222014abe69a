package pricing

import "strings"

// Unit is the package unit a product is sold in.
type Unit string

const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitEach       Unit = "un"
)

// ParseUnit maps user spellings ("KG", "L", "mL", "unidade") onto a Unit.
// Anything unrecognized is kept as its lowercased, trimmed self and forms its
// own family.
func ParseUnit(s string) Unit {
	u := strings.ToLower(strings.TrimSpace(s))
	switch u {
	case "unidade", "unidades", "each", "ea", "pc", "pcs":
		return UnitEach
	case "lt", "litro", "litros":
		return UnitLiter
	}
	return Unit(u)
}

// Known reports whether u is one of the units the comparator converts or
// treats as a base family.
func (u Unit) Known() bool {
	switch u {
	case UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitEach:
		return true
	}
	return false
}

// Normalize converts an amount into its family's base unit: grams become
// kilograms and millilitres become litres. Other units are returned as-is.
func Normalize(u Unit, amount float64) (Unit, float64) {
	switch u {
	case UnitGram:
		return UnitKilogram, amount / 1000
	case UnitMilliliter:
		return UnitLiter, amount / 1000
	}
	return u, amount
}

// Family returns the base unit u is compared under.
func Family(u Unit) Unit {
	f, _ := Normalize(u, 0)
	return f
}
