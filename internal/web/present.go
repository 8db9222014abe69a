package web

import (
	"github.com/vbonduro/cartwise/internal/category"
	"github.com/vbonduro/cartwise/internal/pricing"
)

var categoryIcons = map[string]string{
	"Laticínios":      "🥛",
	"Carnes":          "🥩",
	"Frutas":          "🍎",
	"Verduras":        "🥬",
	"Grãos e Cereais": "🌾",
	"Bebidas":         "🥤",
	"Limpeza":         "🧽",
	"Higiene":         "🧴",
	"Padaria":         "🍞",
	"Congelados":      "🧊",
}

// categoryIcon returns the emoji shown next to a category name.
func categoryIcon(name string) string {
	if icon, ok := categoryIcons[name]; ok {
		return icon
	}
	if name == category.Uncategorized {
		return "❓"
	}
	return "🏷️"
}

// unitLabel is the display spelling of a unit.
func unitLabel(u pricing.Unit) string {
	switch u {
	case pricing.UnitLiter:
		return "L"
	case pricing.UnitMilliliter:
		return "mL"
	}
	return string(u)
}
