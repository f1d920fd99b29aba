// Package entity contains the core business objects of the project.
package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CartItem is one line of the in-progress order: a product reference, the
// requested quantity, the chosen customizations and the precomputed line
// total. Lines are keyed by product id plus customization signature.
type CartItem struct {
	ProductID      uuid.UUID
	Title          string
	Image          string
	UnitPrice      int64             // minor units, sale price already applied
	Quantity       int               // always >= 1
	Customizations map[string]string // customization key -> chosen value
	Surcharge      int64             // total customization surcharges for the line
	TotalPrice     int64             // Quantity*UnitPrice + Surcharge
	AddedAt        time.Time
}

// Recalculate recomputes the line total from quantity, unit price and
// customization surcharges.
func (it *CartItem) Recalculate() {
	it.TotalPrice = int64(it.Quantity)*it.UnitPrice + it.Surcharge
}

// CustomizationSignature returns a stable signature for a customization
// mapping so that identical choices merge into one cart line.
func CustomizationSignature(customizations map[string]string) string {
	if len(customizations) == 0 {
		return ""
	}

	keys := make([]string, 0, len(customizations))
	for k := range customizations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+customizations[k])
	}

	return strings.Join(pairs, "|")
}
