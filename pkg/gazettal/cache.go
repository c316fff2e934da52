package gazettal

import (
	"fmt"
	"strings"
)

// Separator joins representations of categories and criteria.
const Separator = ", "

// Cache holds the denormalized summary of a gazettal's categories and
// criteria. It is never authoritative and is always re-derivable from the
// current many-to-many relations.
type Cache struct {
	Category string
	Criteria string
	Label    string
}

// ComputeCache derives the cache fields from categories and criteria.
// The order of the input is kept. The result depends only on the input.
func ComputeCache[C, K fmt.Stringer](categories []C, criteria []K) Cache {
	cat := join(categories)
	crit := join(criteria)
	return Cache{
		Category: cat,
		Criteria: crit,
		Label:    strings.TrimSpace(cat + " " + crit),
	}
}

func join[T fmt.Stringer](items []T) string {
	res := make([]string, len(items))
	for i := range items {
		res[i] = items[i].String()
	}
	return strings.Join(res, Separator)
}
