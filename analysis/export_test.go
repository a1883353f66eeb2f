package analysis

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Passengers 车上所有人的ID（升序）
func (m *Manifest[V]) Passengers(vehicleID string) []string {
	ids := lo.Keys(m.aboard[vehicleID])
	slices.Sort(ids)
	return ids
}
