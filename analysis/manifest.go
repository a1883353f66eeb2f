package analysis

import (
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Manifest 车辆乘员表
// 功能：记录每辆车当前车上的人以及每个人附带的值（例如其进行中的trip）
// 说明：一个人同一时刻只在一辆车上，person->vehicle索引用于发现重复上车
type Manifest[V any] struct {
	aboard    map[string]map[string]V // vehicle -> person -> value
	vehicleOf map[string]string       // person -> vehicle
}

func NewManifest[V any]() *Manifest[V] {
	return &Manifest[V]{
		aboard:    make(map[string]map[string]V),
		vehicleOf: make(map[string]string),
	}
}

// Board 上车
// 返回：如果此人仍在另一辆车上，则先从那辆车移除，返回那辆车的ID和true
func (m *Manifest[V]) Board(vehicleID, personID string, v V) (previous string, moved bool) {
	if prev, ok := m.vehicleOf[personID]; ok && prev != vehicleID {
		m.remove(prev, personID)
		previous, moved = prev, true
	}
	passengers, ok := m.aboard[vehicleID]
	if !ok {
		passengers = make(map[string]V)
		m.aboard[vehicleID] = passengers
	}
	passengers[personID] = v
	m.vehicleOf[personID] = vehicleID
	return
}

// Alight 下车
// 返回：此人不在该车上时ok为false，乘员表不变
func (m *Manifest[V]) Alight(vehicleID, personID string) (v V, ok bool) {
	v, ok = m.aboard[vehicleID][personID]
	if ok {
		m.remove(vehicleID, personID)
	}
	return
}

func (m *Manifest[V]) remove(vehicleID, personID string) {
	passengers := m.aboard[vehicleID]
	delete(passengers, personID)
	if len(passengers) == 0 {
		delete(m.aboard, vehicleID)
	}
	delete(m.vehicleOf, personID)
}

// Each 遍历车上所有人（按Person ID升序）
func (m *Manifest[V]) Each(vehicleID string, f func(personID string, v V)) {
	passengers, ok := m.aboard[vehicleID]
	if !ok {
		return
	}
	ids := lo.Keys(passengers)
	slices.Sort(ids)
	for _, id := range ids {
		f(id, passengers[id])
	}
}

// VehicleOf 此人当前所在的车辆
func (m *Manifest[V]) VehicleOf(personID string) (string, bool) {
	v, ok := m.vehicleOf[personID]
	return v, ok
}

// Len 车上人数
func (m *Manifest[V]) Len(vehicleID string) int {
	return len(m.aboard[vehicleID])
}
