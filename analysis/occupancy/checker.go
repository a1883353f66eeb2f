package occupancy

import (
	"fmt"

	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/container"
)

// DefaultCheckedType 默认检查的车辆类型
const DefaultCheckedType = "car"

// Checker 车辆乘员数检查
// 功能：检查指定类型的车辆同一时刻是否只有一名乘员
// 说明：车辆目录中没有的车辆（例如公交车辆）视为不检查的类型
type Checker struct {
	vehicles    entity.IVehicleManager
	recorder    *analysis.Recorder
	checkedType string

	occupancy *container.Store[string, int]
}

func New(vehicles entity.IVehicleManager, recorder *analysis.Recorder, checkedType string) *Checker {
	if checkedType == "" {
		checkedType = DefaultCheckedType
	}
	return &Checker{
		vehicles:    vehicles,
		recorder:    recorder,
		checkedType: checkedType,
		occupancy:   container.NewStore[string, int](),
	}
}

func (c *Checker) Name() string {
	return "occupancy"
}

func (c *Checker) checked(vehicleID string) bool {
	t, ok := c.vehicles.Type(vehicleID)
	return ok && t == c.checkedType
}

func (c *Checker) Handle(e event.Event) error {
	switch e := e.(type) {
	case event.PersonEntersVehicle:
		if !c.checked(e.VehicleID) {
			return nil
		}
		n, _ := c.occupancy.Get(e.VehicleID)
		n++
		c.occupancy.Set(e.VehicleID, n)
		if n > 1 {
			c.recorder.Report(analysis.Anomaly{
				Kind:      analysis.AnomalyOccupancy,
				Time:      e.T,
				PersonID:  e.PersonID,
				VehicleID: e.VehicleID,
				Message:   fmt.Sprintf("vehicle %s has occupancy of %d", e.VehicleID, n),
			})
		}
	case event.PersonLeavesVehicle:
		if !c.checked(e.VehicleID) {
			return nil
		}
		n, ok := c.occupancy.Get(e.VehicleID)
		if !ok {
			c.recorder.Report(analysis.Anomaly{
				Kind:      analysis.AnomalyMissingCorrelation,
				Time:      e.T,
				PersonID:  e.PersonID,
				VehicleID: e.VehicleID,
				Message:   "person left a vehicle nobody entered",
			})
			return nil
		}
		c.occupancy.Set(e.VehicleID, n-1)
	}
	return nil
}

func (c *Checker) Finish() []analysis.Anomaly {
	return nil
}
