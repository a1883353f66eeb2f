package trip

import (
	"fmt"

	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/container"
)

// personTrips 一个人的所有trip，最后一个可能未结束
type personTrips struct {
	trips []*Trip
}

// open 进行中的trip
func (p *personTrips) open() (*Trip, bool) {
	if len(p.trips) == 0 {
		return nil, false
	}
	last := p.trips[len(p.trips)-1]
	return last, !last.Completed
}

// Analysis trip重建状态机
// 功能：把每个人的事件序列重建为trip序列
// 说明：每个人只有两个状态，没有进行中的trip或有一个进行中的trip
// 算法说明：
// 1. 非中间活动结束且没有进行中的trip时创建新trip
// 2. 出发事件记录出行方式，上车事件把trip登记到车辆乘员表
// 3. 车辆的路段事件通过乘员表更新车上所有人的trip
// 4. 非中间活动开始时结束trip
type Analysis struct {
	links       entity.ILinkManager
	recorder    *analysis.Recorder
	stageSuffix string

	persons  *container.Store[string, *personTrips]
	manifest *analysis.Manifest[*Trip]
}

// New 创建trip重建组件
// 参数：links-路段目录，recorder-异常记录器，stageSuffix-中间活动类型后缀（空则使用默认值）
func New(links entity.ILinkManager, recorder *analysis.Recorder, stageSuffix string) *Analysis {
	if stageSuffix == "" {
		stageSuffix = analysis.DefaultStageActivitySuffix
	}
	return &Analysis{
		links:       links,
		recorder:    recorder,
		stageSuffix: stageSuffix,
		persons:     container.NewStore[string, *personTrips](),
		manifest:    analysis.NewManifest[*Trip](),
	}
}

func (a *Analysis) Name() string {
	return "trip"
}

func (a *Analysis) Handle(e event.Event) error {
	switch e := e.(type) {
	case event.ActivityEnd:
		return a.onActivityEnd(e)
	case event.PersonDeparture:
		return a.onDeparture(e)
	case event.PersonEntersVehicle:
		a.onEntersVehicle(e)
	case event.LinkEnter:
		return a.onLink(e.VehicleID, e.LinkID, true)
	case event.LinkLeave:
		return a.onLink(e.VehicleID, e.LinkID, false)
	case event.PersonLeavesVehicle:
		a.onLeavesVehicle(e)
	case event.ActivityStart:
		return a.onActivityStart(e)
	}
	return nil
}

func (a *Analysis) onActivityEnd(e event.ActivityEnd) error {
	if analysis.IsStageActivity(e.ActType, a.stageSuffix) {
		return nil
	}
	p := a.persons.GetOrInsert(e.PersonID, func() *personTrips { return &personTrips{} })
	if _, ok := p.open(); ok {
		return nil
	}
	start, err := a.links.GetOrError(e.LinkID)
	if err != nil {
		return err
	}
	p.trips = append(p.trips, newTrip(e.PersonID, len(p.trips)+1, start))
	return nil
}

func (a *Analysis) openTrip(personID string) (*Trip, bool) {
	p, ok := a.persons.Get(personID)
	if !ok {
		return nil, false
	}
	return p.open()
}

func (a *Analysis) onDeparture(e event.PersonDeparture) error {
	t, ok := a.openTrip(e.PersonID)
	if !ok {
		return nil
	}
	l, err := a.links.GetOrError(e.LinkID)
	if err != nil {
		return err
	}
	t.Modes = append(t.Modes, e.LegMode)
	t.visit(l)
	return nil
}

func (a *Analysis) onEntersVehicle(e event.PersonEntersVehicle) {
	t, ok := a.openTrip(e.PersonID)
	if !ok {
		return
	}
	if prev, moved := a.manifest.Board(e.VehicleID, e.PersonID, t); moved {
		a.recorder.Report(analysis.Anomaly{
			Kind:      analysis.AnomalyMissingCorrelation,
			Time:      e.T,
			PersonID:  e.PersonID,
			VehicleID: e.VehicleID,
			Message:   fmt.Sprintf("person entered vehicle %s while still in vehicle %s", e.VehicleID, prev),
		})
	}
}

func (a *Analysis) onLink(vehicleID, linkID string, enter bool) error {
	if a.manifest.Len(vehicleID) == 0 {
		return nil
	}
	l, err := a.links.GetOrError(linkID)
	if err != nil {
		return err
	}
	a.manifest.Each(vehicleID, func(_ string, t *Trip) {
		if enter {
			t.visit(l)
		} else {
			t.pass(l)
		}
	})
	return nil
}

// onLeavesVehicle 下车
// 说明：从未有过trip的人（例如公交司机）下车只输出debug日志
func (a *Analysis) onLeavesVehicle(e event.PersonLeavesVehicle) {
	if _, ok := a.manifest.Alight(e.VehicleID, e.PersonID); !ok {
		if _, known := a.persons.Get(e.PersonID); !known {
			log.Debugf("person %s left vehicle %s without any trip", e.PersonID, e.VehicleID)
			return
		}
		a.recorder.Report(analysis.Anomaly{
			Kind:      analysis.AnomalyMissingCorrelation,
			Time:      e.T,
			PersonID:  e.PersonID,
			VehicleID: e.VehicleID,
			Message:   "person left a vehicle without an open trip in it",
		})
	}
}

func (a *Analysis) onActivityStart(e event.ActivityStart) error {
	if analysis.IsStageActivity(e.ActType, a.stageSuffix) {
		return nil
	}
	t, ok := a.openTrip(e.PersonID)
	if !ok {
		return nil
	}
	end, err := a.links.GetOrError(e.LinkID)
	if err != nil {
		return err
	}
	t.complete(end)
	// 缺少下车事件时仍在车上，移除后之后的路段事件不再修改已结束的trip
	if v, ok := a.manifest.VehicleOf(e.PersonID); ok {
		a.manifest.Alight(v, e.PersonID)
		a.recorder.Report(analysis.Anomaly{
			Kind:      analysis.AnomalyMissingCorrelation,
			Time:      e.T,
			PersonID:  e.PersonID,
			VehicleID: v,
			LinkID:    e.LinkID,
			Message:   fmt.Sprintf("person started an activity while still in vehicle %s", v),
		})
	}
	return nil
}

// Finish 未结束的trip作为Completed=false的结果输出，不作为异常
func (a *Analysis) Finish() []analysis.Anomaly {
	return nil
}

// Trips 所有trip（按Person ID、trip编号排序）
// 说明：返回副本，可以在回放过程中调用
func (a *Analysis) Trips() []Trip {
	trips := make([]Trip, 0, a.persons.Len())
	a.persons.Range(func(_ string, p *personTrips) {
		for _, t := range p.trips {
			trips = append(trips, t.clone())
		}
	})
	return trips
}
