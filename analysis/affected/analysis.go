package affected

import (
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/container"
)

// Person 一个人是否使用过被修改的路段
type Person struct {
	ID                  string
	HasUsedModifiedLink bool
}

// Analysis 受政策影响的人
// 功能：找出驾驶或乘坐车辆经过被修改路段（例如限速）的人
// 算法说明：
// 1. 车辆驶入交通时，司机登记为车上的人；驶入的路段被修改时标记司机
// 2. 车辆进入被修改的路段时标记车上所有的人
// 3. 车辆驶出交通时移除司机
type Analysis struct {
	links    entity.ILinkManager
	plans    entity.IPlanManager
	recorder *analysis.Recorder

	affected   *container.Store[string, bool]
	passengers *analysis.Manifest[struct{}]
}

// New 创建组件
// 参数：plans-计划目录，其中所有人都会出现在结果中（可以为nil）
func New(links entity.ILinkManager, plans entity.IPlanManager, recorder *analysis.Recorder) *Analysis {
	a := &Analysis{
		links:      links,
		plans:      plans,
		recorder:   recorder,
		affected:   container.NewStore[string, bool](),
		passengers: analysis.NewManifest[struct{}](),
	}
	if plans != nil {
		for _, id := range plans.IDs() {
			a.affected.Set(id, false)
		}
	}
	return a
}

func (a *Analysis) Name() string {
	return "affected"
}

func (a *Analysis) modified(linkID string) (bool, error) {
	l, err := a.links.GetOrError(linkID)
	if err != nil {
		return false, err
	}
	return l.Modified, nil
}

func (a *Analysis) Handle(e event.Event) error {
	switch e := e.(type) {
	case event.VehicleEntersTraffic:
		m, err := a.modified(e.LinkID)
		if err != nil {
			return err
		}
		a.affected.GetOrInsert(e.PersonID, func() bool { return false })
		if m {
			a.affected.Set(e.PersonID, true)
		}
		a.passengers.Board(e.VehicleID, e.PersonID, struct{}{})
	case event.LinkEnter:
		m, err := a.modified(e.LinkID)
		if err != nil {
			return err
		}
		if m {
			a.passengers.Each(e.VehicleID, func(personID string, _ struct{}) {
				a.affected.Set(personID, true)
			})
		}
	case event.VehicleLeavesTraffic:
		if _, ok := a.passengers.Alight(e.VehicleID, e.PersonID); !ok {
			a.recorder.Report(analysis.Anomaly{
				Kind:      analysis.AnomalyMissingCorrelation,
				Time:      e.T,
				PersonID:  e.PersonID,
				VehicleID: e.VehicleID,
				LinkID:    e.LinkID,
				Message:   "vehicle left traffic without entering it",
			})
		}
	}
	return nil
}

func (a *Analysis) Finish() []analysis.Anomaly {
	return nil
}

// Persons 所有人（按ID排序）
func (a *Analysis) Persons() []Person {
	persons := make([]Person, 0, a.affected.Len())
	a.affected.Range(func(id string, used bool) {
		persons = append(persons, Person{ID: id, HasUsedModifiedLink: used})
	})
	return persons
}
