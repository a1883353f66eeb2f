package link

import (
	"fmt"

	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/container"
)

// Analysis 路段通行统计
// 功能：统计每个路段的车辆数、通行时间和滑动窗口内的峰值车辆数
type Analysis struct {
	links    entity.ILinkManager
	recorder *analysis.Recorder
	window   float64

	aggregators *container.Store[string, *aggregator]
}

// New 创建路段统计组件
// 参数：window-峰值窗口宽度（秒），不大于0时使用DefaultPeakWindow
func New(links entity.ILinkManager, recorder *analysis.Recorder, window float64) *Analysis {
	if window <= 0 {
		window = DefaultPeakWindow
	}
	return &Analysis{
		links:       links,
		recorder:    recorder,
		window:      window,
		aggregators: container.NewStore[string, *aggregator](),
	}
}

func (a *Analysis) Name() string {
	return "link"
}

func (a *Analysis) Handle(e event.Event) error {
	switch e := e.(type) {
	case event.VehicleEntersTraffic:
		return a.enter(e.T, e.VehicleID, e.LinkID, false)
	case event.LinkEnter:
		return a.enter(e.T, e.VehicleID, e.LinkID, true)
	case event.LinkLeave:
		return a.leave(e.T, e.VehicleID, e.LinkID, true)
	case event.VehicleLeavesTraffic:
		return a.leave(e.T, e.VehicleID, e.LinkID, false)
	}
	return nil
}

func (a *Analysis) lookup(linkID string) (*aggregator, error) {
	if _, err := a.links.GetOrError(linkID); err != nil {
		return nil, err
	}
	return a.aggregators.GetOrInsert(linkID, newAggregator), nil
}

func (a *Analysis) enter(t float64, vehicleID, linkID string, atBoundary bool) error {
	agg, err := a.lookup(linkID)
	if err != nil {
		return err
	}
	if prev, ok := agg.open[vehicleID]; ok {
		a.recorder.Report(analysis.Anomaly{
			Kind:      analysis.AnomalyMissingCorrelation,
			Time:      t,
			VehicleID: vehicleID,
			LinkID:    linkID,
			Message:   fmt.Sprintf("vehicle entered link again without leaving it since %v", prev.t),
		})
	}
	agg.open[vehicleID] = traversalStart{t: t, atBoundary: atBoundary}
	agg.vehicleCount++
	return nil
}

func (a *Analysis) leave(t float64, vehicleID, linkID string, atBoundary bool) error {
	agg, err := a.lookup(linkID)
	if err != nil {
		return err
	}
	start, ok := agg.open[vehicleID]
	if !ok {
		a.recorder.Report(analysis.Anomaly{
			Kind:      analysis.AnomalyMissingCorrelation,
			Time:      t,
			VehicleID: vehicleID,
			LinkID:    linkID,
			Message:   "vehicle left link it never entered",
		})
		return nil
	}
	delete(agg.open, vehicleID)
	agg.add(Traversal{
		VehicleID:         vehicleID,
		Enter:             start.t,
		Leave:             t,
		EnteredAtBoundary: start.atBoundary,
		LeftAtBoundary:    atBoundary,
	}, a.window)
	return nil
}

func (a *Analysis) Finish() []analysis.Anomaly {
	return nil
}

// Results 所有路段的统计结果（覆盖目录中的所有路段，按ID排序）
func (a *Analysis) Results() []Aggregate {
	ids := a.links.IDs()
	results := make([]Aggregate, 0, len(ids))
	for _, id := range ids {
		results = append(results, a.Result(id))
	}
	return results
}

// Result 单个路段的统计结果
func (a *Analysis) Result(linkID string) Aggregate {
	if agg, ok := a.aggregators.Get(linkID); ok {
		return agg.result(linkID)
	}
	return Aggregate{LinkID: linkID}
}
