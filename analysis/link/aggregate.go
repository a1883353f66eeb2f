package link

import (
	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/utils/container"
	"golang.org/x/exp/slices"
)

// DefaultPeakWindow 峰值窗口宽度（秒）
const DefaultPeakWindow = 3600.0

// Traversal 一次完成的路段通行
type Traversal struct {
	VehicleID         string
	Enter             float64
	Leave             float64
	EnteredAtBoundary bool // 从上游节点进入（LinkEnter），否则为路段中间驶入
	LeftAtBoundary    bool // 从下游节点离开（LinkLeave），否则为路段中间驶出
}

// IsBoundaryToBoundary 是否完整通过路段
func (t Traversal) IsBoundaryToBoundary() bool {
	return t.EnteredAtBoundary && t.LeftAtBoundary
}

// TravelTime 通行时间（秒）
func (t Traversal) TravelTime() float64 {
	return t.Leave - t.Enter
}

// Aggregate 单个路段的统计结果
// 说明：nil表示没有数据，与0不同
type Aggregate struct {
	LinkID               string
	VehicleCount         int
	PeakHourVehicleCount int
	AverageTravelTime    *float64
	MaxTravelTime        *float64
}

// traversalStart 车辆进入路段时的记录
type traversalStart struct {
	t          float64
	atBoundary bool
}

// aggregator 单个路段的统计状态
type aggregator struct {
	open         map[string]traversalStart // vehicle -> 进入记录
	vehicleCount int
	samples      int
	sum          float64
	max          float64

	window *container.PriorityQueue[Traversal] // 按离开时间排序
	peak   int
}

func newAggregator() *aggregator {
	return &aggregator{
		open:   make(map[string]traversalStart),
		window: container.NewPriorityQueue[Traversal](),
	}
}

// add 加入一次完成的通行
// 算法说明：
// 1. 通行时间样本只来自完整通过路段的通行
// 2. 从窗口中移除离开时间早于 进入时间-window 的通行
// 3. 加入本次通行，峰值取窗口大小的最大值
func (a *aggregator) add(t Traversal, window float64) {
	if t.IsBoundaryToBoundary() {
		tt := t.TravelTime()
		if a.samples == 0 || tt > a.max {
			a.max = tt
		}
		a.sum += tt
		a.samples++
	}
	oldest := t.Enter - window
	a.window.PopWhile(func(_ Traversal, leave float64) bool { return leave < oldest })
	a.window.HeapPush(t, t.Leave)
	a.peak = lo.Max([]int{a.peak, a.window.Len()})
}

func (a *aggregator) result(linkID string) Aggregate {
	r := Aggregate{
		LinkID:               linkID,
		VehicleCount:         a.vehicleCount,
		PeakHourVehicleCount: a.peak,
	}
	if a.vehicleCount > 0 {
		r.AverageTravelTime = lo.ToPtr(a.sum / float64(a.vehicleCount))
	}
	if a.samples > 0 {
		r.MaxTravelTime = lo.ToPtr(a.max)
	}
	return r
}

func subtract(minuend, subtrahend *float64) *float64 {
	if minuend == nil || subtrahend == nil {
		return nil
	}
	return lo.ToPtr(*minuend - *subtrahend)
}

// Difference policy与base的差（policy - base）
// 说明：任一方没有数据时差也没有数据
func Difference(base, policy Aggregate) Aggregate {
	return Aggregate{
		LinkID:               policy.LinkID,
		VehicleCount:         policy.VehicleCount - base.VehicleCount,
		PeakHourVehicleCount: policy.PeakHourVehicleCount - base.PeakHourVehicleCount,
		AverageTravelTime:    subtract(policy.AverageTravelTime, base.AverageTravelTime),
		MaxTravelTime:        subtract(policy.MaxTravelTime, base.MaxTravelTime),
	}
}

// DifferenceAll 按路段求差，结果覆盖两边所有路段并按ID排序
// 说明：只在一边出现的路段，另一边视为没有车辆通过（计数为0，时间无数据）
func DifferenceAll(base, policy []Aggregate) []Aggregate {
	byID := func(as []Aggregate) map[string]Aggregate {
		return lo.SliceToMap(as, func(a Aggregate) (string, Aggregate) { return a.LinkID, a })
	}
	b, p := byID(base), byID(policy)
	ids := lo.Uniq(append(lo.Keys(b), lo.Keys(p)...))
	slices.Sort(ids)
	return lo.Map(ids, func(id string, _ int) Aggregate {
		bv, ok := b[id]
		if !ok {
			bv = Aggregate{LinkID: id}
		}
		pv, ok := p[id]
		if !ok {
			pv = Aggregate{LinkID: id}
		}
		return Difference(bv, pv)
	})
}
