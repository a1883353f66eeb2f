package trip

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/entity"
)

// TrafficKind trip与柏林的关系
type TrafficKind int32

const (
	TrafficUnknown           TrafficKind = iota // 终点未知（trip未结束）
	TrafficBerlinInternal                       // 起终点都在柏林
	TrafficBerlinOrigin                         // 从柏林出发
	TrafficBerlinDestination                    // 到达柏林
	TrafficBerlinThrough                        // 起终点都不在柏林，途经柏林
	TrafficNonBerlin                            // 与柏林无关
)

var trafficKindNames = map[TrafficKind]string{
	TrafficUnknown:           "unknown",
	TrafficBerlinInternal:    "berlin_internal",
	TrafficBerlinOrigin:      "berlin_origin",
	TrafficBerlinDestination: "berlin_destination",
	TrafficBerlinThrough:     "berlin_through",
	TrafficNonBerlin:         "non_berlin",
}

func (k TrafficKind) String() string {
	if name, ok := trafficKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TrafficKind(%d)", int32(k))
}

// ClassifyTraffic 根据起点、途经、终点是否在柏林分类
// 参数：destination为nil表示终点未知
func ClassifyTraffic(originInBerlin, anyLinkInBerlin bool, destinationInBerlin *bool) TrafficKind {
	if destinationInBerlin == nil {
		return TrafficUnknown
	}
	switch {
	case originInBerlin && *destinationInBerlin:
		return TrafficBerlinInternal
	case originInBerlin:
		return TrafficBerlinOrigin
	case *destinationInBerlin:
		return TrafficBerlinDestination
	case anyLinkInBerlin:
		return TrafficBerlinThrough
	default:
		return TrafficNonBerlin
	}
}

// DistanceCategory 行驶距离的统计类别
// 说明：A为柏林环保区内，B为柏林环保区外
type DistanceCategory int

const (
	CarBerlinAMainStreet DistanceCategory = iota
	CarBerlinASideStreet
	CarBerlinAOtherStreet
	CarBerlinBMainStreet
	CarBerlinBSideStreet
	CarBerlinBOtherStreet
	CarBrandenburg
	PtBerlinA
	PtBerlinB
	PtBrandenburg
	NumDistanceCategories
)

var distanceCategoryNames = [NumDistanceCategories]string{
	"car_berlin_a_main_street",
	"car_berlin_a_side_street",
	"car_berlin_a_other_street",
	"car_berlin_b_main_street",
	"car_berlin_b_side_street",
	"car_berlin_b_other_street",
	"car_brandenburg",
	"pt_berlin_a",
	"pt_berlin_b",
	"pt_brandenburg",
}

func (c DistanceCategory) String() string {
	if c >= 0 && c < NumDistanceCategories {
		return distanceCategoryNames[c]
	}
	return fmt.Sprintf("DistanceCategory(%d)", int(c))
}

// DistanceCategories 所有类别（输出列的顺序）
func DistanceCategories() []DistanceCategory {
	return lo.Times(int(NumDistanceCategories), func(i int) DistanceCategory { return DistanceCategory(i) })
}

// CategoryOf 出行方式与路段对应的距离类别
// 返回：car和pt以外的方式或未知区域的路段返回false
func CategoryOf(mode string, l entity.Link) (DistanceCategory, bool) {
	switch mode {
	case "car":
		switch l.AreaKind {
		case entity.AreaBerlinUmweltzone:
			return CarBerlinAMainStreet + roadOffset(l.RoadKind), true
		case entity.AreaBerlinOutsideUmweltzone:
			return CarBerlinBMainStreet + roadOffset(l.RoadKind), true
		case entity.AreaBrandenburg:
			return CarBrandenburg, true
		}
	case "pt":
		switch l.AreaKind {
		case entity.AreaBerlinUmweltzone:
			return PtBerlinA, true
		case entity.AreaBerlinOutsideUmweltzone:
			return PtBerlinB, true
		case entity.AreaBrandenburg:
			return PtBrandenburg, true
		}
	}
	return 0, false
}

func roadOffset(r entity.RoadKind) DistanceCategory {
	switch r {
	case entity.RoadMainStreet:
		return 0
	case entity.RoadSideStreet:
		return 1
	default:
		return 2
	}
}

// Trip 一个人在两个非中间活动之间的一次出行
type Trip struct {
	PersonID string
	Number   int      // 从1开始
	Modes    []string // 各出行段的方式

	StartLinkID string
	StartArea   entity.AreaKind
	LastLinkID  string // 最后经过的路段（结束后为终点路段）
	LastArea    entity.AreaKind
	EndLinkID   string // 只有Completed时有值
	EndArea     entity.AreaKind

	VisitedAreas    []entity.AreaKind // 去重，按首次出现排序，含起点
	AnyLinkInBerlin bool
	Completed       bool

	VisitedLinkCount int
	Distances        [NumDistanceCategories]float64 // 米
}

func newTrip(personID string, number int, start entity.Link) *Trip {
	t := &Trip{
		PersonID:     personID,
		Number:       number,
		Modes:        make([]string, 0, 1),
		StartLinkID:  start.ID,
		StartArea:    start.AreaKind,
		VisitedAreas: make([]entity.AreaKind, 0, 2),
	}
	t.pass(start)
	return t
}

// ID trip编号，格式为person_number
func (t *Trip) ID() string {
	return fmt.Sprintf("%s_%d", t.PersonID, t.Number)
}

// CurrentMode 当前出行段的方式，还未出发时为空
func (t *Trip) CurrentMode() string {
	if len(t.Modes) == 0 {
		return ""
	}
	return t.Modes[len(t.Modes)-1]
}

// pass 经过路段：更新区域、柏林标记和最后路段
func (t *Trip) pass(l entity.Link) {
	if !lo.Contains(t.VisitedAreas, l.AreaKind) {
		t.VisitedAreas = append(t.VisitedAreas, l.AreaKind)
	}
	t.AnyLinkInBerlin = t.AnyLinkInBerlin || l.AreaKind.IsInBerlin()
	t.LastLinkID = l.ID
	t.LastArea = l.AreaKind
}

// visit 进入路段：在pass的基础上计数并按当前方式累计距离
func (t *Trip) visit(l entity.Link) {
	t.pass(l)
	t.VisitedLinkCount++
	if c, ok := CategoryOf(t.CurrentMode(), l); ok {
		t.Distances[c] += l.Length
	}
}

func (t *Trip) complete(end entity.Link) {
	t.pass(end)
	t.EndLinkID = end.ID
	t.EndArea = end.AreaKind
	t.Completed = true
}

// TrafficKind 交通类型，未结束的trip为TrafficUnknown
func (t *Trip) TrafficKind() TrafficKind {
	if !t.Completed {
		return TrafficUnknown
	}
	return ClassifyTraffic(t.StartArea.IsInBerlin(), t.AnyLinkInBerlin, lo.ToPtr(t.EndArea.IsInBerlin()))
}

// clone 复制trip，结果与内部状态不共享切片
func (t *Trip) clone() Trip {
	c := *t
	c.Modes = append([]string(nil), t.Modes...)
	c.VisitedAreas = append([]entity.AreaKind(nil), t.VisitedAreas...)
	return c
}
