package entity

import (
	"fmt"
	"strings"
)

// AreaKind 路段/节点所在的区域类型
type AreaKind int32

const (
	AreaUnknown                 AreaKind = iota // 未知（例如未结束的trip的终点）
	AreaBrandenburg                             // 柏林以外（勃兰登堡州）
	AreaBerlinOutsideUmweltzone                 // 柏林市内，环保区以外
	AreaBerlinUmweltzone                        // 柏林环保区内
)

var areaKindNames = map[AreaKind]string{
	AreaUnknown:                 "unknown",
	AreaBrandenburg:             "brandenburg",
	AreaBerlinOutsideUmweltzone: "berlin_outside_umweltzone",
	AreaBerlinUmweltzone:        "berlin_umweltzone",
}

func (a AreaKind) String() string {
	if name, ok := areaKindNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AreaKind(%d)", int32(a))
}

// IsInBerlin 是否位于柏林市内（含环保区）
func (a AreaKind) IsInBerlin() bool {
	return a == AreaBerlinOutsideUmweltzone || a == AreaBerlinUmweltzone
}

// ParseAreaKind 解析网络属性中的areaKind取值（大小写不敏感）
func ParseAreaKind(s string) (AreaKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range areaKindNames {
		if k != AreaUnknown && name == s {
			return k, nil
		}
	}
	return AreaUnknown, fmt.Errorf("invalid area kind %q", s)
}

// RoadKind 道路类型
type RoadKind int32

const (
	RoadOtherStreet RoadKind = iota // 其他道路（高速、快速路、无类型）
	RoadMainStreet                  // 主干道
	RoadSideStreet                  // 支路、居住区道路
)

var roadKindNames = map[RoadKind]string{
	RoadOtherStreet: "other_street",
	RoadMainStreet:  "main_street",
	RoadSideStreet:  "side_street",
}

func (r RoadKind) String() string {
	if name, ok := roadKindNames[r]; ok {
		return name
	}
	return fmt.Sprintf("RoadKind(%d)", int32(r))
}

// ParseRoadKind 解析网络属性中的roadKind取值（大小写不敏感）
func ParseRoadKind(s string) (RoadKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range roadKindNames {
		if name == s {
			return k, nil
		}
	}
	return RoadOtherStreet, fmt.Errorf("invalid road kind %q", s)
}

var (
	mainStreetTypes = map[string]struct{}{
		"primary": {}, "primary_link": {}, "secondary": {}, "secondary_link": {}, "tertiary": {},
	}
	sideStreetTypes = map[string]struct{}{
		"residential": {}, "living_street": {}, "unclassified": {},
	}
)

// RoadKindFromType 根据OSM道路类型（网络中link的type属性）分类道路
// 功能：主干道、支路以外的类型以及空类型都归为其他道路
func RoadKindFromType(osmType string) RoadKind {
	if _, ok := mainStreetTypes[osmType]; ok {
		return RoadMainStreet
	}
	if _, ok := sideStreetTypes[osmType]; ok {
		return RoadSideStreet
	}
	return RoadOtherStreet
}

// Link 路段静态属性
type Link struct {
	ID       string
	AreaKind AreaKind
	RoadKind RoadKind
	Modified bool    // 是否被政策场景修改（限速等）
	Length   float64 // 长度（米）
}

func (l Link) String() string {
	return fmt.Sprintf("Link{ID=%v, Area=%v, Road=%v, Modified=%v, Length=%v}", l.ID, l.AreaKind, l.RoadKind, l.Modified, l.Length)
}

// PlanElementKind 计划元素类型
type PlanElementKind int32

const (
	PlanActivity PlanElementKind = iota
	PlanLeg
)

func (k PlanElementKind) String() string {
	if k == PlanActivity {
		return "activity"
	}
	return "leg"
}

// PlanElement 计划中的一个元素：活动或出行段
// 说明：活动使用ActType/LinkID，出行段使用Mode/StartLinkID
type PlanElement struct {
	Kind        PlanElementKind
	ActType     string
	LinkID      string
	Mode        string
	StartLinkID string
}

func (e PlanElement) String() string {
	if e.Kind == PlanActivity {
		return fmt.Sprintf("Activity{Type=%v, Link=%v}", e.ActType, e.LinkID)
	}
	return fmt.Sprintf("Leg{Mode=%v, StartLink=%v}", e.Mode, e.StartLinkID)
}

// Activity 构造活动元素
func Activity(actType, linkID string) PlanElement {
	return PlanElement{Kind: PlanActivity, ActType: actType, LinkID: linkID}
}

// Leg 构造出行段元素
func Leg(mode, startLinkID string) PlanElement {
	return PlanElement{Kind: PlanLeg, Mode: mode, StartLinkID: startLinkID}
}

// PlanLinkIDs 计划中引用的所有路段ID（去重，按首次出现排序）
// 说明：出行段没有起点路段时不计入
func PlanLinkIDs(plan []PlanElement) []string {
	ids := make([]string, 0, len(plan))
	seen := make(map[string]struct{}, len(plan))
	for _, e := range plan {
		id := e.LinkID
		if e.Kind == PlanLeg {
			id = e.StartLinkID
		}
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
