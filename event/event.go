// 仿真事件模型：回放引擎消费的九类离散事件
package event

import "fmt"

// Kind 事件类型
type Kind int32

const (
	KindVehicleEntersTraffic Kind = iota // 车辆进入路网
	KindVehicleLeavesTraffic             // 车辆离开路网
	KindLinkEnter                        // 车辆从上游节点驶入路段
	KindLinkLeave                        // 车辆从下游节点驶出路段
	KindPersonEntersVehicle              // 人上车
	KindPersonLeavesVehicle              // 人下车
	KindPersonDeparture                  // 人出发（开始一段leg）
	KindActivityStart                    // 活动开始
	KindActivityEnd                      // 活动结束
)

var kindNames = map[Kind]string{
	KindVehicleEntersTraffic: "vehicle enters traffic",
	KindVehicleLeavesTraffic: "vehicle leaves traffic",
	KindLinkEnter:            "entered link",
	KindLinkLeave:            "left link",
	KindPersonEntersVehicle:  "PersonEntersVehicle",
	KindPersonLeavesVehicle:  "PersonLeavesVehicle",
	KindPersonDeparture:      "departure",
	KindActivityStart:        "actstart",
	KindActivityEnd:          "actend",
}

// String 返回事件日志中使用的类型名
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int32(k))
}

// Event 事件
// 功能：所有事件类型的公共接口（封闭的tagged union，只有本包内的类型可以实现）
// 说明：分析组件通过type switch只处理自己关心的分支，其余忽略
type Event interface {
	Time() float64 // 事件时间（仿真开始后的秒数）
	Kind() Kind    // 事件类型

	sealed()
}

// VehicleEntersTraffic 车辆在路段中间进入路网（不在路段上游节点）
type VehicleEntersTraffic struct {
	T         float64
	PersonID  string // 驾驶人
	VehicleID string
	LinkID    string
}

// VehicleLeavesTraffic 车辆在路段中间离开路网
type VehicleLeavesTraffic struct {
	T         float64
	PersonID  string
	VehicleID string
	LinkID    string
}

// LinkEnter 车辆经上游节点驶入路段
type LinkEnter struct {
	T         float64
	VehicleID string
	LinkID    string
}

// LinkLeave 车辆经下游节点驶出路段
type LinkLeave struct {
	T         float64
	VehicleID string
	LinkID    string
}

type PersonEntersVehicle struct {
	T         float64
	PersonID  string
	VehicleID string
}

type PersonLeavesVehicle struct {
	T         float64
	PersonID  string
	VehicleID string
}

// PersonDeparture 人在某路段以某种方式出发
type PersonDeparture struct {
	T        float64
	PersonID string
	LegMode  string
	LinkID   string
}

type ActivityStart struct {
	T        float64
	PersonID string
	ActType  string
	LinkID   string
}

type ActivityEnd struct {
	T        float64
	PersonID string
	ActType  string
	LinkID   string
}

func (e VehicleEntersTraffic) Time() float64 { return e.T }
func (e VehicleLeavesTraffic) Time() float64 { return e.T }
func (e LinkEnter) Time() float64            { return e.T }
func (e LinkLeave) Time() float64            { return e.T }
func (e PersonEntersVehicle) Time() float64  { return e.T }
func (e PersonLeavesVehicle) Time() float64  { return e.T }
func (e PersonDeparture) Time() float64      { return e.T }
func (e ActivityStart) Time() float64        { return e.T }
func (e ActivityEnd) Time() float64          { return e.T }

func (VehicleEntersTraffic) Kind() Kind { return KindVehicleEntersTraffic }
func (VehicleLeavesTraffic) Kind() Kind { return KindVehicleLeavesTraffic }
func (LinkEnter) Kind() Kind            { return KindLinkEnter }
func (LinkLeave) Kind() Kind            { return KindLinkLeave }
func (PersonEntersVehicle) Kind() Kind  { return KindPersonEntersVehicle }
func (PersonLeavesVehicle) Kind() Kind  { return KindPersonLeavesVehicle }
func (PersonDeparture) Kind() Kind      { return KindPersonDeparture }
func (ActivityStart) Kind() Kind        { return KindActivityStart }
func (ActivityEnd) Kind() Kind          { return KindActivityEnd }

func (VehicleEntersTraffic) sealed() {}
func (VehicleLeavesTraffic) sealed() {}
func (LinkEnter) sealed()            {}
func (LinkLeave) sealed()            {}
func (PersonEntersVehicle) sealed()  {}
func (PersonLeavesVehicle) sealed()  {}
func (PersonDeparture) sealed()      {}
func (ActivityStart) sealed()        {}
func (ActivityEnd) sealed()          {}
