package entity

import "errors"

// ErrUnknownEntity 实体目录中不存在该ID
// 说明：目录应当覆盖事件流引用的所有ID，查找失败说明网络文件与事件日志不匹配
var ErrUnknownEntity = errors.New("unknown entity")

// Manager依赖倒置

// entity/link/manager.go的依赖倒置
type ILinkManager interface {
	// 输入Link ID，查找Link，如果不存在则返回包装了ErrUnknownEntity的error
	GetOrError(id string) (Link, error)
	// 所有Link ID（升序）
	IDs() []string
}

// entity/vehicle/manager.go的依赖倒置
type IVehicleManager interface {
	// 输入Vehicle ID，查找车辆类型，不存在时ok为false
	Type(id string) (typeID string, ok bool)
}

// entity/plan/manager.go的依赖倒置
type IPlanManager interface {
	// 输入Person ID，查找其被选中的计划，不存在时ok为false
	Get(id string) (plan []PlanElement, ok bool)
	// 所有有计划的Person ID（升序）
	IDs() []string
}
