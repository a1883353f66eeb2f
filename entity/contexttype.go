package entity

// IDirectory 只读实体目录
// 功能：回放期间分析组件可查询的全部静态数据
// 说明：只读，可以被多个引擎实例并发共享
type IDirectory interface {
	LinkManager() ILinkManager
	VehicleManager() IVehicleManager
	PlanManager() IPlanManager
}
