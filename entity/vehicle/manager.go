package vehicle

import (
	"fmt"

	"github.com/unsap/matsim-berlin-homework/entity"
)

var _ entity.IVehicleManager = (*VehicleManager)(nil)

// Vehicle 车辆静态数据
type Vehicle struct {
	ID     string
	TypeID string // 车辆类型，例如car、freight；公交车辆通常不在车辆文件中
}

// VehicleManager 车辆管理器
// 功能：提供车辆ID到车辆类型的查找
// 说明：只包含车辆文件中的车辆，公交车辆文件单独读取时才会出现公交车
type VehicleManager struct {
	data map[string]string
}

func NewManager() *VehicleManager {
	return &VehicleManager{data: make(map[string]string)}
}

// Init 初始化所有车辆
// 返回：存在重复ID或空类型时返回错误
func (m *VehicleManager) Init(vehicles []Vehicle) error {
	m.data = make(map[string]string, len(vehicles))
	for _, v := range vehicles {
		if _, ok := m.data[v.ID]; ok {
			return fmt.Errorf("vehicles have duplicated ids %s, please check data", v.ID)
		}
		if v.TypeID == "" {
			return fmt.Errorf("vehicle %s has no type", v.ID)
		}
		m.data[v.ID] = v.TypeID
	}
	log.Infof("Vehicle: %v", len(m.data))
	return nil
}

func (m *VehicleManager) Type(id string) (string, bool) {
	t, ok := m.data[id]
	return t, ok
}
