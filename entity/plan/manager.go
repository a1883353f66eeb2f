package plan

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/entity"
	"golang.org/x/exp/slices"
)

// Person 一个人及其被选中的计划
type Person struct {
	ID   string
	Plan []entity.PlanElement
}

// PlanManager 计划管理器
// 功能：保存每个人被选中的计划（只保存计划元素以节省内存）
type PlanManager struct {
	data map[string][]entity.PlanElement
	ids  []string
}

func NewManager() *PlanManager {
	return &PlanManager{
		data: make(map[string][]entity.PlanElement),
		ids:  make([]string, 0),
	}
}

// Init 初始化所有人的计划
// 功能：建立ID到计划的映射并检查计划结构
// 参数：persons-人员列表
// 返回：重复ID或计划结构错误时返回错误
// 算法说明：
// 1. 计划必须非空，以活动开始
// 2. 活动与出行段交替出现（相邻两个元素类型不同）
func (m *PlanManager) Init(persons []Person) error {
	m.data = make(map[string][]entity.PlanElement, len(persons))
	for _, p := range persons {
		if _, ok := m.data[p.ID]; ok {
			return fmt.Errorf("persons have duplicated ids %s, please check data", p.ID)
		}
		if err := checkPlan(p.Plan); err != nil {
			return fmt.Errorf("person %s: %w", p.ID, err)
		}
		m.data[p.ID] = p.Plan
	}
	m.ids = lo.Keys(m.data)
	slices.Sort(m.ids)
	log.Infof("Person: %v", len(m.ids))
	return nil
}

func checkPlan(plan []entity.PlanElement) error {
	if len(plan) == 0 {
		return fmt.Errorf("empty plan")
	}
	if plan[0].Kind != entity.PlanActivity {
		return fmt.Errorf("plan starts with %v", plan[0])
	}
	for i := 1; i < len(plan); i++ {
		if plan[i].Kind == plan[i-1].Kind {
			return fmt.Errorf("plan element %d (%v) follows another %v", i, plan[i], plan[i].Kind)
		}
	}
	return nil
}

func (m *PlanManager) Get(id string) ([]entity.PlanElement, bool) {
	p, ok := m.data[id]
	return p, ok
}

// IDs 所有Person ID（升序）
func (m *PlanManager) IDs() []string {
	return m.ids
}
