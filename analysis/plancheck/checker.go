package plancheck

import (
	"fmt"

	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/container"
)

// firstCursor 计划中第一个要与事件比较的元素
// 说明：元素0是第一个活动，它没有开始事件
const firstCursor = 1

// Checker 计划与事件一致性检查
// 功能：按顺序把每个人的活动开始和出发事件与其计划比较
// 算法说明：
// 1. 每个人维护一个指向下一个未比较计划元素的游标
// 2. 不一致时报告异常，无论是否一致游标都前进一步，避免一次偏差导致后续全部报错
// 3. 回放结束时游标未到达计划末尾的人报告计划未执行完
type Checker struct {
	plans    entity.IPlanManager
	recorder *analysis.Recorder

	cursors *container.Store[string, int]
	noPlan  *container.Store[string, struct{}]
	t       float64
}

func New(plans entity.IPlanManager, recorder *analysis.Recorder) *Checker {
	return &Checker{
		plans:    plans,
		recorder: recorder,
		cursors:  container.NewStore[string, int](),
		noPlan:   container.NewStore[string, struct{}](),
	}
}

func (c *Checker) Name() string {
	return "plancheck"
}

func (c *Checker) Handle(e event.Event) error {
	c.t = e.Time()
	switch e := e.(type) {
	case event.ActivityStart:
		c.check(e.PersonID, e.T, func(p entity.PlanElement) string {
			if p.Kind != entity.PlanActivity {
				return fmt.Sprintf("expected %v, got activity %s on link %s", p, e.ActType, e.LinkID)
			}
			if p.ActType != e.ActType || p.LinkID != e.LinkID {
				return fmt.Sprintf("activity does not match: planned %v, got activity %s on link %s", p, e.ActType, e.LinkID)
			}
			return ""
		})
	case event.PersonDeparture:
		c.check(e.PersonID, e.T, func(p entity.PlanElement) string {
			if p.Kind != entity.PlanLeg {
				return fmt.Sprintf("expected %v, got %s leg from link %s", p, e.LegMode, e.LinkID)
			}
			if p.Mode != e.LegMode || p.StartLinkID != e.LinkID {
				return fmt.Sprintf("leg does not match: planned %v, got %s leg from link %s", p, e.LegMode, e.LinkID)
			}
			return ""
		})
	}
	return nil
}

// check 与下一个计划元素比较，compare返回非空字符串表示不一致
func (c *Checker) check(personID string, t float64, compare func(entity.PlanElement) string) {
	plan, ok := c.plans.Get(personID)
	if !ok {
		if _, reported := c.noPlan.Get(personID); !reported {
			c.noPlan.Set(personID, struct{}{})
			c.recorder.Report(analysis.Anomaly{
				Kind:     analysis.AnomalyNoPlan,
				Time:     t,
				PersonID: personID,
				Message:  "person has no plan",
			})
		}
		return
	}
	cursor := c.cursor(personID)
	var msg string
	if cursor >= len(plan) {
		msg = fmt.Sprintf("no planned element left after %d elements", len(plan))
	} else {
		msg = compare(plan[cursor])
	}
	if msg != "" {
		c.recorder.Report(analysis.Anomaly{
			Kind:     analysis.AnomalyPlanDivergence,
			Time:     t,
			PersonID: personID,
			Message:  msg,
		})
	}
	c.cursors.Set(personID, cursor+1)
}

func (c *Checker) cursor(personID string) int {
	if n, ok := c.cursors.Get(personID); ok {
		return n
	}
	return firstCursor
}

// Finish 报告所有计划未执行完的人（按Person ID排序）
func (c *Checker) Finish() []analysis.Anomaly {
	anomalies := make([]analysis.Anomaly, 0)
	for _, id := range c.plans.IDs() {
		plan, _ := c.plans.Get(id)
		if cursor := c.cursor(id); cursor != len(plan) {
			anomalies = append(anomalies, analysis.Anomaly{
				Kind:     analysis.AnomalyIncompletePlan,
				Time:     c.t,
				PersonID: id,
				Message:  fmt.Sprintf("person has only completed %d / %d plan elements", cursor, len(plan)),
			})
		}
	}
	return anomalies
}
