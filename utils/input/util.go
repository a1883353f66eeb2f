package input

import (
	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/entity/plan"
	"github.com/unsap/matsim-berlin-homework/utils"
)

// filterPersons 检查计划中的路段是否都在路网中
// 功能：忽略引用了不存在路段的人，并记录日志
// 说明：路网与计划不匹配时，被忽略的人在计划检查中会被报告为没有计划
func filterPersons(links []entity.Link, persons []plan.Person) []plan.Person {
	linkMap := lo.SliceToMap(links, func(l entity.Link) (string, entity.Link) { return l.ID, l })
	return lo.Filter(persons, func(p plan.Person, _ int) bool {
		if _, failed := utils.Find(linkMap, entity.PlanLinkIDs(p.Plan)); len(failed) > 0 {
			log.Errorf("ignore person %v due to bad links %v", p.ID, failed)
			return false
		}
		return true
	})
}
