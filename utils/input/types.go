package input

import (
	"fmt"

	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/entity/plan"
	"github.com/unsap/matsim-berlin-homework/entity/vehicle"
)

// LinkDoc 路段文档（文件中的一项或MongoDB中的一个文档）
// 说明：road_kind为空时根据OSM道路类型type推断
type LinkDoc struct {
	ID       string  `yaml:"id" bson:"id"`
	AreaKind string  `yaml:"area_kind" bson:"area_kind"`
	RoadKind string  `yaml:"road_kind,omitempty" bson:"road_kind,omitempty"`
	Type     string  `yaml:"type,omitempty" bson:"type,omitempty"`
	Modified bool    `yaml:"modified,omitempty" bson:"modified,omitempty"`
	Length   float64 `yaml:"length" bson:"length"`
}

func (d LinkDoc) ToLink() (entity.Link, error) {
	area, err := entity.ParseAreaKind(d.AreaKind)
	if err != nil {
		return entity.Link{}, fmt.Errorf("link %s: %w", d.ID, err)
	}
	road := entity.RoadKindFromType(d.Type)
	if d.RoadKind != "" {
		if road, err = entity.ParseRoadKind(d.RoadKind); err != nil {
			return entity.Link{}, fmt.Errorf("link %s: %w", d.ID, err)
		}
	}
	return entity.Link{
		ID:       d.ID,
		AreaKind: area,
		RoadKind: road,
		Modified: d.Modified,
		Length:   d.Length,
	}, nil
}

// VehicleDoc 车辆文档
type VehicleDoc struct {
	ID   string `yaml:"id" bson:"id"`
	Type string `yaml:"type" bson:"type"`
}

func (d VehicleDoc) ToVehicle() vehicle.Vehicle {
	return vehicle.Vehicle{ID: d.ID, TypeID: d.Type}
}

type ActivityDoc struct {
	Type string `yaml:"type" bson:"type"`
	Link string `yaml:"link" bson:"link"`
}

type LegDoc struct {
	Mode      string `yaml:"mode" bson:"mode"`
	StartLink string `yaml:"start_link" bson:"start_link"`
}

// PlanElementDoc 计划元素，activity与leg二选一
type PlanElementDoc struct {
	Activity *ActivityDoc `yaml:"activity,omitempty" bson:"activity,omitempty"`
	Leg      *LegDoc      `yaml:"leg,omitempty" bson:"leg,omitempty"`
}

// PersonDoc 人员文档，只包含被选中的计划
type PersonDoc struct {
	ID   string           `yaml:"id" bson:"id"`
	Plan []PlanElementDoc `yaml:"plan" bson:"plan"`
}

func (d PersonDoc) ToPerson() (plan.Person, error) {
	p := plan.Person{ID: d.ID, Plan: make([]entity.PlanElement, 0, len(d.Plan))}
	for i, e := range d.Plan {
		switch {
		case e.Activity != nil && e.Leg == nil:
			p.Plan = append(p.Plan, entity.Activity(e.Activity.Type, e.Activity.Link))
		case e.Leg != nil && e.Activity == nil:
			p.Plan = append(p.Plan, entity.Leg(e.Leg.Mode, e.Leg.StartLink))
		default:
			return p, fmt.Errorf("person %s: plan element %d must be exactly one of activity or leg", d.ID, i)
		}
	}
	return p, nil
}

// 文件的根结构
type (
	networkFile struct {
		Links []LinkDoc `yaml:"links"`
	}
	vehiclesFile struct {
		Vehicles []VehicleDoc `yaml:"vehicles"`
	}
	plansFile struct {
		Persons []PersonDoc `yaml:"persons"`
	}
)
