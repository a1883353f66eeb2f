package plancheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/analysis/plancheck"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/entity/plan"
	"github.com/unsap/matsim-berlin-homework/event"
)

func setup(t *testing.T) (*plancheck.Checker, *analysis.Engine) {
	plans := plan.NewManager()
	require.NoError(t, plans.Init([]plan.Person{
		{ID: "P1", Plan: []entity.PlanElement{
			entity.Activity("home", "L1"),
			entity.Leg("car", "L1"),
			entity.Activity("work", "L2"),
			entity.Leg("car", "L2"),
			entity.Activity("home", "L1"),
		}},
		{ID: "P2", Plan: []entity.PlanElement{
			entity.Activity("home", "L3"),
			entity.Leg("walk", "L3"),
			entity.Activity("shop", "L4"),
		}},
		{ID: "P3", Plan: []entity.PlanElement{
			entity.Activity("home", "L5"),
		}},
	}))
	rec := analysis.NewRecorder(nil)
	c := plancheck.New(plans, rec)
	return c, analysis.NewEngine(rec, c)
}

func process(t *testing.T, e *analysis.Engine, events ...event.Event) analysis.Report {
	for _, ev := range events {
		require.NoError(t, e.Process(ev))
	}
	return e.Finish()
}

func TestPlanFollowed(t *testing.T) {
	c, e := setup(t)
	r := process(t, e,
		event.ActivityEnd{T: 0, PersonID: "P1", ActType: "home", LinkID: "L1"},
		event.PersonDeparture{T: 0, PersonID: "P1", LegMode: "car", LinkID: "L1"},
		event.ActivityStart{T: 100, PersonID: "P1", ActType: "work", LinkID: "L2"},
		event.PersonDeparture{T: 200, PersonID: "P1", LegMode: "car", LinkID: "L2"},
		event.ActivityStart{T: 300, PersonID: "P1", ActType: "home", LinkID: "L1"},
		event.PersonDeparture{T: 300, PersonID: "P2", LegMode: "walk", LinkID: "L3"},
		event.ActivityStart{T: 400, PersonID: "P2", ActType: "shop", LinkID: "L4"},
	)
	assert.Empty(t, r.Anomalies)
	assert.Equal(t, 5, c.Progress("P1"))
}

func TestDivergenceAdvancesCursor(t *testing.T) {
	c, e := setup(t)
	r := process(t, e,
		event.PersonDeparture{T: 0, PersonID: "P1", LegMode: "pt", LinkID: "L1"},
		event.ActivityStart{T: 100, PersonID: "P1", ActType: "work", LinkID: "L2"},
		event.ActivityStart{T: 150, PersonID: "P1", ActType: "work", LinkID: "L2"},
		event.ActivityStart{T: 300, PersonID: "P1", ActType: "home", LinkID: "L1"},
		event.ActivityStart{T: 310, PersonID: "P1", ActType: "home", LinkID: "L1"},
		event.PersonDeparture{T: 320, PersonID: "P2", LegMode: "walk", LinkID: "L3"},
		event.ActivityStart{T: 400, PersonID: "P2", ActType: "shop", LinkID: "L4"},
	)
	require.Equal(t, 3, r.Count(analysis.AnomalyPlanDivergence))
	assert.Equal(t, 1, r.Count(analysis.AnomalyIncompletePlan))
	assert.Equal(t, 6, c.Progress("P1"))

	div := r.Anomalies[0]
	assert.Equal(t, "P1", div.PersonID)
	assert.Contains(t, div.Message, "leg does not match")
	assert.Contains(t, r.Anomalies[1].Message, "expected Leg{Mode=car, StartLink=L2}")
	assert.Contains(t, r.Anomalies[2].Message, "no planned element left")
}

func TestIncompletePlans(t *testing.T) {
	_, e := setup(t)
	r := process(t, e,
		event.ActivityEnd{T: 0, PersonID: "P1", ActType: "home", LinkID: "L1"},
		event.PersonDeparture{T: 0, PersonID: "P1", LegMode: "car", LinkID: "L1"},
		event.ActivityStart{T: 100, PersonID: "P1", ActType: "work", LinkID: "L2"},
	)
	assert.Equal(t, 0, r.Count(analysis.AnomalyPlanDivergence))
	require.Equal(t, 2, r.Count(analysis.AnomalyIncompletePlan))
	assert.Equal(t, "P1", r.Anomalies[0].PersonID)
	assert.Equal(t, "person has only completed 3 / 5 plan elements", r.Anomalies[0].Message)
	assert.Equal(t, 100.0, r.Anomalies[0].Time)
	assert.Equal(t, "P2", r.Anomalies[1].PersonID)
	assert.Equal(t, r, e.Finish())
}

func TestPersonWithoutPlan(t *testing.T) {
	_, e := setup(t)
	r := process(t, e,
		event.PersonDeparture{T: 0, PersonID: "pt_driver", LegMode: "car", LinkID: "L1"},
		event.ActivityStart{T: 10, PersonID: "pt_driver", ActType: "work", LinkID: "L2"},
		event.PersonDeparture{T: 20, PersonID: "P2", LegMode: "walk", LinkID: "L3"},
		event.ActivityStart{T: 30, PersonID: "P2", ActType: "shop", LinkID: "L4"},
	)
	assert.Equal(t, 1, r.Count(analysis.AnomalyNoPlan))
	assert.Equal(t, 1, r.Count(analysis.AnomalyIncompletePlan))
}
