package analysis_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/clock"
	"github.com/unsap/matsim-berlin-homework/event"
)

var errBoom = errors.New("boom")

// countingComponent 记录收到的事件，在failAt个事件时返回错误
type countingComponent struct {
	kinds  []event.Kind
	failAt int
}

func (c *countingComponent) Name() string { return "counting" }

func (c *countingComponent) Handle(e event.Event) error {
	c.kinds = append(c.kinds, e.Kind())
	if c.failAt > 0 && len(c.kinds) == c.failAt {
		return errBoom
	}
	return nil
}

func (c *countingComponent) Finish() []analysis.Anomaly {
	return []analysis.Anomaly{{Kind: analysis.AnomalyIncompletePlan, PersonID: "P1", Message: "finish"}}
}

func TestEngineDispatch(t *testing.T) {
	c1, c2 := &countingComponent{}, &countingComponent{}
	e := analysis.NewEngine(analysis.NewRecorder(nil), c1, c2)
	stream := event.NewSliceStream(
		event.ActivityEnd{T: 0, PersonID: "P1", ActType: "home", LinkID: "L1"},
		event.PersonDeparture{T: 0, PersonID: "P1", LegMode: "car", LinkID: "L1"},
		event.LinkEnter{T: 10, VehicleID: "V1", LinkID: "L2"},
	)
	require.NoError(t, e.Run(context.Background(), stream))
	want := []event.Kind{event.KindActivityEnd, event.KindPersonDeparture, event.KindLinkEnter}
	assert.Equal(t, want, c1.kinds)
	assert.Equal(t, want, c2.kinds)

	r := e.Finish()
	assert.Equal(t, int64(3), r.Events)
	assert.Equal(t, 10.0, r.EndTime)
	assert.Equal(t, 2, r.Count(analysis.AnomalyIncompletePlan))
	assert.Equal(t, r, e.Finish())
}

func TestEngineOutOfOrder(t *testing.T) {
	c := &countingComponent{}
	e := analysis.NewEngine(analysis.NewRecorder(nil), c)
	require.NoError(t, e.Process(event.LinkEnter{T: 100, VehicleID: "V1", LinkID: "L1"}))
	require.NoError(t, e.Process(event.LinkLeave{T: 100, VehicleID: "V1", LinkID: "L1"}))
	err := e.Process(event.LinkEnter{T: 99, VehicleID: "V1", LinkID: "L2"})
	assert.ErrorIs(t, err, clock.ErrOutOfOrder)
	assert.Len(t, c.kinds, 2)
	assert.Equal(t, 100.0, e.Clock().T)

	err = e.Process(event.LinkEnter{T: math.NaN(), VehicleID: "V1", LinkID: "L2"})
	assert.ErrorIs(t, err, clock.ErrInvalidTime)
	assert.ErrorIs(t, e.Process(event.LinkEnter{T: 5, VehicleID: "V1", LinkID: "L2"}), clock.ErrOutOfOrder)
	assert.Len(t, c.kinds, 2)
}

func TestEngineComponentError(t *testing.T) {
	c := &countingComponent{failAt: 2}
	e := analysis.NewEngine(analysis.NewRecorder(nil), c)
	stream := event.NewSliceStream(
		event.LinkEnter{T: 1, VehicleID: "V1", LinkID: "L1"},
		event.LinkLeave{T: 2, VehicleID: "V1", LinkID: "L1"},
		event.LinkEnter{T: 3, VehicleID: "V1", LinkID: "L2"},
	)
	err := e.Run(context.Background(), stream)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, "counting")
	assert.Len(t, c.kinds, 2)
}

func TestEngineCancel(t *testing.T) {
	c := &countingComponent{}
	e := analysis.NewEngine(analysis.NewRecorder(nil), c)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := e.Run(ctx, event.NewSliceStream(event.LinkEnter{T: 1, VehicleID: "V1", LinkID: "L1"}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, c.kinds)
}

func TestRecorderLogs(t *testing.T) {
	logger, hook := test.NewNullLogger()
	r := analysis.NewRecorder(logrus.NewEntry(logger))
	r.Report(analysis.Anomaly{Kind: analysis.AnomalyOccupancy, Time: 5, VehicleID: "V2", Message: "vehicle V2 has occupancy of 2"})

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "vehicle V2 has occupancy of 2", entry.Message)
	assert.Equal(t, "occupancy", entry.Data["kind"])
	assert.Equal(t, "V2", entry.Data["vehicle"])
	assert.NotContains(t, entry.Data, "person")

	got := r.Anomalies()
	require.Len(t, got, 1)
	got[0].Message = "changed"
	assert.Equal(t, "vehicle V2 has occupancy of 2", r.Anomalies()[0].Message)
}

func TestIsStageActivity(t *testing.T) {
	assert.True(t, analysis.IsStageActivity("car interaction", analysis.DefaultStageActivitySuffix))
	assert.True(t, analysis.IsStageActivity("pt interaction", analysis.DefaultStageActivitySuffix))
	assert.False(t, analysis.IsStageActivity("home_86400", analysis.DefaultStageActivitySuffix))
	assert.False(t, analysis.IsStageActivity("interaction", analysis.DefaultStageActivitySuffix))
}

func TestReportCounts(t *testing.T) {
	r := analysis.Report{Anomalies: []analysis.Anomaly{
		{Kind: analysis.AnomalyOccupancy},
		{Kind: analysis.AnomalyOccupancy},
		{Kind: analysis.AnomalyNoPlan},
	}}
	assert.Equal(t, 2, r.Count(analysis.AnomalyOccupancy))
	assert.Equal(t, 1, r.Count(analysis.AnomalyNoPlan))
	assert.Equal(t, 0, r.Count(analysis.AnomalyPlanDivergence))
	assert.Equal(t, "plan_divergence", analysis.AnomalyPlanDivergence.String())
}
