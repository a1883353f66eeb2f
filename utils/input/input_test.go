package input_test

import (
	"compress/gzip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/config"
	"github.com/unsap/matsim-berlin-homework/utils/input"
)

const network = `
links:
  - {id: l1, area_kind: berlin_umweltzone, type: primary, length: 100}
  - {id: l2, area_kind: brandenburg, road_kind: side_street, length: 250.5, modified: true}
`

// JSON也是合法的输入格式
const vehicles = `{"vehicles": [{"id": "v1", "type": "car"}, {"id": "fr1", "type": "freight"}]}`

const plans = `
persons:
  - id: p1
    plan:
      - activity: {type: home, link: l1}
      - leg: {mode: car, start_link: l1}
      - activity: {type: work, link: l2}
  - id: p2
    plan:
      - activity: {type: home, link: l9}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestInitFromFiles(t *testing.T) {
	dir := t.TempDir()
	c := config.Config{Input: config.Input{
		Network:  config.InputPath{File: writeFile(t, dir, "network.yaml", network)},
		Vehicles: &config.InputPath{File: writeFile(t, dir, "vehicles.json", vehicles)},
		Plans:    &config.InputPath{File: writeFile(t, dir, "plans.yaml", plans)},
	}}
	in, err := input.Init(context.Background(), c, nil)
	require.NoError(t, err)

	require.Len(t, in.Links, 2)
	assert.Equal(t, entity.Link{ID: "l1", AreaKind: entity.AreaBerlinUmweltzone, RoadKind: entity.RoadMainStreet, Length: 100}, in.Links[0])
	assert.Equal(t, entity.RoadSideStreet, in.Links[1].RoadKind)
	assert.True(t, in.Links[1].Modified)

	require.Len(t, in.Vehicles, 2)
	assert.Equal(t, "freight", in.Vehicles[1].TypeID)

	// p2引用了不存在的路段l9，被忽略
	require.Len(t, in.Persons, 1)
	assert.Equal(t, "p1", in.Persons[0].ID)
	assert.Equal(t, []entity.PlanElement{
		entity.Activity("home", "l1"),
		entity.Leg("car", "l1"),
		entity.Activity("work", "l2"),
	}, in.Persons[0].Plan)
}

func TestInitWithoutOptionalInputs(t *testing.T) {
	dir := t.TempDir()
	c := config.Config{Input: config.Input{
		Network: config.InputPath{File: writeFile(t, dir, "network.yaml", network)},
	}}
	in, err := input.Init(context.Background(), c, nil)
	require.NoError(t, err)
	assert.Len(t, in.Links, 2)
	assert.Empty(t, in.Vehicles)
	assert.Empty(t, in.Persons)
}

func TestInitErrors(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]config.Input{
		"missing file": {Network: config.InputPath{File: filepath.Join(dir, "none.yaml")}},
		"bad area": {Network: config.InputPath{File: writeFile(t, dir, "bad.yaml",
			"links:\n  - {id: x, area_kind: mars, length: 1}\n")}},
		"bad plan element": {
			Network: config.InputPath{File: writeFile(t, dir, "n.yaml", network)},
			Plans: &config.InputPath{File: writeFile(t, dir, "p.yaml",
				"persons:\n  - id: p\n    plan:\n      - {}\n")},
		},
		"mongo without client": {Network: config.InputPath{DB: "berlin", Col: "network"}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := input.Init(context.Background(), config.Config{Input: in}, nil)
			assert.Error(t, err)
		})
	}
}

const events = `{"time": 0, "type": "actend", "person": "p1", "link": "l1", "actType": "home"}
{"time": 0, "type": "departure", "person": "p1", "link": "l1", "legMode": "car"}
{"time": 1, "type": "travelled", "person": "p1"}
{"time": 5, "type": "entered link", "vehicle": "v1", "link": "l2"}
`

func TestOpenGzipEvents(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "events.jsonl.gz")
	f, err := os.Create(p)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(events))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	var wrappedSize int64
	src, err := input.OpenEvents(context.Background(), nil, config.InputPath{File: p}, func(r io.Reader, size int64) io.Reader {
		wrappedSize = size
		return r
	})
	require.NoError(t, err)
	defer src.Close()
	assert.Greater(t, wrappedSize, int64(0))

	got := make([]event.Event, 0)
	for {
		ev, err := src.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, ev)
	}
	require.Len(t, got, 3)
	assert.Equal(t, event.LinkEnter{T: 5, VehicleID: "v1", LinkID: "l2"}, got[2])
	assert.Equal(t, 1, src.Skipped())
}

func TestOpenMongoEvents(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	client, err := input.Connect(ctx, uri)
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	coll := client.Database("matsim_test").Collection("events")
	require.NoError(t, coll.Drop(ctx))
	_, err = coll.InsertMany(ctx, []any{
		event.Record{Time: 5, Type: "left link", Vehicle: "v1", Link: "l1"},
		event.Record{Time: 1, Type: "entered link", Vehicle: "v1", Link: "l1"},
		event.Record{Time: 3, Type: "stuckAndAbort", Person: "p1"},
	})
	require.NoError(t, err)

	src, err := input.OpenEvents(ctx, client, config.InputPath{DB: "matsim_test", Col: "events"}, nil)
	require.NoError(t, err)
	defer src.Close()
	first, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 1.0, first.Time())
	second, err := src.Next()
	require.NoError(t, err)
	assert.Equal(t, 5.0, second.Time())
	_, err = src.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, 1, src.Skipped())
}
