package output_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/analysis/affected"
	linkanalysis "github.com/unsap/matsim-berlin-homework/analysis/link"
	"github.com/unsap/matsim-berlin-homework/analysis/trip"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/output"
	"github.com/xuri/excelize/v2"
)

func sampleTrips() []trip.Trip {
	completed := trip.Trip{
		PersonID:         "p1",
		Number:           1,
		Modes:            []string{"walk", "pt"},
		StartLinkID:      "l1",
		StartArea:        entity.AreaBerlinUmweltzone,
		LastLinkID:       "l3",
		LastArea:         entity.AreaBrandenburg,
		EndLinkID:        "l3",
		EndArea:          entity.AreaBrandenburg,
		VisitedAreas:     []entity.AreaKind{entity.AreaBerlinUmweltzone, entity.AreaBrandenburg},
		AnyLinkInBerlin:  true,
		Completed:        true,
		VisitedLinkCount: 2,
	}
	completed.Distances[trip.PtBerlinA] = 1234.56
	completed.Distances[trip.PtBrandenburg] = 100
	incomplete := trip.Trip{
		PersonID:     "p2",
		Number:       1,
		Modes:        []string{"car"},
		StartLinkID:  "l2",
		StartArea:    entity.AreaBrandenburg,
		LastLinkID:   "l4",
		LastArea:     entity.AreaBerlinOutsideUmweltzone,
		VisitedAreas: []entity.AreaKind{entity.AreaBrandenburg, entity.AreaBerlinOutsideUmweltzone},
	}
	return []trip.Trip{completed, incomplete}
}

func csv(t *testing.T, table output.Table) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, output.WriteCSV(&buf, table))
	return buf.String()
}

func TestTrips(t *testing.T) {
	assert.Equal(t,
		"person;trip_number;trip_id;modes;start_link;end_link;traffic_kind\n"+
			"p1;1;p1_1;walk-pt;l1;l3;berlin_origin\n"+
			"p2;1;p2_1;car;l2;l4;unknown\n",
		csv(t, output.Trips("trips", sampleTrips())))
}

func TestTripsAdditional(t *testing.T) {
	table := output.TripsAdditional("trips_additional", sampleTrips())
	require.Len(t, table.Header, 18)
	assert.Equal(t, "car_berlin_a_main_street", table.Header[8])
	assert.Equal(t, "pt_brandenburg", table.Header[17])
	assert.Equal(t, []string{
		"p1", "1", "p1_1", "walk-pt", "l3", "brandenburg", "true", "2",
		"0.0", "0.0", "0.0", "0.0", "0.0", "0.0", "0.0", "1234.6", "0.0", "100.0",
	}, table.Rows[0])
	assert.Equal(t, []string{"p2", "1", "p2_1", "car", "l4", "berlin_outside_umweltzone", "false", "0"}, table.Rows[1][:8])
}

func TestTripsAreas(t *testing.T) {
	assert.Equal(t,
		"person;trip_number;trip_id;modes;start_link;end_link;start_area;visited_areas;end_area;completed\n"+
			"p1;1;p1_1;walk-pt;l1;l3;berlin_umweltzone;berlin_umweltzone-brandenburg;brandenburg;true\n"+
			"p2;1;p2_1;car;l2;l4;brandenburg;brandenburg-berlin_outside_umweltzone;unknown;false\n",
		csv(t, output.TripsAreas("trips_areas", sampleTrips())))
}

func TestLinks(t *testing.T) {
	aggregates := []linkanalysis.Aggregate{
		{LinkID: "l1", VehicleCount: 3, PeakHourVehicleCount: 2, AverageTravelTime: lo.ToPtr(100.0 / 3), MaxTravelTime: lo.ToPtr(60.5)},
		{LinkID: "l2", VehicleCount: 1, PeakHourVehicleCount: 1, AverageTravelTime: lo.ToPtr(0.0)},
		{LinkID: "l3"},
		{LinkID: "l4", VehicleCount: -2, PeakHourVehicleCount: -1, AverageTravelTime: lo.ToPtr(-1.5)},
	}
	assert.Equal(t,
		"linkId;vehicleCount;peakHourVehicleCount;averageTravelTime;maxTravelTime\n"+
			"l1;3;2;33.333333333333336;60.5\n"+
			"l2;1;1;0;\n"+
			"l3;0;0;;\n"+
			"l4;-2;-1;-1.5;\n",
		csv(t, output.Links("links", aggregates)))
}

func TestAffectedAndAnomalies(t *testing.T) {
	assert.Equal(t,
		"person_id;has_used_modified_link\np1;1\np2;0\n",
		csv(t, output.Affected("affected", []affected.Person{{ID: "p1", HasUsedModifiedLink: true}, {ID: "p2"}})))
	assert.Equal(t,
		"kind;time;person;vehicle;link;message\nno_plan;12.5;p1;;;person has no plan\n",
		csv(t, output.Anomalies("anomalies", []analysis.Anomaly{
			{Kind: analysis.AnomalyNoPlan, Time: 12.5, PersonID: "p1", Message: "person has no plan"},
		})))
}

func TestWriterCSV(t *testing.T) {
	dir := t.TempDir()
	w := output.Writer{Dir: filepath.Join(dir, "out"), Prefix: "base", Format: output.FormatCSV}
	paths, err := w.Write(output.Affected("affected", []affected.Person{{ID: "p1"}}))
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "out", "base.affected.csv")}, paths)
	content, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "person_id;has_used_modified_link\np1;0\n", string(content))
}

func TestWriterXLSX(t *testing.T) {
	dir := t.TempDir()
	w := output.Writer{Dir: dir, Prefix: "berlin", Format: output.FormatXLSX}
	paths, err := w.Write(
		output.Trips("trips", sampleTrips()),
		output.Links("links", []linkanalysis.Aggregate{{LinkID: "l1", VehicleCount: 1}}),
	)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	f, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"trips", "links"}, f.GetSheetList())
	rows, err := f.GetRows("links")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"linkId", "vehicleCount", "peakHourVehicleCount", "averageTravelTime", "maxTravelTime"},
		{"l1", "1", "0"},
	}, rows)
}

func TestWriterUnknownFormat(t *testing.T) {
	_, err := output.Writer{Dir: t.TempDir(), Format: "parquet"}.Write()
	assert.Error(t, err)
}
