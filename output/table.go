package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/analysis/affected"
	linkanalysis "github.com/unsap/matsim-berlin-homework/analysis/link"
	"github.com/unsap/matsim-berlin-homework/analysis/trip"
	"github.com/unsap/matsim-berlin-homework/entity"
)

// Table 一张结果表
// 说明：所有单元格都已格式化为字符串，缺失值为空字符串
type Table struct {
	Name   string // 表名，用作文件名后缀或工作表名
	Header []string
	Rows   [][]string
}

// formatFloat 最短的可还原十进制表示，nil为空
func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func tripKey(t trip.Trip) []string {
	return []string{t.PersonID, strconv.Itoa(t.Number), t.ID(), strings.Join(t.Modes, "-")}
}

// endLink 终点路段，未结束的trip为最后经过的路段
func endLink(t trip.Trip) string {
	if t.Completed {
		return t.EndLinkID
	}
	return t.LastLinkID
}

// Trips trip表
func Trips(name string, trips []trip.Trip) Table {
	return Table{
		Name:   name,
		Header: []string{"person", "trip_number", "trip_id", "modes", "start_link", "end_link", "traffic_kind"},
		Rows: lo.Map(trips, func(t trip.Trip, _ int) []string {
			return append(tripKey(t), t.StartLinkID, endLink(t), t.TrafficKind().String())
		}),
	}
}

// TripsAdditional trip附加信息表：经过的路段数与各类别行驶距离
func TripsAdditional(name string, trips []trip.Trip) Table {
	header := []string{"person", "trip_number", "trip_id", "modes", "last_link", "last_area", "completed", "visited_link_count"}
	header = append(header, lo.Map(trip.DistanceCategories(), func(c trip.DistanceCategory, _ int) string { return c.String() })...)
	return Table{
		Name:   name,
		Header: header,
		Rows: lo.Map(trips, func(t trip.Trip, _ int) []string {
			row := append(tripKey(t), t.LastLinkID, t.LastArea.String(), formatBool(t.Completed), strconv.Itoa(t.VisitedLinkCount))
			for _, d := range t.Distances {
				row = append(row, fmt.Sprintf("%.1f", d))
			}
			return row
		}),
	}
}

// TripsAreas trip经过的区域表
func TripsAreas(name string, trips []trip.Trip) Table {
	return Table{
		Name:   name,
		Header: []string{"person", "trip_number", "trip_id", "modes", "start_link", "end_link", "start_area", "visited_areas", "end_area", "completed"},
		Rows: lo.Map(trips, func(t trip.Trip, _ int) []string {
			areas := lo.Map(t.VisitedAreas, func(a entity.AreaKind, _ int) string { return a.String() })
			return append(tripKey(t), t.StartLinkID, endLink(t), t.StartArea.String(), strings.Join(areas, "-"), t.EndArea.String(), formatBool(t.Completed))
		}),
	}
}

// Links 路段统计表，基准、政策和差值使用相同的格式
func Links(name string, aggregates []linkanalysis.Aggregate) Table {
	return Table{
		Name:   name,
		Header: []string{"linkId", "vehicleCount", "peakHourVehicleCount", "averageTravelTime", "maxTravelTime"},
		Rows: lo.Map(aggregates, func(a linkanalysis.Aggregate, _ int) []string {
			return []string{
				a.LinkID,
				strconv.Itoa(a.VehicleCount),
				strconv.Itoa(a.PeakHourVehicleCount),
				formatFloat(a.AverageTravelTime),
				formatFloat(a.MaxTravelTime),
			}
		}),
	}
}

// Affected 受影响的人表，1表示使用过被修改的路段
func Affected(name string, persons []affected.Person) Table {
	return Table{
		Name:   name,
		Header: []string{"person_id", "has_used_modified_link"},
		Rows: lo.Map(persons, func(p affected.Person, _ int) []string {
			return []string{p.ID, lo.Ternary(p.HasUsedModifiedLink, "1", "0")}
		}),
	}
}

// Anomalies 异常表
func Anomalies(name string, anomalies []analysis.Anomaly) Table {
	return Table{
		Name:   name,
		Header: []string{"kind", "time", "person", "vehicle", "link", "message"},
		Rows: lo.Map(anomalies, func(a analysis.Anomaly, _ int) []string {
			return []string{a.Kind.String(), formatFloat(&a.Time), a.PersonID, a.VehicleID, a.LinkID, a.Message}
		}),
	}
}
