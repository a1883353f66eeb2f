package analysis

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// AnomalyKind 可恢复异常的类型
type AnomalyKind int32

const (
	AnomalyMissingCorrelation AnomalyKind = iota // 离开/下车事件找不到对应的进入/上车记录
	AnomalyOccupancy                             // 单人车辆同时有多名乘员
	AnomalyPlanDivergence                        // 事件与计划不一致
	AnomalyNoPlan                                // 事件中出现的人没有计划
	AnomalyIncompletePlan                        // 回放结束时计划未执行完
)

var anomalyKindNames = []string{
	"missing_correlation",
	"occupancy",
	"plan_divergence",
	"no_plan",
	"incomplete_plan",
}

// AnomalyKinds 所有异常类型（按定义顺序）
var AnomalyKinds = []AnomalyKind{
	AnomalyMissingCorrelation,
	AnomalyOccupancy,
	AnomalyPlanDivergence,
	AnomalyNoPlan,
	AnomalyIncompletePlan,
}

func (k AnomalyKind) String() string {
	if int(k) >= 0 && int(k) < len(anomalyKindNames) {
		return anomalyKindNames[k]
	}
	return fmt.Sprintf("AnomalyKind(%d)", int32(k))
}

// Anomaly 一条可恢复的异常记录
// 说明：只用于日志和统计，不写入结果表
type Anomaly struct {
	Kind      AnomalyKind
	Time      float64
	PersonID  string
	VehicleID string
	LinkID    string
	Message   string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%v at %v: person=%q vehicle=%q link=%q: %s", a.Kind, a.Time, a.PersonID, a.VehicleID, a.LinkID, a.Message)
}

func (a Anomaly) fields() logrus.Fields {
	f := logrus.Fields{"kind": a.Kind.String(), "time": a.Time}
	if a.PersonID != "" {
		f["person"] = a.PersonID
	}
	if a.VehicleID != "" {
		f["vehicle"] = a.VehicleID
	}
	if a.LinkID != "" {
		f["link"] = a.LinkID
	}
	return f
}

// Recorder 异常记录器
// 功能：收集回放过程中的异常，并通过注入的logger输出警告
// 说明：每个引擎实例持有一个Recorder，不在引擎之间共享
type Recorder struct {
	log       *logrus.Entry
	anomalies []Anomaly
}

// NewRecorder 创建异常记录器
// 参数：logger-日志输出，为nil时使用analysis包的logger
func NewRecorder(logger *logrus.Entry) *Recorder {
	if logger == nil {
		logger = log
	}
	return &Recorder{log: logger, anomalies: make([]Anomaly, 0)}
}

// Report 记录一条异常
func (r *Recorder) Report(a Anomaly) {
	r.anomalies = append(r.anomalies, a)
	r.log.WithFields(a.fields()).Warn(a.Message)
}

// Anomalies 已记录的异常（副本）
func (r *Recorder) Anomalies() []Anomaly {
	return append([]Anomaly(nil), r.anomalies...)
}

// Report 引擎的最终报告
type Report struct {
	Events    int64     // 回放的事件数
	EndTime   float64   // 最后一个事件的时间
	Anomalies []Anomaly // 回放中记录的异常，之后是回放结束时发现的异常
}

// Count 指定类型的异常数量
func (r Report) Count(kind AnomalyKind) int {
	n := 0
	for _, a := range r.Anomalies {
		if a.Kind == kind {
			n++
		}
	}
	return n
}
