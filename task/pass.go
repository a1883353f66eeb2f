package task

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/unsap/matsim-berlin-homework/analysis"
	"github.com/unsap/matsim-berlin-homework/analysis/affected"
	linkanalysis "github.com/unsap/matsim-berlin-homework/analysis/link"
	"github.com/unsap/matsim-berlin-homework/analysis/occupancy"
	"github.com/unsap/matsim-berlin-homework/analysis/plancheck"
	"github.com/unsap/matsim-berlin-homework/analysis/trip"
	"github.com/unsap/matsim-berlin-homework/clock"
	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/event"
	"github.com/unsap/matsim-berlin-homework/utils/config"
	"github.com/unsap/matsim-berlin-homework/utils/input"
)

var _ entity.IDirectory = (*Context)(nil)

const (
	PassBase   = "base"
	PassPolicy = "policy"
)

// Pass 一个场景事件流的一次回放
// 功能：持有一个引擎及其全部分析组件，回放结束后保存报告
// 说明：每个Pass的状态互相独立，可以并行回放
type Pass struct {
	Name   string
	Events config.InputPath

	engine *analysis.Engine

	Trips     *trip.Analysis         // 未启用时为nil
	Links     *linkanalysis.Analysis // 未启用时为nil
	Occupancy *occupancy.Checker     // 未启用时为nil
	PlanCheck *plancheck.Checker     // 未启用时为nil
	Affected  *affected.Analysis     // 未启用时为nil

	Report  analysis.Report
	Skipped int // 跳过的其他类型事件数
}

// newPass 根据运行时配置创建回放
// 参数：dir-只读实体目录，多个回放共享
// 算法说明：
// 1. 所有组件共用一个异常记录器，日志带有pass字段
// 2. 三种trip表共用一个trip组件
func newPass(dir entity.IDirectory, rc *config.RuntimeConfig, name string, events config.InputPath) *Pass {
	recorder := analysis.NewRecorder(log.WithField("pass", name))
	p := &Pass{Name: name, Events: events}
	components := make([]analysis.Component, 0)
	if rc.Has(config.AnalysisTrips) || rc.Has(config.AnalysisTripsAdditional) || rc.Has(config.AnalysisTripsAreas) {
		suffix := rc.C.StageActivitySuffix
		if suffix == "" {
			suffix = analysis.DefaultStageActivitySuffix
		}
		p.Trips = trip.New(dir.LinkManager(), recorder, suffix)
		components = append(components, p.Trips)
	}
	if rc.Has(config.AnalysisLinks) {
		p.Links = linkanalysis.New(dir.LinkManager(), recorder, rc.C.PeakWindow)
		components = append(components, p.Links)
	}
	if rc.Has(config.AnalysisOccupancy) {
		p.Occupancy = occupancy.New(dir.VehicleManager(), recorder, rc.C.CheckedVehicleType)
		components = append(components, p.Occupancy)
	}
	if rc.Has(config.AnalysisPlanCheck) {
		p.PlanCheck = plancheck.New(dir.PlanManager(), recorder)
		components = append(components, p.PlanCheck)
	}
	if rc.Has(config.AnalysisAffected) {
		p.Affected = affected.New(dir.LinkManager(), dir.PlanManager(), recorder)
		components = append(components, p.Affected)
	}
	p.engine = analysis.NewEngine(recorder, components...)
	return p
}

// run 打开事件流并回放到结束
func (ctx *Context) run(runCtx context.Context, p *Pass, progress bool) error {
	var wrap input.ReaderWrapper
	if progress {
		wrap = func(r io.Reader, size int64) io.Reader {
			bar := progressbar.DefaultBytes(size, fmt.Sprintf("replaying %s", p.Name))
			return io.TeeReader(r, bar)
		}
	}
	src, err := input.OpenEvents(runCtx, ctx.client, p.Events, wrap)
	if err != nil {
		return err
	}
	defer src.Close()

	var stream event.Stream = src
	if ctx.opts.HeartbeatInterval > 0 {
		stream = &heartbeatStream{
			Stream:   src,
			log:      log.WithField("pass", p.Name),
			interval: ctx.opts.HeartbeatInterval,
		}
	}
	if err := p.engine.Run(runCtx, stream); err != nil {
		return fmt.Errorf("%s pass: %w", p.Name, err)
	}
	p.Report = p.engine.Finish()
	p.Skipped = src.Skipped()
	log.Infof("%s pass complete: %d events until %v, %d skipped, %d anomalies",
		p.Name, p.Report.Events, p.engine.Clock(), p.Skipped, len(p.Report.Anomalies))
	return nil
}

// heartbeatStream 每隔固定事件数输出一条心跳日志
type heartbeatStream struct {
	event.Stream
	log      *logrus.Entry
	interval int64
	clock    clock.Clock
}

func (s *heartbeatStream) Next() (event.Event, error) {
	ev, err := s.Stream.Next()
	if err != nil {
		return ev, err
	}
	s.clock.T = ev.Time()
	s.clock.Steps++
	if s.clock.Steps%s.interval == 0 {
		hour, minute, second := s.clock.GetHourMinuteSecond()
		s.log.Infof("EVENT: %d(%d:%d:%.2f)", s.clock.Steps, hour, minute, second)
	}
	return ev, nil
}
