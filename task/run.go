package task

import (
	"context"

	"github.com/unsap/matsim-berlin-homework/analysis"
	linkanalysis "github.com/unsap/matsim-berlin-homework/analysis/link"
	"github.com/unsap/matsim-berlin-homework/output"
	"github.com/unsap/matsim-berlin-homework/utils/config"
	"golang.org/x/sync/errgroup"
)

// Result 一次任务的结果
type Result struct {
	Passes []*Pass  // 基准场景在前
	Files  []string // 写出的结果文件
}

// Report 指定场景的报告，不存在时ok为false
func (r *Result) Report(name string) (analysis.Report, bool) {
	for _, p := range r.Passes {
		if p.Name == name {
			return p.Report, true
		}
	}
	return analysis.Report{}, false
}

// Run 运行
// 功能：回放基准场景（以及配置了的政策场景）并写出结果
// 算法说明：
// 1. 为每个场景创建独立的引擎，并行回放
// 2. 任一场景出错时取消其他场景并返回第一个错误
// 3. 按场景输出结果表，两个场景都有路段统计时输出差值表
// 说明：只有基准场景显示进度条，避免并行的进度条互相覆盖
func (ctx *Context) Run(runCtx context.Context) (*Result, error) {
	in := ctx.runtimeConfig.All.Input
	passes := []*Pass{newPass(ctx, ctx.runtimeConfig, PassBase, in.Events)}
	if in.PolicyEvents != nil {
		passes = append(passes, newPass(ctx, ctx.runtimeConfig, PassPolicy, *in.PolicyEvents))
	}

	g, gctx := errgroup.WithContext(runCtx)
	for i, p := range passes {
		p := p
		progress := ctx.opts.Progress && i == 0
		g.Go(func() error {
			return ctx.run(gctx, p, progress)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.Infof("engine complete")

	res := &Result{Passes: passes}
	o := ctx.runtimeConfig.All.Output
	w := output.Writer{Dir: o.Dir, Prefix: o.Prefix, Format: o.Format}
	files, err := w.Write(ctx.tables(passes)...)
	res.Files = files
	if err != nil {
		return res, err
	}
	return res, nil
}

// tables 所有场景的结果表
// 说明：只有一个场景时表名不带场景前缀
func (ctx *Context) tables(passes []*Pass) []output.Table {
	rc := ctx.runtimeConfig
	tables := make([]output.Table, 0)
	for _, p := range passes {
		name := func(table string) string {
			if len(passes) == 1 {
				return table
			}
			return p.Name + "_" + table
		}
		if p.Trips != nil {
			trips := p.Trips.Trips()
			if rc.Has(config.AnalysisTrips) {
				tables = append(tables, output.Trips(name("trips"), trips))
			}
			if rc.Has(config.AnalysisTripsAdditional) {
				tables = append(tables, output.TripsAdditional(name("trips_additional"), trips))
			}
			if rc.Has(config.AnalysisTripsAreas) {
				tables = append(tables, output.TripsAreas(name("trips_areas"), trips))
			}
		}
		if p.Links != nil {
			tables = append(tables, output.Links(name("links"), p.Links.Results()))
		}
		if p.Affected != nil {
			tables = append(tables, output.Affected(name("affected"), p.Affected.Persons()))
		}
		tables = append(tables, output.Anomalies(name("anomalies"), p.Report.Anomalies))
	}
	if len(passes) == 2 && passes[0].Links != nil {
		tables = append(tables, output.Links("links_difference",
			linkanalysis.DifferenceAll(passes[0].Links.Results(), passes[1].Links.Results())))
	}
	return tables
}
