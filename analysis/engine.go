package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/unsap/matsim-berlin-homework/clock"
	"github.com/unsap/matsim-berlin-homework/event"
)

// Component 分析组件
// 功能：维护自己的按实体划分的状态，通过type switch处理关心的事件
type Component interface {
	// 组件名称，用于错误信息
	Name() string
	// 处理一个事件，返回的错误都是致命错误（例如实体目录查找失败）
	Handle(e event.Event) error
	// 回放结束时发现的异常（例如未执行完的计划），只读，可以重复调用
	Finish() []Anomaly
}

// Engine 事件回放引擎
// 功能：按时间顺序把事件分发给所有组件
// 说明：单线程同步执行，不能被多个事件流并发驱动；不同的Engine实例互相独立，可以并行
type Engine struct {
	clock      *clock.Clock
	recorder   *Recorder
	components []Component
}

// NewEngine 创建引擎
// 参数：recorder-组件共用的异常记录器，components-按顺序接收事件的组件
func NewEngine(recorder *Recorder, components ...Component) *Engine {
	return &Engine{
		clock:      clock.New(),
		recorder:   recorder,
		components: components,
	}
}

// Clock 当前回放时间
func (e *Engine) Clock() *clock.Clock {
	return e.clock
}

// Process 处理一个事件
// 返回：时间倒退（clock.ErrOutOfOrder）、时间为NaN（clock.ErrInvalidTime）或组件返回的致命错误
func (e *Engine) Process(ev event.Event) error {
	if err := e.clock.Advance(ev.Time()); err != nil {
		return fmt.Errorf("%v event: %w", ev.Kind(), err)
	}
	for _, c := range e.components {
		if err := c.Handle(ev); err != nil {
			return fmt.Errorf("%s: %v event at %v: %w", c.Name(), ev.Kind(), ev.Time(), err)
		}
	}
	return nil
}

// Run 回放整个事件流直到io.EOF
// 功能：每个事件之间检查ctx，ctx取消时返回ctx.Err()
func (e *Engine) Run(ctx context.Context, stream event.Stream) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := stream.Next()
		if errors.Is(err, io.EOF) {
			log.Debugf("replay finished at %v after %d events", e.clock, e.clock.Steps)
			return nil
		}
		if err != nil {
			return err
		}
		if err := e.Process(ev); err != nil {
			return err
		}
	}
}

// Finish 汇总报告
// 说明：只读取状态，可以在任意时刻重复调用
func (e *Engine) Finish() Report {
	anomalies := e.recorder.Anomalies()
	for _, c := range e.components {
		anomalies = append(anomalies, c.Finish()...)
	}
	return Report{
		Events:    e.clock.Steps,
		EndTime:   e.clock.T,
		Anomalies: anomalies,
	}
}
