package task

import (
	"context"
	"fmt"

	"github.com/unsap/matsim-berlin-homework/entity"
	"github.com/unsap/matsim-berlin-homework/entity/link"
	"github.com/unsap/matsim-berlin-homework/entity/plan"
	"github.com/unsap/matsim-berlin-homework/entity/vehicle"
	"github.com/unsap/matsim-berlin-homework/utils/config"
	"github.com/unsap/matsim-berlin-homework/utils/input"
	"go.mongodb.org/mongo-driver/mongo"
)

// Options 任务运行选项（来自命令行）
type Options struct {
	Job               string // 任务名
	Progress          bool   // 是否显示基准场景读取进度条
	HeartbeatInterval int64  // 心跳日志间隔事件数，不大于0时不输出
}

// Context 回放任务上下文
// 功能：包含一次分析任务的所有变量和状态，替代全局变量
// 说明：实体目录在初始化后只读，被基准场景和政策场景的回放共享
type Context struct {
	opts Options

	// MongoDB客户端，所有输入都来自文件时为nil
	client *mongo.Client

	// Link管理器
	linkManager *link.LinkManager
	// 车辆管理器
	vehicleManager *vehicle.VehicleManager
	// 计划管理器
	planManager *plan.PlanManager

	// 运行时配置文件
	runtimeConfig *config.RuntimeConfig

	// 用于初始化的输入
	initRes *input.Input
}

// NewContext 创建新的回放任务上下文
// 功能：加载实体目录数据并初始化所有管理器
// 参数：
//   - runCtx: 加载数据使用的上下文
//   - c: 配置对象
//   - opts: 运行选项
//
// 返回：初始化完成的Context实例
// 算法说明：
// 1. 连接MongoDB（配置了input.uri时）
// 2. 下载或读取路网、车辆和计划数据
// 3. 创建并初始化各类管理器（路段、车辆、计划）
func NewContext(runCtx context.Context, c config.Config, opts Options) (*Context, error) {
	ctx := &Context{
		opts:           opts,
		runtimeConfig:  config.NewRuntimeConfig(c),
		linkManager:    link.NewManager(),
		vehicleManager: vehicle.NewManager(),
		planManager:    plan.NewManager(),
	}
	client, err := input.Connect(runCtx, c.Input.URI)
	if err != nil {
		return nil, err
	}
	ctx.client = client

	// 读取所有回放所需的数据
	if ctx.initRes, err = input.Init(runCtx, c, ctx.client); err != nil {
		ctx.Close(runCtx)
		return nil, err
	}
	if err := ctx.init(); err != nil {
		ctx.Close(runCtx)
		return nil, err
	}
	log.Infof("job %s: analyses %v", opts.Job, ctx.runtimeConfig.C.Analyses)
	return ctx, nil
}

func (ctx *Context) init() error {
	initRes := ctx.initRes
	if err := ctx.linkManager.Init(initRes.Links); err != nil {
		return fmt.Errorf("init links: %w", err)
	}
	if err := ctx.vehicleManager.Init(initRes.Vehicles); err != nil {
		return fmt.Errorf("init vehicles: %w", err)
	}
	if err := ctx.planManager.Init(initRes.Persons); err != nil {
		return fmt.Errorf("init plans: %w", err)
	}
	return nil
}

func (ctx *Context) GetInput() *input.Input {
	return ctx.initRes
}

func (ctx *Context) LinkManager() entity.ILinkManager {
	return ctx.linkManager
}

func (ctx *Context) VehicleManager() entity.IVehicleManager {
	return ctx.vehicleManager
}

func (ctx *Context) PlanManager() entity.IPlanManager {
	return ctx.planManager
}

func (ctx *Context) RuntimeConfig() *config.RuntimeConfig {
	return ctx.runtimeConfig
}

// Close 断开MongoDB连接
func (ctx *Context) Close(runCtx context.Context) {
	if ctx.client == nil {
		return
	}
	if err := ctx.client.Disconnect(runCtx); err != nil {
		log.Warnf("disconnect mongo: %v", err)
	}
	ctx.client = nil
}
