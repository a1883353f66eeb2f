package config

import "fmt"

// InputPath 指定输入数据来源的配置（MongoDB、文件系统）
// 功能：定义数据输入路径的配置结构，支持多种数据源
// 说明：File优先级高于MongoDB，两者至少指定一个
type InputPath struct {
	DB   string `yaml:"db,omitempty" validate:"required_without=File"` // 数据库名
	Col  string `yaml:"col,omitempty" validate:"required_with=DB"`     // 集合名
	File string `yaml:"file,omitempty" validate:"required_without=DB"` // 文件路径（优先级高于MongoDB）
}

// GetDb 获取数据库名
func (p InputPath) GetDb() string {
	return p.DB
}

// GetColl 获取集合名
func (p InputPath) GetColl() string {
	return p.Col
}

// FromFile 是否从文件读取
func (p InputPath) FromFile() bool {
	return p.File != ""
}

func (p InputPath) String() string {
	if p.FromFile() {
		return p.File
	}
	return fmt.Sprintf("%s.%s", p.DB, p.Col)
}

// Input 指定所有输入数据的配置项
// 说明：只要有一个输入来自MongoDB，URI就必须设置
type Input struct {
	URI          string     `yaml:"uri,omitempty"`           // MongoDB连接字符串
	Network      InputPath  `yaml:"network"`                 // 路网（路段属性）
	Vehicles     *InputPath `yaml:"vehicles,omitempty"`      // 车辆
	Plans        *InputPath `yaml:"plans,omitempty"`         // 被选中的计划
	Events       InputPath  `yaml:"events"`                  // 基准场景事件
	PolicyEvents *InputPath `yaml:"policy_events,omitempty"` // 政策场景事件
}

// Paths 所有已配置的输入
func (i Input) Paths() []InputPath {
	paths := []InputPath{i.Network, i.Events}
	for _, p := range []*InputPath{i.Vehicles, i.Plans, i.PolicyEvents} {
		if p != nil {
			paths = append(paths, *p)
		}
	}
	return paths
}

// 分析名称
const (
	AnalysisTrips           = "trips"
	AnalysisTripsAdditional = "trips_additional"
	AnalysisTripsAreas      = "trips_areas"
	AnalysisLinks           = "links"
	AnalysisOccupancy       = "occupancy"
	AnalysisPlanCheck       = "plancheck"
	AnalysisAffected        = "affected"
)

// AllAnalyses 所有分析（默认全部执行）
var AllAnalyses = []string{
	AnalysisTrips,
	AnalysisTripsAdditional,
	AnalysisTripsAreas,
	AnalysisLinks,
	AnalysisOccupancy,
	AnalysisPlanCheck,
	AnalysisAffected,
}

// Control 回放控制配置
type Control struct {
	Analyses            []string `yaml:"analyses,omitempty" validate:"dive,oneof=trips trips_additional trips_areas links occupancy plancheck affected"`
	PeakWindow          float64  `yaml:"peak_window,omitempty" validate:"gte=0"` // 峰值窗口宽度（秒），0表示默认3600
	StageActivitySuffix string   `yaml:"stage_activity_suffix,omitempty"`        // 中间活动类型后缀，空表示" interaction"
	CheckedVehicleType  string   `yaml:"checked_vehicle_type,omitempty"`         // 乘员数检查的车辆类型，空表示car
}

// Output 结果输出配置
type Output struct {
	Dir    string `yaml:"dir" validate:"required"`                              // 输出目录
	Prefix string `yaml:"prefix,omitempty"`                                     // 文件名前缀，通常为场景名
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=csv xlsx"` // 输出格式，默认csv
}

// Config YAML配置文件的根结构
type Config struct {
	Input   Input   `yaml:"input"`   // 输入
	Control Control `yaml:"control"` // 回放控制
	Output  Output  `yaml:"output"`  // 输出
}
