package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v2"
)

// RuntimeConfig 运行时配置
// 功能：填充了默认值的配置
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 回放控制配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
// 算法说明：
// 1. 未指定分析时执行输入数据允许的全部分析
// 2. 未指定输出格式时使用csv
func NewRuntimeConfig(config Config) *RuntimeConfig {
	rc := &RuntimeConfig{}
	if len(config.Control.Analyses) == 0 {
		config.Control.Analyses = lo.Filter(AllAnalyses, func(a string, _ int) bool {
			return missingInput(config.Input, a) == ""
		})
	}
	if config.Output.Format == "" {
		config.Output.Format = "csv"
	}
	rc.All = config
	rc.C = config.Control
	return rc
}

// Has 是否执行指定分析
func (rc *RuntimeConfig) Has(analysis string) bool {
	return lo.Contains(rc.C.Analyses, analysis)
}

// Parse 解析并校验YAML配置
// 说明：使用UnmarshalStrict，配置文件中出现未知字段时报错
func Parse(data []byte) (Config, error) {
	var c Config
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config file load err: %w", err)
	}
	if err := Validate(c); err != nil {
		return c, err
	}
	return c, nil
}

// Load 读取、解析并校验YAML配置文件
func Load(path string) (Config, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config file load err: %w", err)
	}
	return Parse(file)
}

// Validate 校验配置
// 功能：字段规则由validate标签描述，跨字段规则在此检查
func Validate(c Config) error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Input.URI == "" {
		for _, p := range c.Input.Paths() {
			if !p.FromFile() {
				return fmt.Errorf("invalid config: input %s needs input.uri", p)
			}
		}
	}
	for _, analysis := range c.Control.Analyses {
		if missing := missingInput(c.Input, analysis); missing != "" {
			return fmt.Errorf("invalid config: analysis %s needs input.%s", analysis, missing)
		}
	}
	return nil
}

// missingInput 分析缺少的输入项名称，不缺少时返回空
func missingInput(input Input, analysis string) string {
	switch {
	case analysis == AnalysisOccupancy && input.Vehicles == nil:
		return "vehicles"
	case analysis == AnalysisPlanCheck && input.Plans == nil:
		return "plans"
	}
	return ""
}

// IsValidationError 错误是否来自字段校验
func IsValidationError(err error) bool {
	var ve validator.ValidationErrors
	return errors.As(err, &ve)
}
