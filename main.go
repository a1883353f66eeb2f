package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"

	easy "git.fiblab.net/utils/logrus-easy-formatter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/unsap/matsim-berlin-homework/task"
	"github.com/unsap/matsim-berlin-homework/utils/config"
)

var (
	// 任务名，用于日志
	job string
	// 配置文件路径
	configPath string
	// 配置文件Base64编码后的数据
	configData string
	// 是否显示读取进度条
	progress bool
	// 心跳日志间隔事件数
	heartbeatInterval int64

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel string

	log = logrus.WithField("module", "main")
)

var rootCmd = &cobra.Command{
	Use:   "berlin-analysis",
	Short: "Replay MATSim Berlin event logs and compute trip, link and consistency analyses",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logrus.SetFormatter(&easy.Formatter{
			TimestampFormat: "2006-01-02 15:04:05.0000",
			LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
		})
		// log: 运行时才修改
		level, ok := logLevels[logLevel]
		if !ok {
			return fmt.Errorf("log.level must be one of %v", logLevels)
		}
		logrus.SetLevel(level)
		return nil
	},
	SilenceUsage: true,
}

// analysisCmd 只执行指定分析的子命令，analyses为空时执行配置中的全部分析
func analysisCmd(use, short string, analyses ...string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			run(cmd.Context(), analyses)
		},
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&job, "job", "job0", "the name of the analysis task")
	flags.StringVar(&configPath, "config", "", "config file path")
	flags.StringVar(&configData, "config-data", "", "config file base64 encoded data")
	flags.BoolVar(&progress, "progress", false, "show a progress bar while reading the base events")
	flags.Int64Var(&heartbeatInterval, "log.heartbeat_interval", 1000000, "心跳日志间隔事件数（0表示关闭）")
	flags.StringVar(&logLevel, "log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	rootCmd.AddCommand(
		analysisCmd("run", "Run every analysis enabled by the config"),
		analysisCmd("trips", "Reconstruct trips and classify them relative to Berlin",
			config.AnalysisTrips, config.AnalysisTripsAdditional, config.AnalysisTripsAreas),
		analysisCmd("links", "Aggregate link traversals (and base/policy differences)", config.AnalysisLinks),
		analysisCmd("occupancy", "Check that no car carries more than one person", config.AnalysisOccupancy),
		analysisCmd("plancheck", "Check events against the selected plans", config.AnalysisPlanCheck),
		analysisCmd("affected", "Find persons who used a modified link", config.AnalysisAffected),
	)
}

// loadConfig 读取配置，analyses非空时覆盖配置中的分析列表
func loadConfig(analyses []string) (config.Config, error) {
	var c config.Config
	var err error
	if configPath != "" {
		c, err = config.Load(configPath)
	} else if configData != "" {
		var file []byte
		file, err = base64.StdEncoding.DecodeString(configData)
		if err != nil {
			return c, fmt.Errorf("config data load err: %w", err)
		}
		c, err = config.Parse(file)
	} else {
		return c, fmt.Errorf("config file or config data must be specified")
	}
	if err != nil {
		return c, err
	}
	if len(analyses) > 0 {
		c.Control.Analyses = analyses
		if err := config.Validate(c); err != nil {
			return c, err
		}
	}
	return c, nil
}

func run(ctx context.Context, analyses []string) {
	c, err := loadConfig(analyses)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Infof("%+v", c)

	t, err := task.NewContext(ctx, c, task.Options{
		Job:               job,
		Progress:          progress,
		HeartbeatInterval: heartbeatInterval,
	})
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	defer t.Close(context.Background())

	res, err := t.Run(ctx)
	if err != nil {
		t.Close(context.Background())
		log.Fatalf("%v", err)
	}
	fmt.Println(summary(res))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
