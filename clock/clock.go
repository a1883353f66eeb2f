package clock

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfOrder 事件时间早于已回放的时间
	ErrOutOfOrder = errors.New("event out of timestamp order")
	// ErrInvalidTime 事件时间不是数（NaN）
	ErrInvalidTime = errors.New("event timestamp is not a number")
)

// Clock 回放时钟
// 功能：记录事件流当前回放到的仿真时间，校验事件按时间非递减到达
// 说明：事件日志由仿真器按时间顺序写出，时间倒退说明输入文件损坏或被错误拼接
type Clock struct {
	T     float64 // 当前时间（秒）
	Steps int64   // 已推进的事件数
}

// New 创建从0时刻开始的时钟
func New() *Clock {
	c := &Clock{}
	c.Init()
	return c
}

// Init 重置时钟
func (c *Clock) Init() {
	c.T = 0
	c.Steps = 0
}

// Advance 推进时钟到事件时间
// 功能：校验并记录新事件的时间
// 参数：t-事件时间
// 返回：t为NaN时返回ErrInvalidTime，t小于当前时间时返回ErrOutOfOrder，两种情况下时钟都保持不变
// 说明：相同时间戳的事件之间不作要求
func (c *Clock) Advance(t float64) error {
	if math.IsNaN(t) {
		return fmt.Errorf("%w: after %v", ErrInvalidTime, c.T)
	}
	if t < c.T {
		return fmt.Errorf("%w: %v after %v", ErrOutOfOrder, t, c.T)
	}
	c.T = t
	c.Steps++
	return nil
}

// String 获取时钟的字符串表示
// 功能：将当前时间格式化为HH:MM:SS
// 说明：仿真时间可以超过24小时，小时数不取模
func (c *Clock) String() string {
	h, m, s := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, int(s))
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 返回：小时、分钟、秒（秒为浮点数，支持亚秒级精度）
func (c *Clock) GetHourMinuteSecond() (int, int, float64) {
	hour := int(c.T) / 3600
	minute := int(c.T) % 3600 / 60
	second := c.T - float64(hour*3600+minute*60)
	return hour, minute, second
}
