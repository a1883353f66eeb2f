package analysis

import "strings"

// DefaultStageActivitySuffix 换乘等中间活动的类型后缀，例如"car interaction"、"pt interaction"
const DefaultStageActivitySuffix = " interaction"

// IsStageActivity 是否为中间活动（不作为trip的起终点）
func IsStageActivity(actType, suffix string) bool {
	return strings.HasSuffix(actType, suffix)
}
