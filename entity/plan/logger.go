package plan

import "github.com/sirupsen/logrus"

// log plan模块的日志记录器
var log = logrus.WithField("module", "plan")
