package link

import "github.com/sirupsen/logrus"

// log link模块的日志记录器
var log = logrus.WithField("module", "link")
