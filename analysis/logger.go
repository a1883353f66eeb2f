package analysis

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "analysis")
