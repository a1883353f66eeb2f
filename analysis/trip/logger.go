package trip

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "trip")
