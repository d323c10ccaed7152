package observability

import (
	"io"

	"github.com/sirupsen/logrus"
)

// SetupLogger configures the standard logrus logger: text with full timestamps in
// development, JSON in production
func SetupLogger(out io.Writer, isProd bool) *logrus.Logger {
	l := logrus.StandardLogger()
	l.SetOutput(out)
	if isProd {
		l.SetFormatter(&logrus.JSONFormatter{})
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}
