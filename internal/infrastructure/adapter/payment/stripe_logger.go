package payment

import (
	"fmt"

	coreport "github.com/amirhossein-jamali/headshot-service/internal/domain/port/core"
)

// leveledLogger adapts the core logger to stripe.LeveledLoggerInterface
type leveledLogger struct {
	logger coreport.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), nil)
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), nil)
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), nil)
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), nil)
}
