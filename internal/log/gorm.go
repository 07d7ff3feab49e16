package log

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// NewGormLogger routes gorm's SQL logging through slog. Queries are logged
// at debug level, slow queries at warn.
func NewGormLogger(l *slog.Logger, slowThreshold time.Duration) gormlogger.Interface {
	level := gormlogger.Warn
	if l.Enabled(context.Background(), slog.LevelDebug) {
		level = gormlogger.Info
	}

	return gormlogger.New(slogWriter{l: l}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type slogWriter struct {
	l *slog.Logger
}

func (w slogWriter) Printf(format string, args ...interface{}) {
	w.l.Debug(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
