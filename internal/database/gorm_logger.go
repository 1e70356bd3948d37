package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM's SQL logging through logrus.
type GormLogger struct {
	log   *logrus.Entry
	level gormlogger.LogLevel
	slow  time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger builds a GORM logger. Statements slower than slow are logged at
// warn level; every statement is logged at debug level when the entry allows it.
func NewGormLogger(log *logrus.Entry, slow time.Duration) *GormLogger {
	return &GormLogger{
		log:   log.WithField("component", "database"),
		level: gormlogger.Warn,
		slow:  slow,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.log.WithFields(logrus.Fields{
			"event":       "sql_error",
			"sql":         sql,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		}).WithError(err).Error("query failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.WithFields(logrus.Fields{
			"event":       "sql_slow",
			"sql":         sql,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		}).Warn("slow query")
	case l.log.Logger.IsLevelEnabled(logrus.DebugLevel):
		sql, rows := fc()
		l.log.WithFields(logrus.Fields{
			"event":       "sql",
			"sql":         sql,
			"rows":        rows,
			"duration_ms": elapsed.Milliseconds(),
		}).Debug("query")
	}
}
