package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger adapts a zap logger to gorm's logger interface.
type GormLogger struct {
	zap           *zap.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
	skipNotFound  bool
}

// NewGormLogger creates a gorm logger adapter that logs slow queries and errors
// through zap.
func NewGormLogger(log *zap.Logger, level gormlogger.LogLevel, slowThreshold time.Duration, skipNotFound bool) *GormLogger {
	return &GormLogger{
		zap:           log,
		level:         level,
		slowThreshold: slowThreshold,
		skipNotFound:  skipNotFound,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zap.Sugar().Infof(msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zap.Sugar().Warnf(msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zap.Sugar().Errorf(msg, args...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && l.level >= gormlogger.Error && !(l.skipNotFound && errors.Is(err, gorm.ErrRecordNotFound)):
		l.zap.Error("query failed",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.zap.Warn("slow query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	case l.level >= gormlogger.Info:
		l.zap.Debug("query",
			zap.String("sql", sql),
			zap.Int64("rows", rows),
			zap.Duration("elapsed", elapsed))
	}
}
