package logger

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	gormlogger "gorm.io/gorm/logger"
)

// New 設定に応じたzerologロガーを作成し、グローバルロガーにも設定する
func New(level, format string, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = out
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l
}

// GormLogger gormのログをレベルに応じてzerologへ出力するロガー
type GormLogger struct {
	Logger                    zerolog.Logger
	Level                     gormlogger.LogLevel
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

func (l GormLogger) event(e *zerolog.Event) *zerolog.Event {
	return e.Str("component", "gorm")
}

// LogMode ログレベルを変更したロガーを返す
func (l GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	l.Level = level
	return l
}

func (l GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Info {
		l.event(l.Logger.Info()).Msgf(msg, args...)
	}
}

func (l GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Warn {
		l.event(l.Logger.Warn()).Msgf(msg, args...)
	}
}

func (l GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Error {
		l.event(l.Logger.Error()).Msgf(msg, args...)
	}
}

// Trace SQLの実行結果を出力（失敗はError、遅いクエリはWarn、その他はDebug）
func (l GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.Level >= gormlogger.Error &&
		!(l.IgnoreRecordNotFoundError && errors.Is(err, gormlogger.ErrRecordNotFound)):
		sql, rows := fc()
		l.event(l.Logger.Error()).Err(err).
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).
			Msg("クエリの実行に失敗しました")
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		sql, rows := fc()
		l.event(l.Logger.Warn()).
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).
			Msgf("遅いクエリ（%s以上）", l.SlowThreshold)
	case l.Level >= gormlogger.Info:
		sql, rows := fc()
		l.event(l.Logger.Debug()).
			Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).
			Msg("クエリ")
	}
}
