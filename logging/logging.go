// Package logging sets up the debug log. The terminal belongs to the timer
// display, so log output only ever goes to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DefaultDir = "logs"
	FileName   = "ticktock.log"
	MaxLogSize = 10 * 1024 * 1024 // rotate above 10 MiB
)

// Setup returns a logger writing to dir/FileName when debug is set and a no-op
// logger otherwise. The returned func flushes and closes the file.
func Setup(debug bool, dir string) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}

	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := rotate(path, time.Now()); err != nil {
		return nil, nil, fmt.Errorf("rotate log: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(f), zap.DebugLevel)
	logger := zap.New(core, zap.AddCaller())

	cleanup := func() {
		_ = logger.Sync()
		_ = f.Close()
	}
	return logger, cleanup, nil
}

// rotate moves path aside with a timestamp suffix once it exceeds MaxLogSize
func rotate(path string, now time.Time) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() <= MaxLogSize {
		return nil
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	rotated := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("%s-%s.log", base, now.Format("20060102-150405")))
	return os.Rename(path, rotated)
}
