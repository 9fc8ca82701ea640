// Package logger is the diagnostic logger. Command results are written to the
// command's writer; the logger carries progress, warnings and debug output.
package logger

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output (CI)
	Color bool      // colorize (console)
	Out   io.Writer // default os.Stderr
}

type colorPrinter struct {
	success func(format string, a ...interface{}) string
	err     func(format string, a ...interface{}) string
	warning func(format string, a ...interface{}) string
	info    func(format string, a ...interface{}) string
	debug   func(format string, a ...interface{}) string
}

func newColorPrinter(enabled bool) *colorPrinter {
	colorize := func(attr color.Attribute) func(string, ...interface{}) string {
		c := color.New(attr)
		if !enabled {
			c.DisableColor()
		}
		return c.SprintfFunc()
	}
	return &colorPrinter{
		success: colorize(color.FgGreen),
		err:     colorize(color.FgRed),
		warning: colorize(color.FgYellow),
		info:    colorize(color.FgBlue),
		debug:   colorize(color.FgCyan),
	}
}

var (
	mu    sync.RWMutex
	zlog  *zap.SugaredLogger
	out   io.Writer = os.Stderr
	p     *colorPrinter
	ready atomic.Bool

	testMode atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()

	testMode.Store(false)
	if opts.Out != nil {
		out = opts.Out
	}

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.TimeKey = ""
		encCfg.CallerKey = ""
		encCfg.MessageKey = "msg"
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(out), parseLevel(opts.Level))
	zlog = zap.New(core).Sugar()
	p = newColorPrinter(opts.Color && !opts.JSON)

	ready.Store(true)
}

// UseTestMode silences logs during tests. It stays in effect until the next
// explicit Configure.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
	testMode.Store(true)
}

// InTestMode reports whether UseTestMode is in effect.
func InTestMode() bool {
	return testMode.Load()
}

func Info(msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	zlog.Info(p.info(msg, args...))
}

func Success(msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	zlog.Info(p.success(msg, args...))
}

func Warn(msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	zlog.Warn(p.warning(msg, args...))
}

func LogError(msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	zlog.Error(p.err(msg, args...))
}

func Debug(msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	zlog.Debug(p.debug(msg, args...))
}

// CreateTable returns a table that renders to w.
func CreateTable(w io.Writer, headers []string) *tablewriter.Table {
	t := tablewriter.NewTable(w)
	t.Header(headers)
	return t
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
