// Package progress reports the files written by a static site export.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// Reporter follows one export run. Start is called once with the number of files,
// Written once per file, and Finish once with the error that ended the run, if any.
type Reporter interface {
	Start(outputDir string, files int)
	Written(path string, size int)
	Finish(err error)
}

// Summary counts what an export produced.
type Summary struct {
	Files int
	Bytes int64
}

func (s *Summary) add(size int) {
	s.Files++
	s.Bytes += int64(size)
}

// NewReporter draws a progress bar when stderr is a terminal and logs each file
// through logger otherwise.
func NewReporter(logger *zap.Logger) Reporter {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return &BarReporter{}
	}
	return &LogReporter{Logger: logger}
}

// BarReporter draws a progress bar on stderr.
type BarReporter struct {
	Summary
	bar *progressbar.ProgressBar
}

func (r *BarReporter) Start(outputDir string, files int) {
	r.bar = progressbar.NewOptions(files,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Exporting to "+outputDir),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Written(path string, size int) {
	r.add(size)
	if r.bar != nil {
		r.bar.Describe(path)
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) Finish(err error) {
	if r.bar == nil {
		return
	}
	if err != nil {
		_ = r.bar.Exit()
		return
	}
	_ = r.bar.Finish()
}

// LogReporter writes one log entry per file, for CI logs and redirected output.
type LogReporter struct {
	Summary
	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	files   int
	started time.Time
}

func (r *LogReporter) log() *zap.Logger {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	return r.Logger
}

func (r *LogReporter) Start(outputDir string, files int) {
	r.files = files
	r.started = time.Now()
	r.log().Info("Exporting site", zap.String("dir", outputDir), zap.Int("files", files))
}

func (r *LogReporter) Written(path string, size int) {
	r.add(size)
	r.log().Debug("Exported file",
		zap.String("file", path),
		zap.Int("size", size),
		zap.String("progress", fmt.Sprintf("%d/%d", r.Files, r.files)),
	)
}

func (r *LogReporter) Finish(err error) {
	fields := []zap.Field{
		zap.Int("files", r.Files),
		zap.Int64("bytes", r.Bytes),
		zap.Duration("elapsed", time.Since(r.started)),
	}
	if err != nil {
		r.log().Error("Site export failed", append(fields, zap.Error(err))...)
		return
	}
	r.log().Info("Site export complete", fields...)
}
