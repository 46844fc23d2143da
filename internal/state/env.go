// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"studyguide/internal/config"
	"studyguide/internal/content"
	"studyguide/internal/export"
	"studyguide/internal/model"
	"studyguide/internal/printer"
	"studyguide/internal/progress"
	"studyguide/internal/storage"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	Guide    *model.Guide
	Storage  *storage.Adapter
	Progress *progress.Store
	Exporter *export.Service
	Printer  printer.Printer

	start         time.Time
	closeLog      func() error
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start: time.Now(),
	}
}

// ConsoleLogging reports whether log entries reach the terminal. Until logs are
// prepared nothing does.
func (e *LocalEnv) ConsoleLogging() bool {
	return e.Log != nil && e.Cfg != nil && e.Cfg.Logging.ConsoleEnabled()
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Prepare builds logger from configuration and wires the study guide
// components. Configuration must be loaded.
func (e *LocalEnv) Prepare() (err error) {
	if e.Log, e.closeLog, err = e.Cfg.Logging.Prepare(); err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	// file log is appended to, tell runs apart
	e.Log = e.Log.With(zap.String("session", uuid.NewString()))
	if e.Guide, err = content.Load(); err != nil {
		return fmt.Errorf("unable to load study guide: %w", err)
	}

	kv := storage.OpenOrMemory(e.Cfg.Storage.Backend, e.Cfg.Storage.Dir, e.Log)
	e.Storage = storage.NewAdapter(kv, e.Log.Named("storage"))
	e.Progress = progress.NewStore(e.Storage)

	saver := export.DirSaver{Dir: e.Cfg.Export.Dir}
	e.Exporter = export.NewService(e.Progress, saver, export.SystemClock)
	e.Printer = printer.New(e.Cfg.Print.Command, e.Cfg.Print.Args, saver)
	return nil
}

// Close releases storage and flushes logs, it is safe to call on partially
// prepared environment.
func (e *LocalEnv) Close() (err error) {
	if e.Storage != nil {
		if er := e.Storage.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close storage: %w", er))
		}
	}
	e.RestoreStdLog()
	if e.closeLog != nil {
		if er := e.closeLog(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close log file: %w", er))
		}
	}
	return err
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
		e.restoreStdLog = nil
	}
}
