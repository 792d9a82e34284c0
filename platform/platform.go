// Copyright 2026 The lightframe-engine Authors. All rights reserved.

// Package platform provides the process context: logger,
// GPU driver and clock.
//
// A Context is created with Open and must be closed with
// Close. There can be more than one open Context, but
// only the most recent one installs its logger as the
// global zap logger.
package platform

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/juzzbott/lightframe-engine/config"
	"github.com/juzzbott/lightframe-engine/driver"
)

// ErrNoDriver means that no registered driver matched
// the requested name and none could be opened as
// a fallback.
var ErrNoDriver = errors.New("platform: driver not found")

// Context is an explicitly managed platform context.
type Context struct {
	log     *zap.Logger
	undo    func()
	session uuid.UUID
	drv     driver.Driver
	gpu     driver.GPU

	start time.Time

	mu   sync.Mutex
	last time.Time
}

// Open creates a new Context from c.
// If c is nil, config.Default() is used.
func Open(c *config.Config) (*Context, error) {
	if c == nil {
		c = config.Default()
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	log, err := NewLogger(&c.Log)
	if err != nil {
		return nil, err
	}
	session := uuid.New()
	log = log.With(zap.Stringer("session", session))

	drv, gpu, err := loadDriver(c.Driver.Name)
	if err != nil && c.Driver.Name != "" {
		log.Warn("driver not found, trying all drivers", zap.String("name", c.Driver.Name))
		drv, gpu, err = loadDriver("")
	}
	if err != nil {
		log.Sync()
		return nil, err
	}
	log.Info("driver opened", zap.String("driver", drv.Name()))

	return &Context{
		log:     log,
		undo:    zap.ReplaceGlobals(log),
		session: session,
		drv:     drv,
		gpu:     gpu,
		start:   time.Now(),
	}, nil
}

// loadDriver opens the first driver whose name contains
// name. It is case insensitive.
// If name is the empty string, then all registered
// drivers are considered.
func loadDriver(name string) (driver.Driver, driver.GPU, error) {
	drivers := driver.Drivers()
	err := ErrNoDriver
	name = strings.ToLower(name)
	for i := range drivers {
		if !strings.Contains(strings.ToLower(drivers[i].Name()), name) {
			continue
		}
		var gpu driver.GPU
		if gpu, err = drivers[i].Open(); err != nil {
			continue
		}
		return drivers[i], gpu, nil
	}
	return nil, nil, err
}

// NewLogger creates a logger from c.
func NewLogger(c *config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      c.Development,
		Encoding:         c.Encoding,
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    !c.Development,
	}
	if c.Development {
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		zc.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}
	log, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("platform: %w", err)
	}
	return log, nil
}

// Close closes the driver and restores the previous
// global logger.
// Calling Close more than once has no effect.
func (c *Context) Close() {
	if c.drv == nil {
		return
	}
	c.drv.Close()
	c.log.Info("context closed",
		zap.String("driver", c.drv.Name()),
		zap.Duration("runningTime", c.RunningTime()))
	c.log.Sync()
	c.undo()
	c.drv = nil
	c.gpu = nil
}

// Logger returns the context's logger.
func (c *Context) Logger() *zap.Logger { return c.log }

// Driver returns the opened driver.
func (c *Context) Driver() driver.Driver { return c.drv }

// GPU returns the GPU of the opened driver.
func (c *Context) GPU() driver.GPU { return c.gpu }

// Session returns the identifier of this context.
// Every log line of Logger carries it.
func (c *Context) Session() uuid.UUID { return c.session }

// RunningTime returns the time elapsed since Open.
func (c *Context) RunningTime() time.Duration { return time.Since(c.start) }

// SystemTime returns the wall clock time.
func (c *Context) SystemTime() time.Time { return time.Now() }

// DeltaTime returns the time elapsed since the previous
// call, or zero on the first call.
// It is meant to be called once per frame.
func (c *Context) DeltaTime() time.Duration {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	var d time.Duration
	if !c.last.IsZero() {
		d = now.Sub(c.last)
	}
	c.last = now
	return d
}
