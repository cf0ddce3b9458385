// Package main is the entry point for the SceneView viewer.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/controller"
	"github.com/Faultbox/sceneview/internal/engine/input/sdlinput"
	"github.com/Faultbox/sceneview/internal/engine/loop"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
	"github.com/Faultbox/sceneview/internal/engine/snapshot"
	"github.com/Faultbox/sceneview/internal/engine/window"
	"github.com/Faultbox/sceneview/internal/logger"
)

// headlessStep is the simulated frame interval of headless runs.
const headlessStep = time.Second / 60

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.DumpPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== SceneView ===", zap.String("scene", cfg.Scene.Name), zap.Bool("headless", cfg.Graphics.Headless))
	logger.Sugar.Debugf("Config: %+v", cfg)

	run := runWindow
	if cfg.Graphics.Headless {
		run = runHeadless
	}
	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

// runHeadless renders a fixed number of frames offscreen and saves the last
// one as a PNG.
func runHeadless(cfg *config.Config) error {
	w, h := cfg.Graphics.Width, cfg.Graphics.Height
	canvas, err := snapshot.New(w, h, logger.Named("snapshot"))
	if err != nil {
		return err
	}
	defer canvas.Close()

	frames := loop.NewManual()
	ctrl, err := controller.New(canvas, controller.Size{Width: w, Height: h}, controller.Options{
		Config: cfg,
		Frames: frames,
		Logger: logger.Named("controller"),
	})
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}
	defer ctrl.Dispose()

	frames.StepN(cfg.Graphics.Frames, headlessStep)
	if err := ctrl.Loop().Err(); err != nil {
		return err
	}
	return canvas.Save(cfg.Graphics.Snapshot)
}

// runWindow opens an SDL window and runs until it is closed.
func runWindow(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "SceneView - " + cfg.Scene.Name,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return err
	}
	defer win.Close()

	w, h := win.Size()
	r, err := renderer.New(w, h, logger.Named("renderer"))
	if err != nil {
		return err
	}
	defer r.Close()

	events := sdlinput.New(cfg.Controls.ClickSlop)
	frames := loop.NewTicker()
	start := func(cfg *config.Config) (*controller.Controller, error) {
		w, h := win.Size()
		return controller.New(r, controller.Size{Width: w, Height: h}, controller.Options{
			Config: cfg,
			Input:  events,
			Frames: frames,
			Logger: logger.Named("controller"),
		})
	}

	ctrl, err := start(cfg)
	if err != nil {
		return fmt.Errorf("creating scene: %w", err)
	}
	defer func() { ctrl.Dispose() }()

	var reload <-chan struct{}
	if path := config.ResolvePath(); path != "" {
		watcher, err := config.Watch(path, logger.Named("config"))
		if err != nil {
			logger.Warn("config reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			reload = watcher.Changes()
		}
	}

	for {
		if events.Poll() {
			return nil
		}

		select {
		case <-reload:
			ctrl, cfg = restart(ctrl, cfg, start)
			win.SetTitle("SceneView - " + ctrl.Scene().Name)
		default:
		}

		frames.Pump()
		if !ctrl.Loop().Running() {
			return ctrl.Loop().Err()
		}
		win.SwapBuffers()
	}
}

// restart rebuilds the scene from the reloaded config. The running scene and
// its config are kept when the new config does not load or build.
func restart(ctrl *controller.Controller, current *config.Config, start func(*config.Config) (*controller.Controller, error)) (*controller.Controller, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("config reload failed, keeping current scene", zap.Error(err))
		return ctrl, current
	}

	ctrl.Dispose()
	next, err := start(cfg)
	if err != nil {
		logger.Error("scene rebuild failed, restoring previous scene", zap.Error(err))
		if next, err = start(current); err != nil {
			logger.Fatal("cannot restore scene", zap.Error(err))
		}
		return next, current
	}
	logger.Info("config reloaded", zap.String("scene", cfg.Scene.Name))
	return next, cfg
}
