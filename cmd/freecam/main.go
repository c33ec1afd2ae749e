// Command freecam opens a window with a first-person free camera driven by
// WASD/QE, the mouse and the scroll wheel, configured from YAML presets.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-freecam/engine"
	"github.com/Carmen-Shannon/oxy-freecam/engine/config"
	"github.com/Carmen-Shannon/oxy-freecam/engine/window"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML configuration file (built-in presets if empty)")
	presetName := flag.String("preset", "", "camera preset to start with (configured default if empty)")
	watch := flag.Bool("watch", false, "reload the configuration file when it changes")
	tickRate := flag.Float64("tick", 60, "input ticks per second")
	frameLimit := flag.Float64("fps", 120, "render frames per second cap (0 = uncapped)")
	profile := flag.Bool("profile", false, "log frame rate, memory statistics and the camera pose every second")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("[FreeCam] %v", err)
	}

	// ── Window ──────────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithResizable(cfg.Window.Resizable == nil || *cfg.Window.Resizable),
	)

	// ── Camera + Engine ─────────────────────────────────────────────────
	app, err := NewApp(cfg, *presetName, win,
		engine.WithTickRate(*tickRate),
		engine.WithRenderFrameLimit(*frameLimit),
		engine.WithProfiling(*profile),
	)
	if err != nil {
		_ = win.Close()
		log.Fatalf("[FreeCam] %v", err)
	}
	defer app.Close()

	// ── Hot reload ──────────────────────────────────────────────────────
	if *watch {
		if *configPath == "" {
			log.Println("[FreeCam] -watch needs -config, ignoring")
		} else {
			watcher, err := config.NewWatcher(*configPath)
			if err != nil {
				_ = win.Close()
				log.Fatalf("[FreeCam] %v", err)
			}
			defer watcher.Close()
			go app.Watch(watcher)
		}
	}

	fmt.Println("╔══════════════════════════════════════════════════════╗")
	fmt.Println("║  Oxy Free Camera                                     ║")
	fmt.Println("╠══════════════════════════════════════════════════════╣")
	fmt.Println("║  Move:  WASD  Up/Down: Q/E  Look: mouse              ║")
	fmt.Println("║  Zoom:  scroll wheel        Projection: P            ║")
	fmt.Println("║  Reset: R    Cursor: Tab    Quit: Esc                ║")
	fmt.Println("╚══════════════════════════════════════════════════════╝")

	log.Printf("[FreeCam] starting preset %q (available: %v)", app.presetName, cfg.PresetNames())
	app.Run()
	_ = win.Close()
}

// loadConfig returns the built-in configuration when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}
	return config.Load(path)
}
