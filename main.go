package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/menu"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"

	"adbdesk/mcp"
)

// set by -ldflags "-X main.version=..."
var version = "dev"

//go:embed all:frontend/dist
var assets embed.FS

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "adbdesk", "config.yaml")
}

func main() {
	kp := kingpin.New("adbdesk", "Android device desk: adb and scrcpy behind a desktop UI, an HTTP API and an MCP server.")
	kp.Version(version)
	kp.HelpFlag.Short('h')
	kp.UsageWriter(os.Stdout)

	cfgPath := kp.Flag("config", "Path to the YAML config file.").Default(defaultConfigPath()).String()
	logLevel := kp.Flag("log-level", "Override the configured log level (debug, info, warn, error).").String()
	mcpMode := kp.Flag("mcp", "Serve MCP over stdio instead of opening the window.").Bool()
	serveAddr := kp.Flag("serve", "Serve the HTTP API on this address without a window.").String()
	envHelp := kp.Flag("env-help", "List the supported environment variables and exit.").Bool()

	if _, err := kp.Parse(os.Args[1:]); err != nil {
		kp.FatalUsage("%s\n", err)
	}
	if *envHelp {
		WriteEnvUsage(os.Stdout)
		return
	}

	cfg, err := LoadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	level, err := ParseLogLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logCfg := DefaultLogConfig()
	if cfg.LogToFile {
		logCfg = PersistentLogConfig(cfg.DataDir)
	}
	logCfg.Level = level
	if *mcpMode {
		// stdout carries the protocol
		logCfg.ConsoleOut = os.Stderr
	}
	if err := InitLogger(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer CloseLogger()

	app, err := NewApp(version, cfg, *cfgPath)
	if err != nil {
		LogError("app").Err(err).Msg("Failed to create app")
		os.Exit(1)
	}

	switch {
	case *mcpMode:
		runMCP(app)
	case *serveAddr != "":
		runServe(app, *serveAddr)
	default:
		runWindow(app, cfg)
	}
}

func runMCP(app *App) {
	app.startup(context.Background())
	defer app.Shutdown(context.Background())

	if err := mcp.NewMCPServer(NewMCPBridge(app)).Start(); err != nil {
		LogError("mcp").Err(err).Msg("MCP server stopped")
	}
}

func runServe(app *App, addr string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.startup(ctx)
	defer app.Shutdown(context.Background())

	if err := app.serveAPI(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		LogError("http").Err(err).Msg("HTTP server failed")
	}
}

func runWindow(app *App, cfg Config) {
	var applicationMenu *menu.Menu
	if runtime.GOOS == "darwin" {
		applicationMenu = menu.NewMenu()
		applicationMenu.Append(menu.AppMenu())
		applicationMenu.Append(menu.EditMenu())
		applicationMenu.Append(menu.WindowMenu())
	}

	err := wails.Run(&options.App{
		Title:     "adbdesk",
		Width:     1280,
		Height:    720,
		MinWidth:  1280,
		MinHeight: 720,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:             applicationMenu,
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup: func(ctx context.Context) {
			app.events.Add(wailsSink{ctx: ctx})
			app.startup(ctx)
			if cfg.HTTPAddr != "" {
				go func() {
					if err := app.serveAPI(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
						LogError("http").Err(err).Msg("HTTP server failed")
					}
				}()
			}
		},
		OnShutdown:       app.Shutdown,
		WindowStartState: options.Normal,
		DragAndDrop: &options.DragAndDrop{
			EnableFileDrop:     true,
			DisableWebViewDrop: true,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  false,
				HideTitleBar:               false,
				FullSizeContent:            true,
				UseToolbar:                 false,
				HideToolbarSeparator:       true,
			},
			Appearance:           mac.NSAppearanceNameDarkAqua,
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
			About: &mac.AboutInfo{
				Title:   "adbdesk",
				Message: "Android devices over adb and scrcpy",
			},
		},
		Bind: []interface{}{
			app,
		},
	})

	if err != nil {
		println("Error:", err.Error())
	}
}
