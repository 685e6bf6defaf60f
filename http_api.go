package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"adbdesk/pkg/mirror"
	"adbdesk/pkg/types"
)

// ========================================
// HTTP API (--serve)
// ========================================

// APIResponse is the envelope of every /api reply.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func ErrorResponse(err string) APIResponse {
	return APIResponse{Success: false, Error: err}
}

func MessageResponse(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger logs through zerolog instead of gin's own writer.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		LogDebug("http").
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

// reply writes data, a message string, or the error text.
func reply(c *gin.Context, data interface{}, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, mirror.ErrNoSession) {
			status = http.StatusNotFound
		}
		c.JSON(status, ErrorResponse(err.Error()))
		return
	}
	if msg, ok := data.(string); ok {
		c.JSON(http.StatusOK, MessageResponse(msg))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse(data))
}

// bind decodes the JSON body or answers 400.
func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse(err.Error()))
		return false
	}
	return true
}

// setupRoutes mounts the API, the event socket and /metrics on router.
func (a *App) setupRoutes(router *gin.Engine) {
	router.Use(CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, SuccessResponse(gin.H{"status": "ok", "version": a.version}))
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{})))
	router.GET("/ws", a.hub.HandleWebSocket)

	api := router.Group("/api")
	{
		api.GET("/system", func(c *gin.Context) { reply(c, a.GetSystemInfo(), nil) })
		api.GET("/devices", func(c *gin.Context) {
			devices, err := a.GetDevices()
			reply(c, devices, err)
		})
		api.GET("/known-devices", func(c *gin.Context) {
			known, err := a.GetKnownDevices()
			reply(c, known, err)
		})
		api.GET("/mirror/sessions", func(c *gin.Context) { reply(c, a.GetMirrorSessions(), nil) })

		adbGroup := api.Group("/adb")
		{
			adbGroup.POST("/connect", func(c *gin.Context) {
				var req connectRequest
				if bind(c, &req) {
					out, err := a.AdbConnect(req.Address)
					reply(c, out, err)
				}
			})
			adbGroup.POST("/pair", func(c *gin.Context) {
				var req pairRequest
				if bind(c, &req) {
					out, err := a.AdbPair(req.Address, req.Code)
					reply(c, out, err)
				}
			})
			adbGroup.POST("/restart", func(c *gin.Context) {
				out, err := a.RestartAdbServer()
				reply(c, out, err)
			})
		}

		settingsGroup := api.Group("/settings")
		{
			settingsGroup.GET("/preferences", func(c *gin.Context) { reply(c, a.GetPreferences(), nil) })
			settingsGroup.PUT("/preferences", func(c *gin.Context) {
				prefs := a.GetPreferences()
				if bind(c, &prefs) {
					reply(c, prefs, a.SetPreferences(prefs))
				}
			})
			settingsGroup.GET("/history", func(c *gin.Context) { reply(c, a.GetCommandHistory(), nil) })
			settingsGroup.DELETE("/history", func(c *gin.Context) {
				a.ClearCommandHistory()
				reply(c, "History cleared", nil)
			})
		}

		a.setupDeviceRoutes(api.Group("/devices/:serial"))
	}
}

func (a *App) setupDeviceRoutes(dev *gin.RouterGroup) {
	dev.GET("/properties", func(c *gin.Context) {
		props, err := a.GetDeviceInfo(c.Param("serial"))
		reply(c, props, err)
	})

	// metadata
	dev.GET("/metadata", func(c *gin.Context) {
		m, err := a.GetDeviceMetadata(c.Param("serial"))
		reply(c, m, err)
	})
	dev.PUT("/metadata", func(c *gin.Context) {
		var m types.DeviceMetadata
		if bind(c, &m) {
			m.Serial = c.Param("serial")
			saved, err := a.SetDeviceMetadata(m)
			reply(c, saved, err)
		}
	})
	dev.DELETE("/metadata", func(c *gin.Context) {
		reply(c, "Metadata deleted", a.DeleteDeviceMetadata(c.Param("serial")))
	})
	dev.DELETE("", func(c *gin.Context) {
		reply(c, "Device forgotten", a.ForgetDevice(c.Param("serial")))
	})

	// diagnostics
	dev.GET("/diagnostics", func(c *gin.Context) {
		d, err := a.GetDiagnostics(c.Param("serial"))
		reply(c, d, err)
	})
	dev.GET("/diagnostics/:section", func(c *gin.Context) {
		data, err := a.DiagnosticsSection(c.Param("serial"), c.Param("section"))
		reply(c, data, err)
	})

	actions := dev.Group("/actions")
	{
		actions.POST("/touch", func(c *gin.Context) {
			var req touchRequest
			if bind(c, &req) {
				reply(c, "Touch injected", a.InjectTouch(c.Param("serial"), req.X, req.Y))
			}
		})
		actions.POST("/brightness", func(c *gin.Context) {
			var req levelRequest
			if bind(c, &req) {
				reply(c, "Brightness set", a.SetBrightness(c.Param("serial"), req.Level))
			}
		})
		actions.POST("/wifi", func(c *gin.Context) {
			var req toggleRequest
			if bind(c, &req) {
				reply(c, "WiFi toggled", a.ToggleWifi(c.Param("serial"), req.Enable))
			}
		})
		actions.POST("/bluetooth", func(c *gin.Context) {
			var req toggleRequest
			if bind(c, &req) {
				reply(c, "Bluetooth toggled", a.ToggleBluetooth(c.Param("serial"), req.Enable))
			}
		})
		actions.POST("/battery", func(c *gin.Context) {
			var req levelRequest
			if bind(c, &req) {
				reply(c, "Battery level simulated", a.SimulateBatteryLevel(c.Param("serial"), req.Level))
			}
		})
		actions.POST("/battery/reset", func(c *gin.Context) {
			reply(c, "Battery simulation reset", a.ResetBatterySimulation(c.Param("serial")))
		})
		actions.POST("/vibrate", func(c *gin.Context) {
			var req vibrateRequest
			if bind(c, &req) {
				reply(c, "Vibration triggered", a.TriggerVibration(c.Param("serial"), req.DurationMs))
			}
		})
	}

	// files
	dev.GET("/files", func(c *gin.Context) {
		entries, err := a.ListFiles(c.Param("serial"), c.DefaultQuery("path", "/"))
		reply(c, entries, err)
	})
	dev.GET("/files/content", func(c *gin.Context) {
		content, err := a.client.ReadFile(c.Request.Context(), c.Param("serial"), c.Query("path"))
		if err != nil {
			reply(c, nil, err)
			return
		}
		c.Data(http.StatusOK, "application/octet-stream", content)
	})
	files := dev.Group("/files")
	{
		files.POST("/pull", func(c *gin.Context) {
			var req transferRequest
			if bind(c, &req) {
				out, err := a.PullFile(c.Param("serial"), req.Remote, req.Local)
				reply(c, out, err)
			}
		})
		files.POST("/push", func(c *gin.Context) {
			var req transferRequest
			if bind(c, &req) {
				out, err := a.PushFile(c.Param("serial"), req.Local, req.Remote)
				reply(c, out, err)
			}
		})
		files.POST("/delete", func(c *gin.Context) {
			var req pathRequest
			if bind(c, &req) {
				out, err := a.DeleteFile(c.Param("serial"), req.Path)
				reply(c, out, err)
			}
		})
		files.POST("/move", func(c *gin.Context) {
			var req moveRequest
			if bind(c, &req) {
				out, err := a.MoveFile(c.Param("serial"), req.Src, req.Dest)
				reply(c, out, err)
			}
		})
		files.POST("/copy", func(c *gin.Context) {
			var req moveRequest
			if bind(c, &req) {
				out, err := a.CopyFile(c.Param("serial"), req.Src, req.Dest)
				reply(c, out, err)
			}
		})
		files.POST("/mkdir", func(c *gin.Context) {
			var req pathRequest
			if bind(c, &req) {
				out, err := a.CreateFolder(c.Param("serial"), req.Path)
				reply(c, out, err)
			}
		})
	}

	// packages
	dev.GET("/packages", func(c *gin.Context) {
		system, _ := strconv.ParseBool(c.Query("system"))
		pkgs, err := a.ListPackages(c.Param("serial"), system)
		reply(c, pkgs, err)
	})
	dev.POST("/install", func(c *gin.Context) {
		var req installRequest
		if bind(c, &req) {
			out, err := a.InstallAPK(c.Param("serial"), req.Path)
			reply(c, out, err)
		}
	})
	pkg := dev.Group("/packages/:package")
	{
		pkg.GET("", func(c *gin.Context) {
			d, err := a.GetAppInfo(c.Param("serial"), c.Param("package"))
			reply(c, d, err)
		})
		pkg.DELETE("", func(c *gin.Context) {
			out, err := a.UninstallApp(c.Param("serial"), c.Param("package"))
			reply(c, out, err)
		})
		pkgAction := func(msg string, fn func(deviceId, packageName string) error) gin.HandlerFunc {
			return func(c *gin.Context) {
				reply(c, msg, fn(c.Param("serial"), c.Param("package")))
			}
		}
		pkg.POST("/enable", pkgAction("Enabled", a.EnableApp))
		pkg.POST("/disable", pkgAction("Disabled", a.DisableApp))
		pkg.POST("/clear", pkgAction("Data cleared", a.ClearAppData))
		pkg.POST("/stop", pkgAction("Stopped", a.ForceStopApp))
		pkg.POST("/launch", pkgAction("Launched", a.StartApp))
	}

	// shell & logs
	dev.POST("/shell", func(c *gin.Context) {
		var req shellRequest
		if bind(c, &req) {
			out, err := a.RunAdbCommand(c.Param("serial"), req.Command)
			if err != nil {
				reply(c, nil, err)
				return
			}
			c.JSON(http.StatusOK, SuccessResponse(out))
		}
	})
	dev.GET("/logcat", func(c *gin.Context) {
		entries, err := a.GetLogEntries(c.Param("serial"), c.Query("level"), c.Query("filter"))
		reply(c, entries, err)
	})

	// mirroring
	dev.POST("/mirror", func(c *gin.Context) {
		out, err := a.StartScrcpy(c.Param("serial"))
		reply(c, out, err)
	})
	dev.DELETE("/mirror", func(c *gin.Context) {
		reply(c, "Mirroring stopped", a.StopScrcpy(c.Param("serial")))
	})
}

// newRouter returns the gin engine serving the API.
func (a *App) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	a.setupRoutes(router)
	return router
}

// serveAPI runs the API on addr until ctx ends.
func (a *App) serveAPI(ctx context.Context, addr string) error {
	go a.hub.Run(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           a.newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		LogInfo("http").Str("addr", addr).Msg("HTTP API listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
