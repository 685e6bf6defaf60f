package main

// SystemInfo describes this backend for the about page and /api/system.
type SystemInfo struct {
	Version        string `json:"version"`
	OS             string `json:"os"`
	Arch           string `json:"arch"`
	AdbPath        string `json:"adbPath"`
	ScrcpyPath     string `json:"scrcpyPath"`
	DataDir        string `json:"dataDir"`
	ConfigPath     string `json:"configPath"`
	SettingsFile   string `json:"settingsFile"`
	LogFile        string `json:"logFile"`
	MonitorRunning bool   `json:"monitorRunning"`
}

// HTTP request bodies

type connectRequest struct {
	Address string `json:"address" binding:"required"`
}

type pairRequest struct {
	Address string `json:"address" binding:"required"`
	Code    string `json:"code" binding:"required"`
}

type shellRequest struct {
	Command string `json:"command" binding:"required"`
}

type transferRequest struct {
	Local  string `json:"local" binding:"required"`
	Remote string `json:"remote" binding:"required"`
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

type moveRequest struct {
	Src  string `json:"src" binding:"required"`
	Dest string `json:"dest" binding:"required"`
}

type installRequest struct {
	Path string `json:"path" binding:"required"`
}

type levelRequest struct {
	Level int `json:"level"`
}

type toggleRequest struct {
	Enable bool `json:"enable"`
}

type touchRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type vibrateRequest struct {
	DurationMs int `json:"durationMs"`
}
