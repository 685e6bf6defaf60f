package types

// Sensor statuses
const (
	SensorActive   = "active"
	SensorDetected = "detected"
	SensorInactive = "inactive"
	SensorError    = "error"
)

// BatteryState is a point-in-time battery reading
type BatteryState struct {
	Level              *int     `json:"level"`
	Status             string   `json:"status"`
	Health             string   `json:"health"`
	Temperature        *float64 `json:"temperature"` // °C
	Voltage            *int     `json:"voltage"`     // mV
	Current            *int     `json:"current"`     // mA
	Technology         *string  `json:"technology"`
	Plugged            string   `json:"plugged"`
	Capacity           *int     `json:"capacity"` // mAh
	ChargeCounter      *int64   `json:"charge_counter"`
	FullCharge         *bool    `json:"full_charge"`
	MaxChargingCurrent *int     `json:"max_charging_current"` // mA
	MaxChargingVoltage *int     `json:"max_charging_voltage"` // mV
}

// DisplayState is the screen configuration
type DisplayState struct {
	Resolution         *string  `json:"resolution"`
	Density            *string  `json:"density"`
	RefreshRate        *string  `json:"refresh_rate"`
	HDRCapabilities    *string  `json:"hdr_capabilities"`
	SupportedModes     []string `json:"supported_modes"`
	Brightness         *int     `json:"brightness"`
	AdaptiveBrightness *bool    `json:"adaptive_brightness"`
}

// ConnectivityState is a snapshot of the network radios
type ConnectivityState struct {
	// WiFi
	WifiEnabled        bool    `json:"wifi_enabled"`
	WifiConnected      bool    `json:"wifi_connected"`
	WifiSSID           *string `json:"wifi_ssid"`
	WifiSignalStrength *int    `json:"wifi_signal_strength"`
	WifiFrequency      *string `json:"wifi_frequency"`
	WifiLinkSpeed      *string `json:"wifi_link_speed"`
	WifiIP             *string `json:"wifi_ip"`

	// Bluetooth
	BluetoothEnabled   bool    `json:"bluetooth_enabled"`
	BluetoothName      *string `json:"bluetooth_name"`
	BluetoothAddress   *string `json:"bluetooth_address"`
	PairedDevicesCount int     `json:"paired_devices_count"`

	// Cellular
	MobileDataEnabled bool    `json:"mobile_data_enabled"`
	Carrier           *string `json:"carrier"`
	SignalStrength    *string `json:"signal_strength"`
	NetworkType       *string `json:"network_type"`

	AirplaneMode bool `json:"airplane_mode"`
}

// SensorRecord is one detected sensor
type SensorRecord struct {
	Name       string  `json:"name"`
	Vendor     *string `json:"vendor"`
	SensorType *string `json:"sensor_type"`
	Status     string  `json:"status"`
}

// TouchTestResult summarizes the touchscreen capabilities
type TouchTestResult struct {
	PointsDetected int      `json:"points_detected"`
	MaxTouchPoints *int     `json:"max_touch_points"`
	TouchMajor     *string  `json:"touch_major"`
	ToolType       *string  `json:"tool_type"`
	RawEvents      []string `json:"raw_events"`
}

// Diagnostics bundles every diagnostic record for one device
type Diagnostics struct {
	Battery      BatteryState      `json:"battery"`
	Display      DisplayState      `json:"display"`
	Sensors      []SensorRecord    `json:"sensors"`
	Connectivity ConnectivityState `json:"connectivity"`
}
