package dumpsys

import (
	"strings"

	"adbdesk/pkg/types"
)

const (
	cmdWifiDump      = "dumpsys wifi | grep -E 'Wi-Fi is|mWifiInfo|SSID|BSSID|RSSI|Frequency|Link speed|IP'"
	cmdWifiIP        = "ip addr show wlan0 | grep 'inet ' | awk '{print $2}' | cut -d/ -f1"
	cmdBluetoothDump = "dumpsys bluetooth_manager | grep -E 'enabled|name|address|Bonded'"
	cmdTelephonyDump = "dumpsys telephony.registry | head -50"
	cmdCarrier       = "getprop gsm.sim.operator.alpha"
)

// BuildConnectivity reads the WiFi, Bluetooth and cellular radios. Each group
// is read on its own; a failing source only blanks the fields it feeds.
func BuildConnectivity(sh Shell) types.ConnectivityState {
	var st types.ConnectivityState
	readWifi(sh, &st)
	readBluetooth(sh, &st)
	readCellular(sh, &st)
	st.AirplaneMode = settingIs(sh, "global", "airplane_mode_on", "1")
	return st
}

func readWifi(sh Shell, st *types.ConnectivityState) {
	dump, _ := sh.Query(cmdWifiDump)

	st.WifiEnabled = strings.Contains(dump, "Wi-Fi is enabled")
	st.WifiConnected = strings.Contains(dump, "mWifiInfo") && !strings.Contains(dump, "SSID: <unknown ssid>")

	if ssid, ok := Lookup(dump, "SSID"); ok {
		ssid = strings.Trim(ssid, `"`)
		st.WifiSSID = &ssid
	}
	if rssi, ok := Lookup(dump, "RSSI"); ok {
		if first, ok := Field(Fields(rssi), 0); ok {
			st.WifiSignalStrength = optInt(ParseInt(first))
		}
	}
	if f, ok := Lookup(dump, "Frequency"); ok {
		f = strings.ReplaceAll(f, " MHz", "") + " MHz"
		st.WifiFrequency = &f
	}
	if s, ok := Lookup(dump, "Link speed"); ok {
		s = strings.ReplaceAll(s, " Mbps", "") + " Mbps"
		st.WifiLinkSpeed = &s
	}
	st.WifiIP = optString(sh.Query(cmdWifiIP))
}

func readBluetooth(sh Shell, st *types.ConnectivityState) {
	dump, _ := sh.Query(cmdBluetoothDump)

	st.BluetoothEnabled = strings.Contains(strings.ToLower(dump), "enabled: true") ||
		settingIs(sh, "global", "bluetooth_on", "1")
	st.BluetoothName = optString(setting(sh, "secure", "bluetooth_name"))
	st.BluetoothAddress = optString(Lookup(dump, "address"))

	for _, line := range Lines(dump) {
		if strings.Contains(line, "Bonded") {
			st.PairedDevicesCount++
		}
	}
}

func readCellular(sh Shell, st *types.ConnectivityState) {
	dump, _ := sh.Query(cmdTelephonyDump)

	st.MobileDataEnabled = settingIs(sh, "global", "mobile_data", "1")
	st.Carrier = optString(sh.Query(cmdCarrier))
	st.SignalStrength = firstOf(
		func() (string, bool) { return Lookup(dump, "mSignalStrength") },
		func() (string, bool) { return Lookup(dump, "signalStrength") },
	)

	if code := firstOf(
		func() (string, bool) { return Lookup(dump, "mDataNetworkType") },
		func() (string, bool) { return Lookup(dump, "networkType") },
	); code != nil {
		label := NetworkTypeLabel(*code)
		st.NetworkType = &label
	}
}
