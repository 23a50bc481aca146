package models

// SystemStats is a point-in-time snapshot of host load.
type SystemStats struct {
	// CPU usage percentage (0.0 to 100.0)
	CPUPercent float64 `json:"cpu_percent"`

	// RAM usage percentage (0.0 to 100.0)
	RAMPercent float64 `json:"ram_percent"`

	// Computed flag: is the system too loaded to start an encode?
	// Calculated by the Monitor based on thresholds (e.g. CPU > 80%).
	IsBusy bool `json:"is_busy"`
}

// Capabilities describes what the local ffmpeg build can do.
type Capabilities struct {
	// Banner is the first line of "ffmpeg -version".
	Banner string `json:"banner"`

	// HardwareEncoders lists the detected accelerators,
	// e.g. ["nvenc", "vaapi"].
	HardwareEncoders []string `json:"hardware_encoders"`
}

// ReleaseInfo is the upstream ffmpeg release record returned by the
// ffbinaries API.
type ReleaseInfo struct {
	Version   string `json:"version"`
	Permalink string `json:"permalink"`
}
