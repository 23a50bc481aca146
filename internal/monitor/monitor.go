// Package monitor inspects the local ffmpeg installation and the host's
// current load.
package monitor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"convenient-cf/pkg/models"
)

type Monitor struct {
	ffmpegPath string

	once     sync.Once
	encoders []string
	probeErr error
}

// New resolves the ffmpeg binary. A bare name is looked up on PATH, so
// the configured value can be either a name or a full path.
func New(ffmpegPath string) (*Monitor, error) {
	path, err := exec.LookPath(ffmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg binary not found: %w", err)
	}
	return &Monitor{ffmpegPath: path}, nil
}

// Path returns the resolved ffmpeg binary path.
func (m *Monitor) Path() string { return m.ffmpegPath }

// Version runs "ffmpeg -version" and returns the banner first line, or
// the complete output when full is set.
func (m *Monitor) Version(ctx context.Context, full bool) (string, error) {
	cmd := exec.CommandContext(ctx, m.ffmpegPath, "-version")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg version check failed: %w", err)
	}
	if full {
		return out.String(), nil
	}
	return firstLine(out.String()), nil
}

// Capabilities asks ffmpeg what it supports. The encoder list is probed
// once; hardware capabilities don't change at runtime.
func (m *Monitor) Capabilities(ctx context.Context) (models.Capabilities, error) {
	m.once.Do(func() {
		m.encoders, m.probeErr = m.detectHardwareEncoders(ctx)
	})
	if m.probeErr != nil {
		return models.Capabilities{}, m.probeErr
	}

	banner, err := m.Version(ctx, false)
	if err != nil {
		return models.Capabilities{}, err
	}
	return models.Capabilities{
		Banner:           banner,
		HardwareEncoders: m.encoders,
	}, nil
}

// Stats gathers real-time CPU and RAM usage.
func (m *Monitor) Stats(ctx context.Context) (models.SystemStats, error) {
	stats := models.SystemStats{}

	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to get mem stats: %w", err)
	}
	stats.RAMPercent = v.UsedPercent

	// A small sampling interval is more accurate than the instant gauge.
	cpuPct, err := cpu.PercentWithContext(ctx, 500*time.Millisecond, false)
	if err != nil {
		return stats, fmt.Errorf("failed to get cpu stats: %w", err)
	}
	if len(cpuPct) > 0 {
		stats.CPUPercent = cpuPct[0]
	}

	// Starting an encode on an overloaded box only makes both jobs slow.
	stats.IsBusy = stats.CPUPercent > 80.0 || stats.RAMPercent > 90.0

	return stats, nil
}

// detectHardwareEncoders checks the encoder list, not drivers: it proves
// ffmpeg can actually see the hardware.
func (m *Monitor) detectHardwareEncoders(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, m.ffmpegPath, "-hide_banner", "-encoders")
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg encoder probe failed: %w", err)
	}
	return parseEncoders(out.String()), nil
}

func parseEncoders(output string) []string {
	var found []string
	if strings.Contains(output, "h264_nvenc") || strings.Contains(output, "hevc_nvenc") {
		found = append(found, "nvenc")
	}
	if strings.Contains(output, "h264_qsv") {
		found = append(found, "qsv")
	}
	if strings.Contains(output, "h264_vaapi") {
		found = append(found, "vaapi")
	}
	if strings.Contains(output, "h264_videotoolbox") {
		found = append(found, "videotoolbox")
	}
	if strings.Contains(output, "h264_v4l2m2m") {
		found = append(found, "v4l2m2m")
	}
	return found
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSuffix(s[:i], "\r")
	}
	return s
}
