// Package sysinfo samples host CPU and memory for the admin dashboard.
package sysinfo

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

var startTime = time.Now()

// Stats is one dashboard sample.
type Stats struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	MemoryUsedMB  float64 `json:"memory_used_mb"`
	GoVersion     string  `json:"go_version"`
	Uptime        string  `json:"uptime"`
}

// GetSystemCPUUsage returns the current CPU utilisation percentage.
// Sampled against the previous call, so the first reading covers the
// interval since boot.
func GetSystemCPUUsage(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

// GetSystemMemoryUsage returns the used physical memory percentage.
func GetSystemMemoryUsage(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// Snapshot gathers one dashboard sample. Probe failures degrade to
// zero values so the dashboard still renders.
func Snapshot(ctx context.Context) Stats {
	stats := Stats{
		GoVersion: runtime.Version(),
		Uptime:    time.Since(startTime).Truncate(time.Second).String(),
	}

	if percent, err := GetSystemCPUUsage(ctx); err == nil {
		stats.CPUPercent = percent
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats.MemoryPercent = vm.UsedPercent
		stats.MemoryUsedMB = float64(vm.Used) / 1024 / 1024
	}

	return stats
}
