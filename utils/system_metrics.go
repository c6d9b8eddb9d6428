package utils

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

type SystemLoad struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// GetSystemLoad samples CPU usage since the previous call and current memory use.
func GetSystemLoad() (SystemLoad, error) {
	var load SystemLoad

	percentage, err := cpu.Percent(0, false)
	if err != nil {
		return load, err
	}
	if len(percentage) > 0 {
		load.CPUPercent = percentage[0]
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return load, err
	}
	load.MemoryPercent = vm.UsedPercent
	return load, nil
}
