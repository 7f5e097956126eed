package monitor

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemSampler reads live host metrics via gopsutil.
type SystemSampler struct{}

func NewSystemSampler() *SystemSampler {
	return &SystemSampler{}
}

func (SystemSampler) Sample(ctx context.Context) (Sample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("read memory: %w", err)
	}

	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("read load average: %w", err)
	}

	cpus, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return Sample{}, fmt.Errorf("count cpus: %w", err)
	}

	return Sample{
		FreeMemoryRatio: float64(vm.Available) / float64(vm.Total),
		LoadAverage1m:   avg.Load1,
		CPUCount:        cpus,
	}, nil
}
