package system

import (
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// ProcStats is a point-in-time snapshot of this process, reported at the end
// of a render when -stats is set.
type ProcStats struct {
	RSSMB      float64
	CPUPercent float64
}

// Snapshot reads memory and CPU usage of the current process. Failures are
// non-fatal; missing fields stay zero.
func Snapshot() ProcStats {
	var s ProcStats

	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return s
	}

	if mem, err := p.MemoryInfo(); err == nil && mem != nil {
		s.RSSMB = float64(mem.RSS) / 1024.0 / 1024.0
	}
	if cpu, err := p.CPUPercent(); err == nil {
		s.CPUPercent = cpu
	}
	return s
}
