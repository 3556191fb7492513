package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	RunID            string `yaml:"run_id"`
	TotalProcesses   int    `yaml:"total_processes"`
	CompletedCount   int    `yaml:"completed"`
	FaultedCount     int    `yaml:"faulted"`
	MemoryGranted    int    `yaml:"memory_granted"`
	MemoryDenied     int    `yaml:"memory_denied"`
	TotalEstimatedMs int64  `yaml:"total_estimated_ms"`
	SelectionOrder   []int  `yaml:"selection_order"`
	FaultedProcesses []int  `yaml:"faulted_processes"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		SelectionOrder:   make([]int, 0),
		FaultedProcesses: make([]int, 0),
	}
	if st == nil {
		return summary
	}
	summary.RunID = st.RunID

	summary.TotalProcesses = len(st.Selections)
	for _, s := range st.Selections {
		summary.SelectionOrder = append(summary.SelectionOrder, s.ProcessID)
		summary.TotalEstimatedMs += s.EstimatedMs
	}

	for _, m := range st.Memory {
		if m.Granted {
			summary.MemoryGranted++
		} else {
			summary.MemoryDenied++
		}
	}

	faulted := make(map[int]bool, len(st.Faults))
	for _, f := range st.Faults {
		if !faulted[f.ProcessID] {
			faulted[f.ProcessID] = true
			summary.FaultedProcesses = append(summary.FaultedProcesses, f.ProcessID)
		}
	}
	summary.FaultedCount = len(summary.FaultedProcesses)
	summary.CompletedCount = summary.TotalProcesses - summary.FaultedCount

	return summary
}
