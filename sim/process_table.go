package sim

// BuildProcessTable creates one PCB per A(start) marker, in catalog order, and
// orders the table with the scheduler for cfg.Policy. IDs are 0-based ordinals among
// start markers. The catalog is assumed well-formed (see sim/script).
// Returns nil for a nil or empty catalog.
func BuildProcessTable(catalog *OperationCatalog, cfg SimConfig) []*ProcessControlBlock {
	if catalog.Len() == 0 {
		return nil
	}

	table := make([]*ProcessControlBlock, 0, catalog.CountProcessStarts())
	for i := 0; i < catalog.Len(); i++ {
		op, _ := catalog.At(i)
		if op.IsProcessStart() {
			table = append(table, NewProcessControlBlock(len(table), catalog, i))
		}
	}

	estimator := ServiceTimeEstimator{Catalog: catalog, Timing: cfg.Timing}
	NewScheduler(cfg.Policy.Scheduler, estimator).OrderProcesses(table)
	return table
}
