// sim/memory.go
package sim

import "fmt"

// MemoryRegion is a decoded MMU request, or a committed allocation once in a registry.
type MemoryRegion struct {
	ProcessID int
	Segment   int
	Base      int
	Length    int
}

// End returns the exclusive upper bound base+length.
func (r MemoryRegion) End() int {
	return r.Base + r.Length
}

func (r MemoryRegion) String() string {
	return fmt.Sprintf("%d/%d/%d", r.Segment, r.Base, r.Length)
}

// DecodeRegion splits an encoded M(...) cycle value into segment, base and length:
// segment = v / 1_000_000, base = (v / 1000) mod 1000, length = v mod 1000.
func DecodeRegion(processID, v int) MemoryRegion {
	return MemoryRegion{
		ProcessID: processID,
		Segment:   v / 1_000_000,
		Base:      (v / 1000) % 1000,
		Length:    v % 1000,
	}
}

// overlaps reports whether [a.Base, a.End()) and [b.Base, b.End()) intersect.
// Empty intervals never overlap.
func (r MemoryRegion) overlaps(o MemoryRegion) bool {
	if r.Length == 0 || o.Length == 0 {
		return false
	}
	return r.Base < o.End() && o.Base < r.End()
}

// within reports whether r is fully contained in o.
func (r MemoryRegion) within(o MemoryRegion) bool {
	return r.Base >= o.Base && r.End() <= o.End()
}

// MemoryRegistry is the append-only set of regions committed by one process run.
// A fresh registry is created when a process starts running and discarded at exit.
type MemoryRegistry struct {
	ProcessID int
	regions   []MemoryRegion
}

// NewMemoryRegistry creates an empty registry for processID.
func NewMemoryRegistry(processID int) *MemoryRegistry {
	return &MemoryRegistry{ProcessID: processID}
}

// Regions returns a copy of the committed regions in commit order.
func (mr *MemoryRegistry) Regions() []MemoryRegion {
	out := make([]MemoryRegion, len(mr.regions))
	copy(out, mr.regions)
	return out
}

// Len returns the number of committed regions.
func (mr *MemoryRegistry) Len() int {
	return len(mr.regions)
}

// MemoryManager validates allocate/access requests against a registry and a global bound.
type MemoryManager struct {
	Bound int // memory available (KB); no committed region may end past it
}

// NewMemoryManager creates a MemoryManager for the configured memory bound.
func NewMemoryManager(cfg MemoryConfig) *MemoryManager {
	return &MemoryManager{Bound: cfg.AvailableKB}
}

func (mm *MemoryManager) inBounds(r MemoryRegion) bool {
	return r.Base >= 0 && r.Length >= 0 && r.End() <= mm.Bound
}

// Allocate commits region to registry iff it fits under the bound and overlaps no
// region already committed. The whole registry is scanned. On failure registry is unchanged.
func (mm *MemoryManager) Allocate(region MemoryRegion, registry *MemoryRegistry) bool {
	if !mm.inBounds(region) {
		return false
	}
	for _, committed := range registry.regions {
		if region.overlaps(committed) {
			return false
		}
	}
	registry.regions = append(registry.regions, region)
	return true
}

// Access succeeds iff region fits under the bound and lies entirely within at least one
// committed region. Never mutates registry; an empty registry always fails.
func (mm *MemoryManager) Access(region MemoryRegion, registry *MemoryRegistry) bool {
	if !mm.inBounds(region) {
		return false
	}
	for _, committed := range registry.regions {
		if region.within(committed) {
			return true
		}
	}
	return false
}
