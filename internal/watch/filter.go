package watch

import (
	"strconv"
	"strings"

	"gpuwatch/internal/lambdalabs"
)

// unknownValue stands in for spec fields the API did not report.
const unknownValue = "unknown"

// Info is the per-instance-type context retained for one cycle so alerts
// can describe what became available. Numeric spec fields are already
// rendered, with missing values replaced by "unknown".
type Info struct {
	GPUs        int
	GPUDesc     string
	VCPUs       string
	MemoryGiB   string
	StorageGiB  string
	Description string

	// Regions lists only the regions that survived the region filter,
	// in the order the API reported them.
	Regions []string
}

// Filter reduces a snapshot to the qualifying set of (instance type,
// region) keys under the given spec, plus per-name rendering context.
//
// An instance type qualifies when any pattern matches its lowercased
// name+description, its GPU count sits within the configured bounds, and
// at least one of its capacity regions matches the region prefix. It is a
// pure function: no side effects, deterministic for identical inputs.
func Filter(snapshot lambdalabs.Snapshot, spec Spec) (Set, map[string]Info) {
	qualifying := make(Set)
	info := make(map[string]Info)

	for _, offering := range snapshot {
		inst := offering.InstanceType
		text := strings.ToLower(inst.Name + " " + inst.Description)
		if !spec.matchesPattern(text) {
			continue
		}
		if !spec.withinGPUBounds(inst.Specs.GPUs) {
			continue
		}

		var regions []string
		for _, region := range offering.Regions {
			if spec.matchesRegion(region.Name) {
				regions = append(regions, region.Name)
			}
		}
		if len(regions) == 0 {
			continue
		}

		info[inst.Name] = Info{
			GPUs:        inst.Specs.GPUs,
			GPUDesc:     inst.GPUDescription,
			VCPUs:       renderCount(inst.Specs.VCPUs),
			MemoryGiB:   renderCount(inst.Specs.MemoryGiB),
			StorageGiB:  renderCount(inst.Specs.StorageGiB),
			Description: inst.Description,
			Regions:     regions,
		}
		for _, region := range regions {
			qualifying.Add(Key{InstanceType: inst.Name, Region: region})
		}
	}

	return qualifying, info
}

// renderCount formats an optional numeric spec field.
func renderCount(v *int) string {
	if v == nil {
		return unknownValue
	}
	return strconv.Itoa(*v)
}
