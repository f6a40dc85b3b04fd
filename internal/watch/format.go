package watch

import (
	"fmt"
	"sort"
	"strings"
)

// Alert is one two-part webhook notification: an attention-grabbing header
// and a descriptive body.
type Alert struct {
	Header string
	Body   string
}

// AppearedLines renders one log line per newly available (type, region)
// pair, with the full hardware context from the qualifying info. Pairs are
// enumerated by sorted instance type name, then by the info's region
// order; each appeared pair shows up exactly once.
func AppearedLines(appeared Set, info map[string]Info) []string {
	var lines []string
	forEachPair(appeared, info, func(key Key, in Info) {
		lines = append(lines, fmt.Sprintf(
			"FOUND: %d×%s (%s) | %s GiB RAM | %s vCPUs | %s GiB storage | %s | Region: %s",
			in.GPUs, key.InstanceType, in.GPUDesc, in.MemoryGiB, in.VCPUs, in.StorageGiB,
			in.Description, key.Region,
		))
	})
	return lines
}

// AppearedAlerts renders one header/body alert per newly available pair,
// in the same order as AppearedLines.
func AppearedAlerts(appeared Set, info map[string]Info) []Alert {
	var alerts []Alert
	forEachPair(appeared, info, func(key Key, in Info) {
		alerts = append(alerts, Alert{
			Header: fmt.Sprintf("🚨🚨🚨 GPU AVAILABLE: %d×%s 🚨🚨🚨",
				in.GPUs, strings.ToUpper(key.InstanceType)),
			Body: fmt.Sprintf("%d×%s (%s) just became available in %s! %s GiB RAM | %s vCPUs | %s GiB storage. Grab it while it lasts!",
				in.GPUs, key.InstanceType, in.GPUDesc, key.Region,
				in.MemoryGiB, in.VCPUs, in.StorageGiB),
		})
	})
	return alerts
}

// DisappearedLines renders one log line per pair that is no longer
// available. Only the key itself is used: the instance type may be absent
// from the latest snapshot entirely, so there is no info to look up.
func DisappearedLines(disappeared Set) []string {
	var lines []string
	for _, key := range sortedKeys(disappeared) {
		lines = append(lines, fmt.Sprintf(
			"GONE: %s in %s is no longer available", key.InstanceType, key.Region))
	}
	return lines
}

// DisappearedAlerts renders one header/body alert per vanished pair.
func DisappearedAlerts(disappeared Set) []Alert {
	var alerts []Alert
	for _, key := range sortedKeys(disappeared) {
		alerts = append(alerts, Alert{
			Header: fmt.Sprintf("❌❌❌ GPU GONE: %s ❌❌❌", strings.ToUpper(key.InstanceType)),
			Body:   fmt.Sprintf("%s in %s is no longer available.", key.InstanceType, key.Region),
		})
	}
	return alerts
}

// JoinAlerts combines the cycle's alerts into a single webhook message,
// header and body each on their own paragraph.
func JoinAlerts(alerts []Alert) string {
	parts := make([]string, 0, 2*len(alerts))
	for _, a := range alerts {
		parts = append(parts, a.Header, a.Body)
	}
	return strings.Join(parts, "\n\n")
}

// forEachPair visits every appeared key with its info, grouped by sorted
// instance type name and then the info's region order. Keys without an
// info entry are skipped; the filter always records info for every key it
// emits, so that only guards against caller mistakes.
func forEachPair(appeared Set, info map[string]Info, visit func(Key, Info)) {
	names := make([]string, 0, len(info))
	for name := range info {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		in := info[name]
		for _, region := range in.Regions {
			key := Key{InstanceType: name, Region: region}
			if appeared.Contains(key) {
				visit(key, in)
			}
		}
	}
}

// sortedKeys returns the set's keys ordered by instance type then region,
// purely so output is stable between runs.
func sortedKeys(s Set) []Key {
	keys := make([]Key, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].InstanceType != keys[j].InstanceType {
			return keys[i].InstanceType < keys[j].InstanceType
		}
		return keys[i].Region < keys[j].Region
	})
	return keys
}
