// Package watch implements the availability-tracking core of gpuwatch:
// filtering a raw provider snapshot down to the watched (instance type,
// region) pairs, diffing that set against the previous poll, and rendering
// the resulting transitions as log lines and webhook alerts.
package watch

import (
	"errors"
	"fmt"
	"strings"
)

// Spec holds the user's standing watch criteria. Construct it once with
// NewSpec; it is immutable for the process lifetime.
type Spec struct {
	// patterns are lowercased substrings matched against an instance
	// type's combined name and description.
	patterns []string

	// regionPrefix is a lowercased prefix matched against region names.
	// Empty means no region restriction.
	regionPrefix string

	// minGPUs/maxGPUs are inclusive bounds on the GPU count. A nil bound
	// places no constraint on that side.
	minGPUs *int
	maxGPUs *int
}

// ErrNoPatterns is returned when a Spec is constructed without any
// name/description patterns to match.
var ErrNoPatterns = errors.New("watch: at least one instance type pattern is required")

// NewSpec validates and normalizes the watch criteria. Patterns and the
// region prefix are lowercased here so matching stays case-insensitive
// without re-normalizing on every poll.
func NewSpec(patterns []string, regionPrefix string, minGPUs, maxGPUs *int) (Spec, error) {
	if len(patterns) == 0 {
		return Spec{}, ErrNoPatterns
	}
	if minGPUs != nil && maxGPUs != nil && *minGPUs > *maxGPUs {
		return Spec{}, fmt.Errorf("watch: min GPUs (%d) exceeds max GPUs (%d)", *minGPUs, *maxGPUs)
	}

	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return Spec{}, errors.New("watch: empty instance type pattern")
		}
		normalized = append(normalized, p)
	}

	return Spec{
		patterns:     normalized,
		regionPrefix: strings.ToLower(strings.TrimSpace(regionPrefix)),
		minGPUs:      minGPUs,
		maxGPUs:      maxGPUs,
	}, nil
}

// Patterns returns the normalized pattern list, for logging at startup.
func (s Spec) Patterns() []string { return s.patterns }

// matchesPattern reports whether any configured pattern is a substring of
// the given lowercased name+description text.
func (s Spec) matchesPattern(text string) bool {
	for _, p := range s.patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// withinGPUBounds reports whether a GPU count satisfies the inclusive
// [min, max] bounds.
func (s Spec) withinGPUBounds(gpus int) bool {
	if s.minGPUs != nil && gpus < *s.minGPUs {
		return false
	}
	if s.maxGPUs != nil && gpus > *s.maxGPUs {
		return false
	}
	return true
}

// matchesRegion reports whether a region name starts with the configured
// prefix, ignoring case. An empty prefix matches everything.
func (s Spec) matchesRegion(region string) bool {
	if s.regionPrefix == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(region), s.regionPrefix)
}
