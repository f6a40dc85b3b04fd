package watch

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"gpuwatch/internal/lambdalabs"
)

// genKeySet produces arbitrary small key sets drawn from a shared pool of
// plausible instance types and regions, so generated previous/qualifying
// sets actually overlap.
func genKeySet() gopter.Gen {
	names := []string{"gpu_1x_h100", "gpu_2x_h100", "gpu_8x_h100", "gpu_8x_a100", "gpu_1x_a10"}
	regions := []string{"us-west-1", "us-east-1", "us-south-1", "eu-central-1", "asia-east-1"}

	return gen.SliceOf(gen.IntRange(0, len(names)*len(regions)-1)).Map(func(indices []int) Set {
		s := make(Set)
		for _, i := range indices {
			s.Add(Key{
				InstanceType: names[i/len(regions)],
				Region:       regions[i%len(regions)],
			})
		}
		return s
	})
}

func setEqual(a, b Set) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b.Contains(k) {
			return false
		}
	}
	return true
}

func TestProperty_DiffIdempotentOnUnchangedInput(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("Diff(Q, Q) reports no transitions and keeps Q", prop.ForAll(
		func(q Set) bool {
			delta := Diff(q, q)
			return len(delta.Appeared) == 0 &&
				len(delta.Disappeared) == 0 &&
				setEqual(delta.Next, q)
		},
		genKeySet(),
	))

	properties.TestingRun(t)
}

func TestProperty_DiffPartitionsKeys(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Every key falls into exactly one of: still-present, appeared,
	// disappeared.
	properties.Property("appeared and still-present partition the qualifying set", prop.ForAll(
		func(previous, qualifying Set) bool {
			delta := Diff(previous, qualifying)

			still := make(Set)
			for k := range previous {
				if qualifying.Contains(k) {
					still.Add(k)
				}
			}

			union := make(Set)
			for k := range delta.Appeared {
				if still.Contains(k) {
					return false // overlap
				}
				union.Add(k)
			}
			for k := range still {
				union.Add(k)
			}
			return setEqual(union, qualifying)
		},
		genKeySet(), genKeySet(),
	))

	properties.Property("disappeared and still-present partition the previous set", prop.ForAll(
		func(previous, qualifying Set) bool {
			delta := Diff(previous, qualifying)

			still := make(Set)
			for k := range previous {
				if qualifying.Contains(k) {
					still.Add(k)
				}
			}

			union := make(Set)
			for k := range delta.Disappeared {
				if still.Contains(k) {
					return false
				}
				union.Add(k)
			}
			for k := range still {
				union.Add(k)
			}
			return setEqual(union, previous)
		},
		genKeySet(), genKeySet(),
	))

	properties.TestingRun(t)
}

func TestProperty_DiffSelfHeals(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	// Whatever the previous state was, one cycle fully catches up: a
	// second diff against the same qualifying set is a no-op.
	properties.Property("re-diffing the committed state is a no-op", prop.ForAll(
		func(previous, qualifying Set) bool {
			first := Diff(previous, qualifying)
			second := Diff(first.Next, qualifying)
			return len(second.Appeared) == 0 && len(second.Disappeared) == 0
		},
		genKeySet(), genKeySet(),
	))

	properties.TestingRun(t)
}

func TestProperty_FilterMonotonicInGPUBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	snapshot := lambdalabs.Snapshot{
		"gpu_1x_h100": offering("gpu_1x_h100", "1x H100", 1, "us-west-1"),
		"gpu_2x_h100": offering("gpu_2x_h100", "2x H100", 2, "us-west-1", "us-east-1"),
		"gpu_4x_h100": offering("gpu_4x_h100", "4x H100", 4, "eu-central-1"),
		"gpu_8x_h100": offering("gpu_8x_h100", "8x H100", 8, "us-west-1"),
	}

	// Tightening the bounds never grows the qualifying set.
	properties.Property("tighter GPU bounds never add keys", prop.ForAll(
		func(min, max, tighten int) bool {
			loose, err := NewSpec([]string{"h100"}, "", &min, &max)
			if err != nil {
				return true // min > max, nothing to compare
			}
			tightMin := min + tighten
			tightMax := max - tighten
			tight, err := NewSpec([]string{"h100"}, "", &tightMin, &tightMax)
			if err != nil {
				return true
			}

			looseSet, _ := Filter(snapshot, loose)
			tightSet, _ := Filter(snapshot, tight)

			for k := range tightSet {
				if !looseSet.Contains(k) {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 8), gen.IntRange(0, 8), gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
