package watch

// Key identifies a single watchable condition: a specific instance type
// available in a specific region. Components keep the casing the API
// reported; filtering already handled case-insensitive matching.
type Key struct {
	InstanceType string
	Region       string
}

// Set is an unordered collection of Keys.
type Set map[Key]struct{}

// NewSet builds a Set from the given keys.
func NewSet(keys ...Key) Set {
	s := make(Set, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// Add inserts a key.
func (s Set) Add(k Key) { s[k] = struct{}{} }

// Contains reports whether the key is present.
func (s Set) Contains(k Key) bool {
	_, ok := s[k]
	return ok
}
