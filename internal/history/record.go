package history

import "time"

// Transition directions.
const (
	DirectionAppeared    = "appeared"
	DirectionDisappeared = "disappeared"
)

// Transition is one persisted availability change of a watched
// (instance type, region) pair.
type Transition struct {
	ID           int64     `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Direction    string    `json:"direction"`
	InstanceType string    `json:"instance_type"`
	Region       string    `json:"region"`
	GPUs         int       `json:"gpus,omitempty"`
	Detail       string    `json:"detail,omitempty"`
}
