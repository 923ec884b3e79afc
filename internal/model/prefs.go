package model

import "math"

// Default namespace and keys the counter screen persists under.
const (
	Namespace = "PREFS_NAME"
	KeyName   = "Name"
	KeyCount  = "Count"
)

// MaxCount is where Increment saturates. Counts are stored as 32-bit values.
const MaxCount = math.MaxInt32

// Prefs is the session state of the counter screen.
type Prefs struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
