// Package health holds the storage health state shared by the background
// monitor and the readiness endpoint.
package health

import "time"

// StorageStatus is the last known state of the storage backend.
type StorageStatus struct {
	Healthy   bool
	CheckedAt time.Time
	Err       error
}
