package models

import "time"

// ActivityKind classifies an entry in the local emergency activity log.
type ActivityKind string

const (
	ActivityActivation    ActivityKind = "Activation"    // resident raised an alert from this device
	ActivityBuildingAlert ActivityKind = "BuildingAlert" // building-wide alert observed by polling
	ActivityAlertCleared  ActivityKind = "AlertCleared"  // previously observed alert resolved
)

// ActivityEntry records one emergency-related event for the Activity tab
// and the tray. Entries never leave the device.
type ActivityEntry struct {
	ID        string // UUID
	Kind      ActivityKind
	Category  string // emergency category label, if any
	Detail    string // human-readable summary
	Submitted bool   // activation reached the backend (Activation only)
	Sounded   bool   // a local tone actually started
	At        time.Time
}
