package game

// RegionEventKind distinguishes enter and exit notifications.
type RegionEventKind uint8

const (
	EnteredRegion RegionEventKind = iota
	ExitedRegion
)

// RegionEvent records one entity crossing a region boundary. The Region
// string is owned by the event (copied at emission), so handlers may retain
// it past the tick that produced it.
type RegionEvent struct {
	Kind   RegionEventKind
	UID    uint32
	Region string
}

func (k RegionEventKind) String() string {
	switch k {
	case EnteredRegion:
		return "ENTERED_REGION"
	case ExitedRegion:
		return "EXITED_REGION"
	default:
		return "UNKNOWN"
	}
}
