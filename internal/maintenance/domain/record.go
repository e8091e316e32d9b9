package maintenance

import "time"

// WorkOrderStatus is the lifecycle state of a work order.
type WorkOrderStatus string

const (
	StatusOpen       WorkOrderStatus = "open"
	StatusAssigned   WorkOrderStatus = "assigned"
	StatusInProgress WorkOrderStatus = "in_progress"
	StatusCompleted  WorkOrderStatus = "completed"
	StatusCancelled  WorkOrderStatus = "cancelled"
)

// NormalizeStatus validates and normalizes a status string.
func NormalizeStatus(value string) (WorkOrderStatus, bool) {
	switch WorkOrderStatus(value) {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return WorkOrderStatus(value), true
	default:
		return "", false
	}
}

// WorkOrder is a repair/service order raised against one asset.
type WorkOrder struct {
	ID          string
	AssetID     string
	Status      WorkOrderStatus
	FaultCode   string
	Description string
	ReportedAt  time.Time
	CompletedAt *time.Time
}

// Downtime returns the reported-to-completed span and whether the work
// order qualifies for downtime accounting. Only completed orders with
// both timestamps set qualify; spans where completion precedes the
// report are treated as data errors and excluded.
func (w WorkOrder) Downtime() (time.Duration, bool) {
	if w.Status != StatusCompleted {
		return 0, false
	}
	if w.CompletedAt == nil || w.ReportedAt.IsZero() {
		return 0, false
	}
	span := w.CompletedAt.Sub(w.ReportedAt)
	if span < 0 {
		return 0, false
	}
	return span, true
}

// Record is a completed maintenance-history entry for one asset.
type Record struct {
	ID          string
	AssetID     string
	Description string
	CompletedAt time.Time
}
