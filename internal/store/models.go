package store

import (
	"time"

	"fabrica/api/internal/calday"
	"fabrica/api/internal/lifecycle"
)

type User struct {
	ID            string
	DisplayName   string
	Email         string
	PasswordHash  string
	Role          string
	DeactivatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductionBlock is a unit of manufacturing work to run on a reactor.
// Planning fields are set only while the block is PLANNED; execution fields
// are written when it becomes PRODUCED. ParentID points at the block this one
// was split from; the parent row is gone by then, so it is a soft reference.
type ProductionBlock struct {
	ID             string
	ArticleCode    string
	ArticleDesc    string
	ClientName     string
	OrderNumber    string
	OrderedUnits   int
	ServedUnits    int
	PendingUnits   int
	Units          int
	Status         lifecycle.Status
	Deadline       *calday.Day
	OrderDate      *calday.Day
	PlannedDate    *calday.Day
	PlannedReactor *string
	PlannedShift   *string
	RealKg         *float64
	RealDuration   *float64
	OperatorNotes  *string
	BatchLabel     string
	ParentID       *string
	ErpID          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Reactor is a named production resource. Blocks reference reactors by name
// rather than id so that historical blocks survive reactor retirement.
type Reactor struct {
	ID            string
	Name          string
	Plant         string
	CapacityKg    int
	DailyTargetKg int
	CreatedAt     time.Time
}

type Holiday struct {
	Day  calday.Day
	Name string
}

// MaintenanceWindow is advisory reactor downtime. It is persisted and
// editable but not consulted by conflict detection.
type MaintenanceWindow struct {
	ID          string
	ReactorName string
	StartDate   calday.Day
	EndDate     calday.Day
	Reason      string
}

// AllocatedCode is the record that consumes a sequence number, created in
// the same transaction as the counter bump.
type AllocatedCode struct {
	Code       string
	Prefix     string
	YearDigits int
	Seq        int
	CreatedAt  time.Time
}
