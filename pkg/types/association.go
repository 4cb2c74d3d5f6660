// Association entities link cases to victims through the case_victims table.
package types

import "time"

// Association is one case ↔ victim membership row. A given pair exists at
// most once; the link table's composite primary key enforces this.
type Association struct {
	CaseID    int64     `json:"case_id"`
	VictimID  int64     `json:"victim_id"`
	CreatedAt time.Time `json:"created_at"`
}

// AssociationOutcome is the per-item result of a bulk associate. Err is nil
// when the item was associated; otherwise it carries the reason the item
// failed without aborting the rest of the batch.
type AssociationOutcome struct {
	VictimID int64
	Err      error
}

// Associated reports whether the item was linked.
func (o AssociationOutcome) Associated() bool { return o.Err == nil }
