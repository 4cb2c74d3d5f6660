// Victim entity: a person associated with one or more cases.
package types

import "time"

// Victim is a victim record. Victims exist independently of cases and are
// linked to them through the case_victims table.
type Victim struct {
	// VictimID is the integer primary key, generated by the store.
	VictimID int64 `json:"victim_id"`

	FullName string  `json:"full_name"`
	Notes    *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
