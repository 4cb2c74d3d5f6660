// Case entity: one juvenile-justice case file.
package types

import "time"

// Case is a case file. OffenseID and StageID reference required catalogs;
// MeasureTypeID and InstitutionID are optional catalog references. All four
// are protected by RESTRICT foreign keys, so deleting a referenced catalog
// row fails instead of cascading.
type Case struct {
	// CaseID is the integer primary key, generated by the store.
	CaseID int64 `json:"case_id"`

	// CaseNumber is the unique external reference. Generated (UUID v7)
	// when left empty on create.
	CaseNumber string `json:"case_number"`

	// Defendant is the name of the adolescent the case concerns.
	Defendant string `json:"defendant"`

	OffenseID     int64  `json:"offense_id"`
	StageID       int64  `json:"stage_id"`
	MeasureTypeID *int64 `json:"measure_type_id,omitempty"`
	InstitutionID *int64 `json:"institution_id,omitempty"`

	// OpenedAt defaults to the creation time when zero.
	OpenedAt  time.Time `json:"opened_at"`
	CreatedAt time.Time `json:"created_at"`
}
