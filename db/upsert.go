package db

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reconcile is the single upsert primitive every entity type goes through:
// insert each row, or overwrite the listed non-key columns when a row with
// the same natural key already exists. Overwrite, not merge: after a run the
// row matches the input exactly. Rows in storage that are absent from the
// input are left untouched.
func reconcile[T any](tx *gorm.DB, keyColumns, updateColumns []string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]clause.Column, 0, len(keyColumns))
	for _, c := range keyColumns {
		cols = append(cols, clause.Column{Name: c})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   cols,
		DoUpdates: clause.AssignmentColumns(updateColumns),
	}).Create(&rows).Error
}
