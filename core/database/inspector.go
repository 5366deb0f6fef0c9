package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// TableColumns returns the lower-cased column names of table mapped to their database type.
// A missing table yields an empty map.
func TableColumns(db *gorm.DB, table string) (map[string]string, error) {
	columns := make(map[string]string)
	if !db.Migrator().HasTable(table) {
		return columns, nil
	}

	types, err := db.Migrator().ColumnTypes(table)
	if err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", table, err)
	}
	for _, col := range types {
		columns[strings.ToLower(col.Name())] = strings.ToLower(col.DatabaseTypeName())
	}
	return columns, nil
}

// MissingColumns lists the expected columns that table does not have, sorted.
func MissingColumns(db *gorm.DB, table string, expected []string) ([]string, error) {
	columns, err := TableColumns(db, table)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range expected {
		if _, ok := columns[strings.ToLower(name)]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
