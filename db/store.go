package db

import (
	"errors"

	"careernav/model"
)

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrNotReadOnly  = errors.New("only read queries are allowed")
)

// ColumnInfo describes one column of a table, from SQLite's table_info pragma.
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// ResultSet is a query result with every value rendered as text, ready for
// the shell and viewer to print.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}

// Store is the read surface the inspection shell and the viewer share.
type Store interface {
	ListTables() ([]string, error)
	TableSchema(name string) (string, error)
	TableColumns(name string) ([]ColumnInfo, error)
	TableRows(name string, limit int) (*ResultSet, error)
	CountRows(name string) (int64, error)
	Query(query string) (*ResultSet, error)
	GetSkillMapByCode() (map[string]model.Skill, error)
	GetRoleMapByName() (map[string]model.Role, error)
	GetResourceMapByKey() (map[string]model.LearningResource, error)
}
