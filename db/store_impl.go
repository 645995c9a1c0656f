package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"careernav/model"

	"gorm.io/gorm"
)

type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

// Ping verifies the underlying database connection is healthy.
func (s *SQLStore) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sql store is not initialized")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// ListTables returns every user table, alphabetically.
func (s *SQLStore) ListTables() ([]string, error) {
	var names []string
	err := s.db.
		Raw(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`).
		Scan(&names).Error
	return names, err
}

// TableSchema returns the CREATE TABLE statement for the named table.
func (s *SQLStore) TableSchema(name string) (string, error) {
	var ddl sql.NullString
	err := s.db.
		Raw(`SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?`, name).
		Scan(&ddl).Error
	if err != nil {
		return "", err
	}
	if !ddl.Valid {
		return "", fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return ddl.String, nil
}

// TableColumns describes the columns of the named table.
func (s *SQLStore) TableColumns(name string) ([]ColumnInfo, error) {
	if err := s.requireTable(name); err != nil {
		return nil, err
	}
	rows, err := s.db.Raw(fmt.Sprintf("PRAGMA table_info(%q)", name)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var cols []ColumnInfo
	for rows.Next() {
		var (
			cid     int
			col     ColumnInfo
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &col.Name, &col.Type, &notNull, &dflt, &pk); err != nil {
			return nil, err
		}
		col.NotNull = notNull != 0
		col.PrimaryKey = pk != 0
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// TableRows returns up to limit rows of the named table.
func (s *SQLStore) TableRows(name string, limit int) (*ResultSet, error) {
	if err := s.requireTable(name); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}
	// Table name is validated against sqlite_master above, so interpolating
	// the quoted identifier here is safe.
	return s.Query(fmt.Sprintf("SELECT * FROM %q LIMIT %d", name, limit))
}

// CountRows returns the row count of the named table.
func (s *SQLStore) CountRows(name string) (int64, error) {
	if err := s.requireTable(name); err != nil {
		return 0, err
	}
	var count int64
	err := s.db.Raw(fmt.Sprintf("SELECT COUNT(*) FROM %q", name)).Scan(&count).Error
	return count, err
}

// Query runs an ad-hoc read query and renders every value as text.
// Anything other than SELECT (or a WITH-prefixed select) is rejected.
func (s *SQLStore) Query(query string) (*ResultSet, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if !strings.HasPrefix(q, "select") && !strings.HasPrefix(q, "with") {
		return nil, fmt.Errorf("%w: %.40s", ErrNotReadOnly, strings.TrimSpace(query))
	}

	rows, err := s.db.Raw(query).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	rs := &ResultSet{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = renderValue(v)
		}
		rs.Rows = append(rs.Rows, record)
	}
	return rs, rows.Err()
}

// GetSkillMapByCode returns every skill keyed by its code.
func (s *SQLStore) GetSkillMapByCode() (map[string]model.Skill, error) {
	var skills []model.Skill
	if err := s.db.Find(&skills).Error; err != nil {
		return nil, err
	}
	m := make(map[string]model.Skill, len(skills))
	for _, skill := range skills {
		m[skill.Code] = skill
	}
	return m, nil
}

// GetRoleMapByName returns every role keyed by name, requirements preloaded.
func (s *SQLStore) GetRoleMapByName() (map[string]model.Role, error) {
	var roles []model.Role
	if err := s.db.Preload("Requirements").Find(&roles).Error; err != nil {
		return nil, err
	}
	m := make(map[string]model.Role, len(roles))
	for _, role := range roles {
		m[role.Name] = role
	}
	return m, nil
}

// GetResourceMapByKey returns every learning resource keyed by its
// title/url natural key, skill associations preloaded.
func (s *SQLStore) GetResourceMapByKey() (map[string]model.LearningResource, error) {
	var resources []model.LearningResource
	if err := s.db.Preload("Skills").Find(&resources).Error; err != nil {
		return nil, err
	}
	m := make(map[string]model.LearningResource, len(resources))
	for _, r := range resources {
		m[resourceKey(r.Title, r.URL)] = r
	}
	return m, nil
}

func (s *SQLStore) requireTable(name string) error {
	var count int64
	err := s.db.
		Raw(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).
		Scan(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return nil
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
