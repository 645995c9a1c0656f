package model

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/gorm"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// IsValid returns true if Difficulty is known. The empty value is allowed:
// seed resources may leave difficulty unspecified.
func (d Difficulty) IsValid() bool {
	switch d {
	case Beginner, Intermediate, Advanced, "":
		return true
	}
	return false
}

func (d *Difficulty) Scan(value interface{ any }) error {
	v, ok := value.(string)
	if !ok {
		return fmt.Errorf("cannot scan %T into Difficulty", value)
	}
	*d = Difficulty(v)
	return nil
}

func (d Difficulty) Value() (driver.Value, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid Difficulty %q", d)
	}
	return string(d), nil
}

// A Skill is one entry of the SFIA-like taxonomy the platform matches roles
// and resources against.
//
// The short code (e.g. "PROG", "DLMG") is the natural key used for seeding;
// LevelMin/LevelMax describe the suggested 1-7 proficiency band.
type Skill struct {
	gorm.Model
	Code        string `gorm:"uniqueIndex;size:16;not null;check:code <> ''"`
	Name        string `gorm:"index;not null;check:name <> ''"`
	Category    string
	LevelMin    int
	LevelMax    int
	Description string
}

// A Role is a position in the career catalogue, identified by its name.
type Role struct {
	gorm.Model
	Name         string `gorm:"uniqueIndex;not null;check:name <> ''"`
	Family       string // e.g. "Engineering", "Leadership"
	Seniority    string // e.g. "Junior", "Mid", "Senior"
	Description  string
	Requirements []RoleSkillRequirement
}

// RoleSkillRequirement says a role requires a skill at a target level with a
// relative weight. Unique per (role, skill).
type RoleSkillRequirement struct {
	gorm.Model
	RoleID      uint    `gorm:"uniqueIndex:ux_role_skill;index"`
	SkillID     uint    `gorm:"uniqueIndex:ux_role_skill;index"`
	TargetLevel int     `gorm:"not null"` // 1-7 scale
	Weight      float64 `gorm:"default:1.0"`
	Role        Role    `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	Skill       Skill   `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// UserSkill is a user's current level for one skill. Rows are owned and
// mutated by the backend application; this utility only creates the table.
type UserSkill struct {
	gorm.Model
	UserID   uint   `gorm:"uniqueIndex:ux_user_skill;index"`
	SkillID  uint   `gorm:"uniqueIndex:ux_user_skill;index"`
	Level    int    `gorm:"not null"`
	Evidence string // notes/links supporting the claimed level
	Skill    Skill  `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// UserProgress is an append-only activity log owned by the backend
// application, e.g. "completed_resource" or "assessed_level" events.
type UserProgress struct {
	gorm.Model
	UserID  uint   `gorm:"index;not null"`
	RoleID  *uint  `gorm:"index"` // optional focus role
	SkillID uint   `gorm:"index;not null"`
	Action  string `gorm:"not null"`
	Details string // JSON or text blob
	Role    *Role  `gorm:"foreignKey:RoleID;constraint:OnDelete:SET NULL"`
	Skill   Skill  `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// LearningResource is a course, article, or book. The (title, url) pair is
// the natural key for seeding.
type LearningResource struct {
	gorm.Model
	Title        string `gorm:"uniqueIndex:ux_resource_identity;not null;check:title <> ''"`
	URL          string `gorm:"uniqueIndex:ux_resource_identity;not null;check:url <> ''"`
	Provider     string
	ResourceType string     // course, article, book
	Difficulty   Difficulty `gorm:"type:text"`
	Description  string
	Skills       []LearningResourceSkill `gorm:"foreignKey:ResourceID"`
}

// LearningResourceSkill links a resource to a skill it teaches, with the
// proficiency band the resource is suitable for. Unique per (resource, skill).
type LearningResourceSkill struct {
	gorm.Model
	ResourceID          uint `gorm:"uniqueIndex:ux_resource_skill;index"`
	SkillID             uint `gorm:"uniqueIndex:ux_resource_skill;index"`
	RecommendedLevelMin int
	RecommendedLevelMax int
	Resource            LearningResource `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE"`
	Skill               Skill            `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// CareerPath is one edge of the role progression graph. Populated by logic
// outside this utility; unique per (from, to).
type CareerPath struct {
	gorm.Model
	FromRoleID uint   `gorm:"uniqueIndex:ux_career_path;index"`
	ToRoleID   uint   `gorm:"uniqueIndex:ux_career_path;index"`
	Rationale  string
	FromRole   Role `gorm:"foreignKey:FromRoleID;constraint:OnDelete:CASCADE"`
	ToRole     Role `gorm:"foreignKey:ToRoleID;constraint:OnDelete:CASCADE"`
}

// Recommendation stores a generated recommendation blob for auditability.
// Rows are owned by the backend application.
type Recommendation struct {
	gorm.Model
	UserID              uint   `gorm:"index;not null"`
	Context             string // optional JSON of inputs
	RecommendationsJSON string `gorm:"not null"`
}
