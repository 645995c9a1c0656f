// Package seed loads the static seed definitions (skills, roles with
// requirements, learning resources with skill associations) into typed
// in-memory records and validates them before anything touches the database.
package seed

import "fmt"

// File names expected inside the seeds directory.
const (
	SkillsFile    = "sfia_skills.json"
	RolesFile     = "roles.json"
	ResourcesFile = "learning_resources.json"
)

// Defaults applied to requirement entries that omit the field, matching the
// original seed format.
const (
	defaultTargetLevel = 3
	defaultWeight      = 1.0
)

// SkillSeed is one entry of sfia_skills.json. Code is the natural key.
type SkillSeed struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	LevelMin    int    `json:"level_min"`
	LevelMax    int    `json:"level_max"`
	Description string `json:"description"`
}

// RequirementSeed references a skill by code or name.
type RequirementSeed struct {
	Skill       string  `json:"skill"`
	TargetLevel int     `json:"target_level"`
	Weight      float64 `json:"weight"`
}

// RoleSeed is one entry of roles.json. Name is the natural key.
type RoleSeed struct {
	Name         string            `json:"name"`
	Family       string            `json:"family"`
	Seniority    string            `json:"seniority"`
	Description  string            `json:"description"`
	Requirements []RequirementSeed `json:"requirements"`
}

// ResourceSkillSeed references a skill by code or name together with the
// proficiency band the resource is suitable for.
type ResourceSkillSeed struct {
	Skill    string `json:"skill"`
	LevelMin int    `json:"level_min"`
	LevelMax int    `json:"level_max"`
}

// ResourceSeed is one entry of learning_resources.json. (Title, URL) is the
// natural key.
type ResourceSeed struct {
	Title        string              `json:"title"`
	URL          string              `json:"url"`
	Provider     string              `json:"provider"`
	ResourceType string              `json:"resource_type"`
	Difficulty   string              `json:"difficulty"`
	Description  string              `json:"description"`
	Skills       []ResourceSkillSeed `json:"skills"`
}

// Data is the full seed set for one run.
type Data struct {
	Skills    []SkillSeed
	Roles     []RoleSeed
	Resources []ResourceSeed
}

// ParseError reports malformed or missing seed input. It is always produced
// before any database write.
type ParseError struct {
	File   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("seed %s: %s: %v", e.File, e.Reason, e.Err)
	}
	return fmt.Sprintf("seed %s: %s", e.File, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MergeSkills replaces skills with matching codes and appends the rest.
// Used by the worksheet import to layer fetched rows over the file set.
func (d *Data) MergeSkills(skills []SkillSeed) {
	byCode := make(map[string]int, len(d.Skills))
	for i, s := range d.Skills {
		byCode[s.Code] = i
	}
	for _, s := range skills {
		if i, ok := byCode[s.Code]; ok {
			d.Skills[i] = s
			continue
		}
		byCode[s.Code] = len(d.Skills)
		d.Skills = append(d.Skills, s)
	}
}
