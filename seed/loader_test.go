package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	data, err := Load("")
	require.NoError(t, err)

	assert.Len(t, data.Skills, 12)
	assert.Len(t, data.Roles, 5)
	assert.Len(t, data.Resources, 6)

	// Requirement defaults: omitted weight becomes 1.0.
	for _, r := range data.Roles {
		for _, req := range r.Requirements {
			assert.Positive(t, req.TargetLevel, "role %s skill %s", r.Name, req.Skill)
			assert.Positive(t, req.Weight, "role %s skill %s", r.Name, req.Skill)
		}
	}
}

func TestLoadFromDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, SkillsFile, `[{"code": "COMM", "name": "Communication"}]`)
	writeSeedFile(t, dir, RolesFile, `[{"name": "Coach", "requirements": [{"skill": "COMM"}]}]`)
	writeSeedFile(t, dir, ResourcesFile, `[]`)

	data, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, data.Roles, 1)
	assert.Equal(t, defaultTargetLevel, data.Roles[0].Requirements[0].TargetLevel)
	assert.Equal(t, defaultWeight, data.Roles[0].Requirements[0].Weight)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, SkillsFile, parseErr.File)
	assert.Contains(t, parseErr.Reason, "missing")
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeSeedFile(t, dir, SkillsFile, `[{"code": "COMM",`)

	_, err := Load(dir)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "malformed")
}

func TestValidateUndeclaredRequirementSkill(t *testing.T) {
	d := Data{
		Skills: []SkillSeed{{Code: "COMM", Name: "Communication"}},
		Roles: []RoleSeed{{
			Name:         "Engineering Manager",
			Requirements: []RequirementSeed{{Skill: "Basket Weaving", TargetLevel: 3, Weight: 1}},
		}},
	}
	err := d.Validate()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "Basket Weaving")
	assert.Contains(t, parseErr.Reason, "Engineering Manager")
}

func TestValidateUndeclaredResourceSkill(t *testing.T) {
	d := Data{
		Skills: []SkillSeed{{Code: "COMM", Name: "Communication"}},
		Resources: []ResourceSeed{{
			Title: "Some Course", URL: "https://example.com",
			Skills: []ResourceSkillSeed{{Skill: "XXXX"}},
		}},
	}
	err := d.Validate()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "XXXX")
}

func TestValidateDuplicateSkillCode(t *testing.T) {
	d := Data{Skills: []SkillSeed{
		{Code: "COMM", Name: "Communication"},
		{Code: "COMM", Name: "Commerce"},
	}}
	assert.Error(t, d.Validate())
}

func TestValidateDuplicateSkillName(t *testing.T) {
	d := Data{Skills: []SkillSeed{
		{Code: "COMM", Name: "Communication"},
		{Code: "CMNX", Name: "Communication"},
	}}
	err := d.Validate()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "Communication")
	assert.Contains(t, parseErr.Reason, "collides")
}

func TestValidateNameCollidingWithCode(t *testing.T) {
	// A name reusing another skill's code would make requirement references
	// ambiguous, since they resolve by either code or name.
	d := Data{Skills: []SkillSeed{
		{Code: "COMM", Name: "Communication"},
		{Code: "PROG", Name: "COMM"},
	}}
	err := d.Validate()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, `"COMM"`)
	assert.Contains(t, parseErr.Reason, "collides")
}

func TestValidateBadDifficulty(t *testing.T) {
	d := Data{
		Resources: []ResourceSeed{{Title: "T", URL: "u", Difficulty: "impossible"}},
	}
	err := d.Validate()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Reason, "impossible")
}

func TestValidateResourceNeedsTitleAndURL(t *testing.T) {
	d := Data{Resources: []ResourceSeed{{Title: "Only a title"}}}
	assert.Error(t, d.Validate())
}

func TestMergeSkills(t *testing.T) {
	d := Data{Skills: []SkillSeed{
		{Code: "COMM", Name: "Communication", Description: "old"},
		{Code: "PROG", Name: "Programming"},
	}}
	d.MergeSkills([]SkillSeed{
		{Code: "COMM", Name: "Communication", Description: "new"},
		{Code: "TEST", Name: "Testing"},
	})

	require.Len(t, d.Skills, 3)
	assert.Equal(t, "new", d.Skills[0].Description)
	assert.Equal(t, "TEST", d.Skills[2].Code)
}

func writeSeedFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
