package seed

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"careernav/model"
)

// Default seed content shipped with the binary, used when no seeds directory
// is configured.
//
//go:embed data/*.json
var defaultFS embed.FS

// Load reads the three seed files from dir, applies defaults, and validates
// the whole set. An empty dir selects the embedded default seeds. Any failure
// is a *ParseError; no side effects beyond reading.
func Load(dir string) (*Data, error) {
	var fsys fs.FS
	if dir == "" {
		sub, err := fs.Sub(defaultFS, "data")
		if err != nil {
			return nil, &ParseError{File: "data", Reason: "embedded seeds unavailable", Err: err}
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dir)
	}

	var d Data
	if err := decodeFile(fsys, SkillsFile, &d.Skills); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, RolesFile, &d.Roles); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, ResourcesFile, &d.Resources); err != nil {
		return nil, err
	}

	d.applyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func decodeFile(fsys fs.FS, name string, out any) error {
	f, err := fsys.Open(name)
	if err != nil {
		return &ParseError{File: name, Reason: "missing seed file", Err: err}
	}
	defer f.Close() //nolint:errcheck // read-only handle

	if err := json.NewDecoder(f).Decode(out); err != nil {
		return &ParseError{File: name, Reason: "malformed JSON", Err: err}
	}
	return nil
}

func (d *Data) applyDefaults() {
	for ri := range d.Roles {
		for qi := range d.Roles[ri].Requirements {
			req := &d.Roles[ri].Requirements[qi]
			if req.TargetLevel == 0 {
				req.TargetLevel = defaultTargetLevel
			}
			if req.Weight == 0 {
				req.Weight = defaultWeight
			}
		}
	}
}

// Validate checks natural keys and cross-references across the whole seed
// set. A role requirement or resource association naming a skill that is not
// declared in the skill set is a hard error; the original tolerated and
// silently skipped such references, which hid typos in the seed files.
func (d *Data) Validate() error {
	declared := make(map[string]struct{}, 2*len(d.Skills))
	for i, s := range d.Skills {
		if s.Code == "" {
			return &ParseError{File: SkillsFile, Reason: fmt.Sprintf("skill #%d has no code", i)}
		}
		if s.Name == "" {
			return &ParseError{File: SkillsFile, Reason: fmt.Sprintf("skill %q has no name", s.Code)}
		}
		if _, dup := declared[s.Code]; dup {
			return &ParseError{File: SkillsFile, Reason: fmt.Sprintf("duplicate skill code %q", s.Code)}
		}
		declared[s.Code] = struct{}{}
		// Codes and names share one reference namespace, so a name reusing
		// another skill's code or name would make references ambiguous.
		if s.Name != s.Code {
			if _, dup := declared[s.Name]; dup {
				return &ParseError{File: SkillsFile, Reason: fmt.Sprintf("skill name %q collides with another skill's code or name", s.Name)}
			}
			declared[s.Name] = struct{}{}
		}
	}

	roleNames := make(map[string]struct{}, len(d.Roles))
	for i, r := range d.Roles {
		if r.Name == "" {
			return &ParseError{File: RolesFile, Reason: fmt.Sprintf("role #%d has no name", i)}
		}
		if _, dup := roleNames[r.Name]; dup {
			return &ParseError{File: RolesFile, Reason: fmt.Sprintf("duplicate role %q", r.Name)}
		}
		roleNames[r.Name] = struct{}{}
		for _, req := range r.Requirements {
			if _, ok := declared[req.Skill]; !ok {
				return &ParseError{
					File:   RolesFile,
					Reason: fmt.Sprintf("role %q requires undeclared skill %q", r.Name, req.Skill),
				}
			}
		}
	}

	resourceKeys := make(map[string]struct{}, len(d.Resources))
	for i, res := range d.Resources {
		if res.Title == "" || res.URL == "" {
			return &ParseError{File: ResourcesFile, Reason: fmt.Sprintf("resource #%d needs both title and url", i)}
		}
		key := res.Title + "\x00" + res.URL
		if _, dup := resourceKeys[key]; dup {
			return &ParseError{File: ResourcesFile, Reason: fmt.Sprintf("duplicate resource %q (%s)", res.Title, res.URL)}
		}
		resourceKeys[key] = struct{}{}
		if !model.Difficulty(res.Difficulty).IsValid() {
			return &ParseError{File: ResourcesFile, Reason: fmt.Sprintf("resource %q has unknown difficulty %q", res.Title, res.Difficulty)}
		}
		for _, sk := range res.Skills {
			if _, ok := declared[sk.Skill]; !ok {
				return &ParseError{
					File:   ResourcesFile,
					Reason: fmt.Sprintf("resource %q maps undeclared skill %q", res.Title, sk.Skill),
				}
			}
		}
	}
	return nil
}
