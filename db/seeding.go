package db

import (
	"fmt"

	"careernav/model"
	"careernav/seed"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seed reconciles the seed data against the database inside one transaction,
// so a failing statement rolls the whole run back. Entity types are processed
// in dependency order regardless of how the seed files were ordered:
// skills, then roles, then role requirements, then resources, then
// resource-skill associations.
func Seed(db *gorm.DB, logger *zap.SugaredLogger, data *seed.Data) error {
	return db.Transaction(func(tx *gorm.DB) error {
		skills := make([]model.Skill, 0, len(data.Skills))
		for _, s := range data.Skills {
			skills = append(skills, model.Skill{
				Code:        s.Code,
				Name:        s.Name,
				Category:    s.Category,
				LevelMin:    s.LevelMin,
				LevelMax:    s.LevelMax,
				Description: s.Description,
			})
		}
		if err := reconcile(tx,
			[]string{"code"},
			[]string{"name", "category", "level_min", "level_max", "description", "updated_at"},
			skills,
		); err != nil {
			return fmt.Errorf("seed skills: %w", err)
		}

		skillIDs, err := skillIDsByRef(tx)
		if err != nil {
			return err
		}

		roles := make([]model.Role, 0, len(data.Roles))
		for _, r := range data.Roles {
			roles = append(roles, model.Role{
				Name:        r.Name,
				Family:      r.Family,
				Seniority:   r.Seniority,
				Description: r.Description,
			})
		}
		if err := reconcile(tx,
			[]string{"name"},
			[]string{"family", "seniority", "description", "updated_at"},
			roles,
		); err != nil {
			return fmt.Errorf("seed roles: %w", err)
		}

		roleIDs, err := roleIDsByName(tx)
		if err != nil {
			return err
		}

		var requirements []model.RoleSkillRequirement
		for _, r := range data.Roles {
			roleID, ok := roleIDs[r.Name]
			if !ok {
				return fmt.Errorf("seed requirements: role %q not found after upsert", r.Name)
			}
			for _, req := range r.Requirements {
				skillID, ok := skillIDs[req.Skill]
				if !ok {
					return fmt.Errorf("seed requirements: role %q references unknown skill %q", r.Name, req.Skill)
				}
				requirements = append(requirements, model.RoleSkillRequirement{
					RoleID:      roleID,
					SkillID:     skillID,
					TargetLevel: req.TargetLevel,
					Weight:      req.Weight,
				})
			}
		}
		if err := reconcile(tx,
			[]string{"role_id", "skill_id"},
			[]string{"target_level", "weight", "updated_at"},
			requirements,
		); err != nil {
			return fmt.Errorf("seed role requirements: %w", err)
		}

		resources := make([]model.LearningResource, 0, len(data.Resources))
		for _, res := range data.Resources {
			resources = append(resources, model.LearningResource{
				Title:        res.Title,
				URL:          res.URL,
				Provider:     res.Provider,
				ResourceType: res.ResourceType,
				Difficulty:   model.Difficulty(res.Difficulty),
				Description:  res.Description,
			})
		}
		if err := reconcile(tx,
			[]string{"title", "url"},
			[]string{"provider", "resource_type", "difficulty", "description", "updated_at"},
			resources,
		); err != nil {
			return fmt.Errorf("seed learning resources: %w", err)
		}

		resourceIDs, err := resourceIDsByKey(tx)
		if err != nil {
			return err
		}

		var links []model.LearningResourceSkill
		for _, res := range data.Resources {
			resourceID, ok := resourceIDs[resourceKey(res.Title, res.URL)]
			if !ok {
				return fmt.Errorf("seed resource skills: resource %q not found after upsert", res.Title)
			}
			for _, sk := range res.Skills {
				skillID, ok := skillIDs[sk.Skill]
				if !ok {
					return fmt.Errorf("seed resource skills: resource %q references unknown skill %q", res.Title, sk.Skill)
				}
				links = append(links, model.LearningResourceSkill{
					ResourceID:          resourceID,
					SkillID:             skillID,
					RecommendedLevelMin: sk.LevelMin,
					RecommendedLevelMax: sk.LevelMax,
				})
			}
		}
		if err := reconcile(tx,
			[]string{"resource_id", "skill_id"},
			[]string{"recommended_level_min", "recommended_level_max", "updated_at"},
			links,
		); err != nil {
			return fmt.Errorf("seed resource skills: %w", err)
		}

		logger.Infow("seeded",
			"skills", len(skills),
			"roles", len(roles),
			"requirements", len(requirements),
			"resources", len(resources),
			"resource_skills", len(links),
		)
		return nil
	})
}

// skillIDsByRef maps both code and name to the skill ID, since requirement
// and association entries may reference a skill either way.
func skillIDsByRef(tx *gorm.DB) (map[string]uint, error) {
	var skills []model.Skill
	if err := tx.Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("load skills: %w", err)
	}
	ids := make(map[string]uint, 2*len(skills))
	for _, s := range skills {
		ids[s.Code] = s.ID
		ids[s.Name] = s.ID
	}
	return ids, nil
}

func roleIDsByName(tx *gorm.DB) (map[string]uint, error) {
	var roles []model.Role
	if err := tx.Find(&roles).Error; err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	ids := make(map[string]uint, len(roles))
	for _, r := range roles {
		ids[r.Name] = r.ID
	}
	return ids, nil
}

func resourceIDsByKey(tx *gorm.DB) (map[string]uint, error) {
	var resources []model.LearningResource
	if err := tx.Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("load learning resources: %w", err)
	}
	ids := make(map[string]uint, len(resources))
	for _, r := range resources {
		ids[resourceKey(r.Title, r.URL)] = r.ID
	}
	return ids, nil
}

func resourceKey(title, url string) string {
	return title + "\x00" + url
}
