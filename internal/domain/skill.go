package domain

import "strings"

// SkillLevel is a proficiency tier, ordered from beginner to expert.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
	LevelExpert       SkillLevel = "expert"
)

var skillLevelRank = map[SkillLevel]int{
	LevelBeginner:     1,
	LevelIntermediate: 2,
	LevelAdvanced:     3,
	LevelExpert:       4,
}

// ParseSkillLevel resolves a free-form level string against the four
// canonical values, case-insensitively. The second return value reports
// whether the input was recognized.
func ParseSkillLevel(s string) (SkillLevel, bool) {
	level := SkillLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := skillLevelRank[level]; ok {
		return level, true
	}
	return "", false
}

// Rank returns the position of the level in the proficiency order,
// starting at 1. Unknown levels rank as 0.
func (l SkillLevel) Rank() int {
	return skillLevelRank[l]
}

type Skill struct {
	Name            string     `json:"name"`
	Level           SkillLevel `json:"level"`
	YearsExperience *int       `json:"years_experience,omitempty"`
	Category        string     `json:"category,omitempty"`
}
