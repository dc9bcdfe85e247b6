package resume

import (
	"regexp"
	"sort"
	"strings"
)

const minSkillLength = 2

// skillHeadings mark lines whose content is treated as a skill list.
var skillHeadings = []string{"skills", "technologies", "toolkit", "strengths"}

var skillSeparator = regexp.MustCompile(`[,\x{2022}|-]`)

// Parsed is the output of the heuristic text parser.
type Parsed struct {
	Summary    string
	Experience []string
	Skills     []string
}

// ParseText segments plain resume text into summary, experience
// bullets, and skills. The first two non-empty lines become the
// summary. Lines starting with a skill heading are split into skill
// tokens; bullet lines become experience entries.
func ParseText(text string) Parsed {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		if line := strings.TrimSpace(raw); line != "" {
			lines = append(lines, line)
		}
	}

	summary := ""
	if len(lines) > 0 {
		end := 2
		if len(lines) < end {
			end = len(lines)
		}
		summary = strings.Join(lines[:end], " ")
	}

	return Parsed{
		Summary:    summary,
		Experience: collectExperience(lines),
		Skills:     tokenizeSkills(lines),
	}
}

// EstimateATSScore is a deterministic heuristic: a 50-point base plus
// capped bonuses for skill and experience counts, never above 100.
func EstimateATSScore(parsed Parsed) int {
	skillBonus := len(parsed.Skills) * 5
	if skillBonus > 30 {
		skillBonus = 30
	}
	experienceBonus := len(parsed.Experience) * 3
	if experienceBonus > 20 {
		experienceBonus = 20
	}
	return capScore(50 + skillBonus + experienceBonus)
}

func tokenizeSkills(lines []string) []string {
	skills := make(map[string]struct{})
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !hasSkillHeading(lower) {
			continue
		}
		payload := line
		if _, after, found := strings.Cut(line, ":"); found && after != "" {
			payload = after
		}
		for _, token := range skillSeparator.Split(payload, -1) {
			cleaned := strings.TrimSpace(token)
			if len(cleaned) >= minSkillLength {
				skills[cleaned] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(skills))
	for skill := range skills {
		result = append(result, skill)
	}
	sort.Strings(result)
	return result
}

func hasSkillHeading(lower string) bool {
	for _, heading := range skillHeadings {
		if strings.HasPrefix(lower, heading) {
			return true
		}
	}
	return false
}

// collectExperience gathers bullet lines, stripping the bullet markers.
func collectExperience(lines []string) []string {
	var experience []string
	for _, line := range lines {
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") || strings.HasPrefix(line, "•") {
			experience = append(experience, strings.TrimSpace(strings.TrimLeft(line, "-*• ")))
		}
	}
	return experience
}
