// Package match computes fit scores between user profiles and job postings.
package match

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/vantahq/jobscout/domain/profile"
)

// Factor names reported in Computation.Factors.
const (
	FactorSkillOverlap       = "skill_overlap"
	FactorSemanticSimilarity = "semantic_similarity"
	FactorRemoteMatch        = "remote_match"
	FactorLocationMatch      = "location_match"
	FactorTitleSimilarity    = "title_similarity"
)

// stopwords are dropped from bag-of-words vectors before comparison.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "for": {}, "in": {},
	"of": {}, "on": {}, "the": {}, "to": {}, "with": {},
}

var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// PostingView is the pre-resolved posting data the scorer reads.
// Callers join the company name in before scoring; the scorer itself
// performs no lookups.
type PostingView struct {
	Title       string
	CompanyName string
	Location    string
	Remote      bool
	Tags        []string
	Description string
}

// Computation is the result of scoring one posting against one profile.
type Computation struct {
	score   int
	factors map[string]float64
	reasons []string
}

// Score returns the total fit score in [0, 100].
func (c Computation) Score() int { return c.score }

// Factors returns a copy of the named sub-score ratios.
func (c Computation) Factors() map[string]float64 {
	result := make(map[string]float64, len(c.factors))
	for k, v := range c.factors {
		result[k] = v
	}
	return result
}

// Reasons returns the human-readable match reasons in factor order.
func (c Computation) Reasons() []string {
	result := make([]string, len(c.reasons))
	copy(result, c.reasons)
	return result
}

// Rationale joins the first n reasons into a short display string.
func (c Computation) Rationale(n int) string {
	if len(c.reasons) == 0 {
		return ""
	}
	if n > len(c.reasons) {
		n = len(c.reasons)
	}
	return strings.Join(c.reasons[:n], " • ")
}

// Score computes the fit between a profile and a posting. A nil profile
// is scored with neutral baselines. The result is deterministic and the
// total is clamped into [0, 100].
func Score(p *profile.Profile, v PostingView) Computation {
	factors := make(map[string]float64, 5)
	var reasons []string
	total := 0

	add := func(score int, name string, ratio float64, reason string) {
		total += score
		factors[name] = ratio
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	add(skillScore(p, v))
	add(semanticScore(p, v))
	add(remoteScore(p, v))
	add(locationScore(p, v))
	add(titleScore(p, v))

	return Computation{score: clamp(total), factors: factors, reasons: reasons}
}

// skillScore rewards overlap between profile skills and posting tags.
// Either side empty contributes the flat 20-point baseline.
func skillScore(p *profile.Profile, v PostingView) (int, string, float64, string) {
	var skills []string
	if p != nil {
		skills = p.Skills()
	}
	profileSkills := normalizeSet(skills)
	postingTags := normalizeSet(v.Tags)

	if len(profileSkills) == 0 || len(postingTags) == 0 {
		return 20, FactorSkillOverlap, 0.0, ""
	}

	overlap := intersect(profileSkills, postingTags)
	ratio := float64(len(overlap)) / float64(len(profileSkills))

	var reason string
	if len(overlap) > 0 {
		top := sortedValues(overlap)
		if len(top) > 5 {
			top = top[:5]
		}
		reason = "Shares skills: " + strings.Join(top, ", ")
	}
	return int(20 + ratio*60), FactorSkillOverlap, ratio, reason
}

// semanticScore compares bag-of-words vectors built from the profile text
// and the posting text using cosine similarity.
func semanticScore(p *profile.Profile, v PostingView) (int, string, float64, string) {
	similarity := cosine(profileVector(p), postingVector(v))

	var reason string
	if similarity >= 0.2 {
		reason = "Title and summary resemble the job description"
	}
	return int(similarity * 30), FactorSemanticSimilarity, similarity, reason
}

// remoteScore never penalizes users who do not prefer remote work.
func remoteScore(p *profile.Profile, v PostingView) (int, string, float64, string) {
	if p == nil {
		return 10, FactorRemoteMatch, 0.0, ""
	}
	if p.PrefersRemote() && v.Remote {
		return 15, FactorRemoteMatch, 1.0, "Remote role matches preference"
	}
	if !p.PrefersRemote() {
		return 15, FactorRemoteMatch, 0.5, ""
	}
	return 5, FactorRemoteMatch, 0.0, ""
}

func locationScore(p *profile.Profile, v PostingView) (int, string, float64, string) {
	if p == nil || len(p.Locations()) == 0 {
		return 10, FactorLocationMatch, 0.0, ""
	}

	profileLocations := normalizeSet(p.Locations())
	var postingLocations map[string]struct{}
	if v.Location != "" {
		postingLocations = normalizeSet([]string{v.Location})
	}

	overlap := intersect(profileLocations, postingLocations)
	if len(overlap) > 0 {
		reason := "Location match: " + strings.Join(sortedValues(overlap), ", ")
		return 15, FactorLocationMatch, 1.0, reason
	}
	return 8, FactorLocationMatch, 0.0, ""
}

// titleScore compares whitespace tokens of the headline against the
// posting title, normalized by the posting title length.
func titleScore(p *profile.Profile, v PostingView) (int, string, float64, string) {
	if p == nil || p.Headline() == "" {
		return 10, FactorTitleSimilarity, 0.0, ""
	}

	headlineTokens := fieldsSet(strings.ToLower(p.Headline()))
	postingTokens := strings.Fields(strings.ToLower(v.Title))

	overlap := 0
	seen := make(map[string]struct{}, len(postingTokens))
	for _, token := range postingTokens {
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if _, ok := headlineTokens[token]; ok {
			overlap++
		}
	}

	ratio := float64(overlap) / math.Max(float64(len(postingTokens)), 1)

	var reason string
	if ratio >= 0.3 {
		reason = "Similar title to your profile headline"
	}
	return int(10 + ratio*20), FactorTitleSimilarity, ratio, reason
}

func profileVector(p *profile.Profile) map[string]int {
	if p == nil {
		return nil
	}
	var tokens []string
	tokens = append(tokens, tokenize(p.Headline())...)
	tokens = append(tokens, tokenize(p.Summary())...)
	tokens = append(tokens, tokenize(strings.Join(p.Skills(), " "))...)
	tokens = append(tokens, tokenize(strings.Join(p.Locations(), " "))...)
	return vectorize(tokens)
}

func postingVector(v PostingView) map[string]int {
	var tokens []string
	tokens = append(tokens, tokenize(v.Title)...)
	tokens = append(tokens, tokenize(v.CompanyName)...)
	tokens = append(tokens, tokenize(strings.Join(v.Tags, " "))...)
	tokens = append(tokens, tokenize(v.Description)...)
	tokens = append(tokens, tokenize(v.Location)...)
	return vectorize(tokens)
}

// tokenize lowercases, splits on alphanumeric runs, and drops stopwords.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, token := range raw {
		if _, stop := stopwords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

func vectorize(tokens []string) map[string]int {
	if len(tokens) == 0 {
		return nil
	}
	vec := make(map[string]int, len(tokens))
	for _, token := range tokens {
		vec[token]++
	}
	return vec
}

func cosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	dot := 0
	for token, count := range a {
		if other, ok := b[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0.0
	}

	normA := 0
	for _, count := range a {
		normA += count * count
	}
	normB := 0
	for _, count := range b {
		normB += count * count
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return float64(dot) / (math.Sqrt(float64(normA)) * math.Sqrt(float64(normB)))
}

// normalizeSet trims, lowercases, and dedups a value list.
func normalizeSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	result := make(map[string]struct{}, len(values))
	for _, value := range values {
		cleaned := strings.ToLower(strings.TrimSpace(value))
		if cleaned != "" {
			result[cleaned] = struct{}{}
		}
	}
	return result
}

func fieldsSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	result := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		result[f] = struct{}{}
	}
	return result
}

func intersect(a, b map[string]struct{}) map[string]struct{} {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	result := make(map[string]struct{})
	for value := range a {
		if _, ok := b[value]; ok {
			result[value] = struct{}{}
		}
	}
	return result
}

func sortedValues(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	sort.Strings(values)
	return values
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
