package generation

import (
	"math/rand"
	"regexp"
	"strings"
)

// promptCategories maps object categories to their trigger keywords.
// Checked in order; the first category with a keyword hit wins.
var promptCategories = []struct {
	name     string
	keywords []string
}{
	{"weapon", []string{"sword", "knife", "gun", "blade", "axe", "spear", "bow", "rifle", "pistol"}},
	{"vehicle", []string{"car", "truck", "bike", "motorcycle", "plane", "boat", "ship", "aircraft"}},
	{"furniture", []string{"chair", "table", "desk", "bed", "sofa", "cabinet", "shelf", "stool"}},
	{"creature", []string{"dragon", "monster", "animal", "beast", "bird", "fish", "cat", "dog"}},
	{"architecture", []string{"building", "house", "tower", "castle", "bridge", "pillar", "arch"}},
	{"tool", []string{"hammer", "wrench", "screwdriver", "drill", "saw", "pliers", "key"}},
	{"jewelry", []string{"ring", "necklace", "crown", "bracelet", "earring", "pendant"}},
	{"food", []string{"apple", "cake", "bread", "pizza", "burger", "fruit", "vegetable"}},
	{"nature", []string{"tree", "flower", "rock", "mountain", "crystal", "gem", "stone"}},
	{"electronic", []string{"phone", "computer", "robot", "device", "gadget", "machine"}},
}

// categoryTerms are the descriptive phrases appended per category.
var categoryTerms = map[string][]string{
	"weapon": {
		"sharp detailed blade geometry",
		"realistic proportions and weight distribution",
		"defined edge topology",
		"functional grip design",
	},
	"vehicle": {
		"aerodynamic body design",
		"realistic wheels and mechanical details",
		"proper scale and proportions",
		"functional automotive features",
	},
	"furniture": {
		"ergonomic proportions",
		"realistic wood grain texture",
		"proper joint construction",
		"functional design elements",
	},
	"creature": {
		"organic anatomical structure",
		"natural pose and proportions",
		"detailed surface features",
		"lifelike characteristics",
	},
	"architecture": {
		"structural engineering accuracy",
		"realistic material textures",
		"proper architectural proportions",
		"detailed construction elements",
	},
	"tool": {
		"functional mechanical design",
		"ergonomic handle construction",
		"realistic material properties",
		"proper tool proportions",
	},
	"jewelry": {
		"intricate decorative details",
		"precious metal finish",
		"refined craftsmanship",
		"elegant proportions",
	},
	"food": {
		"realistic organic texture",
		"natural color variation",
		"appetizing appearance",
		"proper food proportions",
	},
	"nature": {
		"organic natural forms",
		"realistic surface textures",
		"natural color patterns",
		"environmentally appropriate",
	},
	"electronic": {
		"sleek modern design",
		"functional button placement",
		"technological appearance",
		"precise geometric forms",
	},
	"generic": {
		"well-defined geometry",
		"realistic proportions",
		"detailed surface features",
		"clean topology",
	},
}

var techSpecs = []string{
	"high-quality 3D mesh",
	"clean topology",
	"well-defined vertices",
	"optimized polygon count",
	"manifold geometry",
	"proper UV mapping ready",
	"game-asset quality",
}

var qualityTerms = []string{
	"highly detailed",
	"professional quality",
	"studio-grade model",
	"production-ready asset",
	"crisp clean design",
	"precise manufacturing",
	"expert craftsmanship",
}

var styleTerms = []string{
	"realistic rendering",
	"contemporary design",
	"modern aesthetic",
	"sleek appearance",
	"refined details",
	"sophisticated finish",
}

// DetectCategory classifies a prompt by its object keywords, returning
// "generic" when nothing matches.
func DetectCategory(prompt string) string {
	lower := strings.ToLower(prompt)
	for _, cat := range promptCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.name
			}
		}
	}
	return "generic"
}

// EnhancePrompt expands a bare prompt with category-specific phrases,
// technical mesh terms and quality/style modifiers before submission.
func EnhancePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)

	terms := categoryTerms[DetectCategory(prompt)]
	parts := []string{prompt}
	parts = append(parts, pickTwo(terms)...)
	parts = append(parts, pickTwo(techSpecs)...)
	parts = append(parts, qualityTerms[rand.Intn(len(qualityTerms))])
	parts = append(parts, styleTerms[rand.Intn(len(styleTerms))])
	parts = append(parts, "3D model")

	return strings.Join(parts, ", ")
}

// pickTwo selects two distinct entries at random.
func pickTwo(terms []string) []string {
	perm := rand.Perm(len(terms))
	return []string{terms[perm[0]], terms[perm[1]]}
}

var safeNameRE = regexp.MustCompile(`[^a-z0-9]`)

// SafeName derives a filesystem-safe base name from a prompt: the first
// three words, lowercased and stripped of punctuation, joined with
// underscores and capped at 20 characters. Falls back to "model".
func SafeName(prompt string) string {
	words := strings.Fields(strings.ToLower(prompt))
	if len(words) > 3 {
		words = words[:3]
	}

	var safe []string
	for _, w := range words {
		if clean := safeNameRE.ReplaceAllString(w, ""); clean != "" {
			safe = append(safe, clean)
		}
	}

	name := strings.Join(safe, "_")
	if name == "" {
		name = "model"
	}
	if len(name) > 20 {
		name = name[:20]
	}
	return name
}
