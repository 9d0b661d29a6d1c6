package service

import (
	"strings"

	"github.com/concho-nutrition/storefront/internal/constants"
)

// categoryRule maps vendor category text onto the storefront taxonomy.
// Rules evaluate top to bottom; the first match wins.
type categoryRule struct {
	keywords []string
	target   string
}

// categoryRules is ordered: more specific keyword sets come before
// broader ones so "pre workout" never falls through to protein.
var categoryRules = []categoryRule{
	{keywords: []string{"pre-workout", "pre workout", "preworkout", "energy", "pump"}, target: constants.CategoryPreWorkout},
	{keywords: []string{"protein", "whey", "casein", "mass gainer", "isolate"}, target: constants.CategoryProtein},
	{keywords: []string{"vitamin", "multivitamin", "mineral", "fish oil", "omega"}, target: constants.CategoryVitamins},
	{keywords: []string{"recovery", "bcaa", "eaa", "amino", "creatine", "glutamine"}, target: constants.CategoryRecovery},
	{keywords: []string{"wellness", "health", "sleep", "greens", "probiotic", "collagen"}, target: constants.CategoryWellness},
	{keywords: []string{"shaker", "bottle", "apparel", "accessor", "gear"}, target: constants.CategoryAccessories},
}

// StandardizeCategory maps a vendor category name (with the product
// title as a secondary signal) to a taxonomy slug. Unmatched input
// lands in the catch-all category.
func StandardizeCategory(vendorCategory, title string) string {
	haystacks := []string{
		strings.ToLower(strings.TrimSpace(vendorCategory)),
		strings.ToLower(strings.TrimSpace(title)),
	}
	for _, rule := range categoryRules {
		for _, haystack := range haystacks {
			if haystack == "" {
				continue
			}
			for _, keyword := range rule.keywords {
				if strings.Contains(haystack, keyword) {
					return rule.target
				}
			}
		}
	}
	return constants.CategoryOther
}

// CategoryDisplayName returns the storefront name for a taxonomy slug.
func CategoryDisplayName(slug string) string {
	switch slug {
	case constants.CategoryProtein:
		return "Protein"
	case constants.CategoryPreWorkout:
		return "Pre-Workout"
	case constants.CategoryVitamins:
		return "Vitamins & Minerals"
	case constants.CategoryWellness:
		return "Wellness"
	case constants.CategoryRecovery:
		return "Recovery"
	case constants.CategoryAccessories:
		return "Accessories"
	default:
		return "Other"
	}
}

// TaxonomySlugs lists the taxonomy in display order.
func TaxonomySlugs() []string {
	return []string{
		constants.CategoryProtein,
		constants.CategoryPreWorkout,
		constants.CategoryVitamins,
		constants.CategoryRecovery,
		constants.CategoryWellness,
		constants.CategoryAccessories,
		constants.CategoryOther,
	}
}
