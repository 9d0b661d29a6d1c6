package service

import (
	"testing"

	"github.com/concho-nutrition/storefront/internal/constants"
)

func TestStandardizeCategoryRules(t *testing.T) {
	cases := []struct {
		vendor string
		title  string
		want   string
	}{
		{"Whey Protein Powders", "", constants.CategoryProtein},
		{"", "Grass-Fed Whey Isolate", constants.CategoryProtein},
		{"Pre-Workout & Energy", "", constants.CategoryPreWorkout},
		{"", "Nitro Pump Preworkout", constants.CategoryPreWorkout},
		{"Daily Multivitamins", "", constants.CategoryVitamins},
		{"", "Omega-3 Fish Oil Softgels", constants.CategoryVitamins},
		{"BCAA Recovery Blends", "", constants.CategoryRecovery},
		{"", "Micronized Creatine Monohydrate", constants.CategoryRecovery},
		{"Sleep & Wellness", "", constants.CategoryWellness},
		{"", "Collagen Peptides", constants.CategoryWellness},
		{"Shaker Bottles", "", constants.CategoryAccessories},
		{"Gym Gear", "", constants.CategoryAccessories},
		{"Misc", "Gift Card", constants.CategoryOther},
		{"", "", constants.CategoryOther},
	}
	for _, tc := range cases {
		if got := StandardizeCategory(tc.vendor, tc.title); got != tc.want {
			t.Fatalf("vendor %q title %q want %s got %s", tc.vendor, tc.title, tc.want, got)
		}
	}
}

func TestStandardizeCategorySpecificBeatsBroad(t *testing.T) {
	// "pre workout" must win even when the text also mentions protein.
	got := StandardizeCategory("Protein Pre-Workout Stack", "")
	if got != constants.CategoryPreWorkout {
		t.Fatalf("specific rule must win, got %s", got)
	}
}

func TestTaxonomyCoversEveryRuleTarget(t *testing.T) {
	slugs := map[string]bool{}
	for _, slug := range TaxonomySlugs() {
		slugs[slug] = true
	}
	for _, rule := range categoryRules {
		if !slugs[rule.target] {
			t.Fatalf("rule target %s missing from taxonomy", rule.target)
		}
	}
	if !slugs[constants.CategoryOther] {
		t.Fatalf("taxonomy must include the catch-all category")
	}
}
