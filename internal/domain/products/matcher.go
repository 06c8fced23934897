package products

import (
	"fmt"
	"sort"
	"strings"
)

const (
	brandExactScore     = 50
	brandPartialScore   = 30
	nameExactScore      = 50
	namePartialScore    = 25
	wordOverlapScore    = 5
	categoryScore       = 10
	regionPenalty       = 30
	credibleMatchScore  = 20
	synthesizedScore    = 72
	maxMatchScore       = 98
	baseAcceptedScore   = 70
	concernOverlapScore = 8
	minTokenLength      = 3
)

// ScoreCandidate scores how well a catalog product fulfils rec. region may be
// empty to disable the availability penalty.
func ScoreCandidate(rec AIRecommendation, candidate CatalogProduct, region string) int {
	score := 0

	aiBrand := normalize(rec.BrandName)
	brand := normalize(candidate.Brand)
	switch {
	case aiBrand != "" && aiBrand == brand:
		score += brandExactScore
	case aiBrand != "" && brand != "" && (strings.Contains(aiBrand, brand) || strings.Contains(brand, aiBrand)):
		score += brandPartialScore
	}

	aiName := normalize(rec.ProductName)
	name := normalize(candidate.Name)
	switch {
	case aiName != "" && aiName == name:
		score += nameExactScore
	case aiName != "" && name != "" && (strings.Contains(aiName, name) || strings.Contains(name, aiName)):
		score += namePartialScore
	}

	score += wordOverlapScore * wordOverlap(aiName, name)

	if rec.Category == candidate.Category {
		score += categoryScore
	}
	if region != "" && !candidate.AvailableIn(region) {
		score -= regionPenalty
	}
	return score
}

// MatchRecommendation picks the catalog product for rec. The highest score wins
// and ties go to the product that appears first in the catalog. Below the
// credibility threshold it falls back to the first product of the requested
// category, preferring one available in region. ok is false only when the
// catalog has no product in that category.
func MatchRecommendation(rec AIRecommendation, catalog *Catalog, region string) (CatalogProduct, MatchKind, bool) {
	var (
		best      CatalogProduct
		bestScore int
		found     bool
	)
	catalog.each(func(p CatalogProduct) bool {
		score := ScoreCandidate(rec, p, region)
		if !found || score > bestScore {
			best, bestScore, found = p, score, true
		}
		return true
	})
	if found && bestScore >= credibleMatchScore {
		return cloneProduct(best), MatchKindMatched, true
	}

	fallback, ok := firstInCategory(catalog, rec.Category, region)
	if !ok {
		return CatalogProduct{}, "", false
	}
	return fallback, MatchKindFallback, true
}

// AcceptedScore is the final match score for a recommendation the AI made.
func AcceptedScore(rec AIRecommendation, userConcerns []string) int {
	priorityBonus := 0
	if rec.PriorityOrder >= 1 && rec.PriorityOrder < 5 {
		priorityBonus = 10 - 2*rec.PriorityOrder
	}
	score := baseAcceptedScore + concernOverlapScore*len(overlap(rec.ConcernsAddressed, userConcerns)) + priorityBonus
	if score > maxMatchScore {
		score = maxMatchScore
	}
	return score
}

// Personalize resolves every recommendation against the catalog and fills in
// any required category the AI skipped. Accepted products come first ordered
// by priority, followed by synthesized entries in RequiredCategories order.
func Personalize(recs []AIRecommendation, catalog *Catalog, profile Profile, region string) []PersonalizedProduct {
	ordered := append([]AIRecommendation(nil), recs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PriorityOrder < ordered[j].PriorityOrder
	})

	out := make([]PersonalizedProduct, 0, len(ordered)+len(RequiredCategories))
	used := make(map[string]struct{})
	covered := make(map[Category]struct{})
	lastPriority := 0
	for _, rec := range ordered {
		product, kind, ok := MatchRecommendation(rec, catalog, region)
		if !ok {
			continue
		}
		if _, dup := used[product.ID]; dup {
			continue
		}
		used[product.ID] = struct{}{}
		covered[product.Category] = struct{}{}
		if rec.PriorityOrder > lastPriority {
			lastPriority = rec.PriorityOrder
		}
		out = append(out, PersonalizedProduct{
			CatalogProduct: product,
			AIInsight:      rec,
			MatchScore:     AcceptedScore(rec, profile.Concerns),
			MatchKind:      kind,
		})
	}

	for _, category := range RequiredCategories {
		if _, ok := covered[category]; ok {
			continue
		}
		product, ok := synthesizeFor(catalog, category, profile.Concerns, region, used)
		if !ok {
			continue
		}
		used[product.ID] = struct{}{}
		lastPriority++
		out = append(out, PersonalizedProduct{
			CatalogProduct: product,
			AIInsight:      synthesizedInsight(product, profile, lastPriority),
			MatchScore:     synthesizedScore,
			MatchKind:      MatchKindSynthesized,
		})
	}
	return out
}

func synthesizeFor(catalog *Catalog, category Category, concerns []string, region string, used map[string]struct{}) (CatalogProduct, bool) {
	var candidates, regional []CatalogProduct
	catalog.each(func(p CatalogProduct) bool {
		if p.Category != category {
			return true
		}
		if _, taken := used[p.ID]; taken {
			return true
		}
		candidates = append(candidates, p)
		if region != "" && p.AvailableIn(region) {
			regional = append(regional, p)
		}
		return true
	})
	if len(regional) > 0 {
		candidates = regional
	}
	if len(candidates) == 0 {
		return CatalogProduct{}, false
	}
	best, bestOverlap := candidates[0], len(overlap(candidates[0].Concerns, concerns))
	for _, p := range candidates[1:] {
		if n := len(overlap(p.Concerns, concerns)); n > bestOverlap {
			best, bestOverlap = p, n
		}
	}
	return cloneProduct(best), true
}

func synthesizedInsight(product CatalogProduct, profile Profile, priority int) AIRecommendation {
	addressed := overlap(product.Concerns, profile.Concerns)
	why := make([]string, 0, maxWhyForYou)
	for _, concern := range addressed {
		if len(why) == maxWhyForYou {
			break
		}
		why = append(why, fmt.Sprintf("Targets %s", concern))
	}
	if len(why) == 0 {
		why = append(why, fmt.Sprintf("Covers the %s step of a complete routine", categoryLabel(product.Category)))
	}
	return AIRecommendation{
		Category:          product.Category,
		ProductName:       product.Name,
		BrandName:         product.Brand,
		PersonalReason:    fmt.Sprintf("Every routine needs a %s; this one fits your profile from our catalog.", categoryLabel(product.Category)),
		WhyForYou:         why,
		SkinTypeMatch:     profile.SkinType,
		ConcernsAddressed: addressed,
		PriorityOrder:     priority,
		UsageTip:          usageTips[product.Category],
	}
}

var usageTips = map[Category]string{
	CategoryCleansers:    "Use morning and evening on damp skin, then rinse with lukewarm water.",
	CategorySerums:       "Apply a few drops after cleansing and before moisturizer.",
	CategoryMoisturizers: "Apply while skin is still slightly damp to lock in hydration.",
	CategorySunscreens:   "Apply generously as the last morning step and reapply every two hours outdoors.",
}

func categoryLabel(c Category) string {
	label := strings.TrimSuffix(string(c), "s")
	return strings.ReplaceAll(label, "_", " ")
}

func firstInCategory(catalog *Catalog, category Category, region string) (CatalogProduct, bool) {
	var first, regional *CatalogProduct
	catalog.each(func(p CatalogProduct) bool {
		if p.Category != category {
			return true
		}
		if first == nil {
			p := p
			first = &p
		}
		if region == "" || p.AvailableIn(region) {
			p := p
			regional = &p
			return false
		}
		return true
	})
	switch {
	case regional != nil:
		return cloneProduct(*regional), true
	case first != nil:
		return cloneProduct(*first), true
	default:
		return CatalogProduct{}, false
	}
}

// wordOverlap counts tokens of a that share a substring relation with any
// token of b. Each token of a counts at most once.
func wordOverlap(a, b string) int {
	bTokens := tokens(b)
	count := 0
	for _, at := range tokens(a) {
		for _, bt := range bTokens {
			if strings.Contains(at, bt) || strings.Contains(bt, at) {
				count++
				break
			}
		}
	}
	return count
}

func tokens(s string) []string {
	var out []string
	for _, field := range strings.Fields(s) {
		if len([]rune(field)) < minTokenLength {
			continue
		}
		out = append(out, field)
	}
	return out
}

// overlap returns the entries of a that appear in b, case-insensitively, in a's order.
func overlap(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[normalize(v)] = struct{}{}
	}
	var out []string
	seen := make(map[string]struct{})
	for _, v := range a {
		key := normalize(v)
		if _, ok := set[key]; !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, strings.TrimSpace(v))
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
