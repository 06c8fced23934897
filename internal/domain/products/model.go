package products

import (
	"strings"
	"time"

	"github.com/yanqian/skinsight/pkg/metrics"
)

// Config controls the product recommendation service.
type Config struct {
	Model         string
	Temperature   float32
	Prompt        string
	RegionDefault string
	CacheTTL      time.Duration
	AITimeout     time.Duration
	AIEnabled     bool
}

// Category is the routine step a product belongs to.
type Category string

const (
	CategoryCleansers    Category = "cleansers"
	CategoryToners       Category = "toners"
	CategorySerums       Category = "serums"
	CategoryTreatments   Category = "treatments"
	CategoryMoisturizers Category = "moisturizers"
	CategorySunscreens   Category = "sunscreens"
	CategoryExfoliants   Category = "exfoliants"
	CategoryMasks        Category = "masks"
	CategoryEyeCare      Category = "eye_care"
)

var knownCategories = map[Category]struct{}{
	CategoryCleansers:    {},
	CategoryToners:       {},
	CategorySerums:       {},
	CategoryTreatments:   {},
	CategoryMoisturizers: {},
	CategorySunscreens:   {},
	CategoryExfoliants:   {},
	CategoryMasks:        {},
	CategoryEyeCare:      {},
}

// RequiredCategories must appear in every personalized list, in this order.
var RequiredCategories = []Category{CategoryCleansers, CategorySerums, CategoryMoisturizers, CategorySunscreens}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

// RegionalAvailability flags whether a product is sold in a country.
type RegionalAvailability struct {
	CountryCode string `json:"countryCode" yaml:"countryCode"`
	Available   bool   `json:"available" yaml:"available"`
}

// CatalogProduct is read-only reference data.
type CatalogProduct struct {
	ID                   string                 `json:"id" yaml:"id"`
	Brand                string                 `json:"brand" yaml:"brand"`
	Name                 string                 `json:"name" yaml:"name"`
	Category             Category               `json:"category" yaml:"category"`
	KeyIngredients       []string               `json:"keyIngredients" yaml:"keyIngredients"`
	Concerns             []string               `json:"concerns" yaml:"concerns"`
	RegionalAvailability []RegionalAvailability `json:"regionalAvailability" yaml:"regionalAvailability"`
}

// AvailableIn reports whether the product has an available entry for region.
func (p CatalogProduct) AvailableIn(region string) bool {
	for _, r := range p.RegionalAvailability {
		if r.Available && strings.EqualFold(r.CountryCode, region) {
			return true
		}
	}
	return false
}

// AIRecommendation is a validated product suggestion from the generation service.
type AIRecommendation struct {
	Category          Category `json:"category"`
	ProductName       string   `json:"productName"`
	BrandName         string   `json:"brandName"`
	PersonalReason    string   `json:"personalReason"`
	WhyForYou         []string `json:"whyForYou"`
	SkinTypeMatch     string   `json:"skinTypeMatch,omitempty"`
	ConcernsAddressed []string `json:"concernsAddressed"`
	PriorityOrder     int      `json:"priorityOrder"`
	UsageTip          string   `json:"usageTip,omitempty"`
}

// MatchKind records how a catalog product was chosen.
type MatchKind string

const (
	MatchKindMatched     MatchKind = "matched"
	MatchKindFallback    MatchKind = "fallback"
	MatchKindSynthesized MatchKind = "synthesized"
)

// PersonalizedProduct pairs a catalog product with the reasoning for it.
type PersonalizedProduct struct {
	CatalogProduct CatalogProduct   `json:"catalogProduct"`
	AIInsight      AIRecommendation `json:"aiInsight"`
	MatchScore     int              `json:"matchScore"`
	MatchKind      MatchKind        `json:"matchKind"`
}

// Profile describes the user the recommendations are for.
type Profile struct {
	SkinType    string   `json:"skinType"`
	Concerns    []string `json:"concerns"`
	Sensitivity string   `json:"sensitivity,omitempty"`
	Goals       []string `json:"goals,omitempty"`
	AgeRange    string   `json:"ageRange,omitempty"`
}

// AIStatus explains whether AI suggestions fed the result.
type AIStatus string

const (
	AIStatusOK           AIStatus = "ok"
	AIStatusCached       AIStatus = "cached"
	AIStatusFailed       AIStatus = "failed"
	AIStatusUnconfigured AIStatus = "unconfigured"
	AIStatusRateLimited  AIStatus = "rate_limited"
	AIStatusDisabled     AIStatus = "disabled"
)

// Request asks for a personalized routine.
type Request struct {
	UserID  string  `json:"userId,omitempty"`
	Profile Profile `json:"profile"`
	Region  string  `json:"region,omitempty"`
}

// Response is the complete personalized list.
type Response struct {
	Products   []PersonalizedProduct `json:"products"`
	Region     string                `json:"region,omitempty"`
	AIStatus   AIStatus              `json:"aiStatus"`
	TokenUsage *metrics.TokenUsage   `json:"tokenUsage,omitempty"`
}

// MatchRequest resolves a single recommendation against the catalog.
type MatchRequest struct {
	Recommendation AIRecommendation `json:"recommendation"`
	Region         string           `json:"region,omitempty"`
	Concerns       []string         `json:"concerns,omitempty"`
}

// CatalogQuery filters the catalog listing.
type CatalogQuery struct {
	Category Category
	Region   string
}
