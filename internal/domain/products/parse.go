package products

import (
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/yanqian/skinsight/pkg/util"
)

const (
	maxWhyForYou     = 3
	maxPriorityOrder = 100
)

// ParseError reports why an AI response was rejected. Index is the offending
// element, or -1 when the document itself is unusable.
type ParseError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ParseError) Error() string {
	switch {
	case e.Index < 0:
		return "ai recommendations: " + e.Reason
	case e.Field == "":
		return fmt.Sprintf("ai recommendation %d: %s", e.Index, e.Reason)
	default:
		return fmt.Sprintf("ai recommendation %d: %s %s", e.Index, e.Field, e.Reason)
	}
}

// ParseRecommendations validates an AI response against the recommendation
// schema. The response is a JSON array, or an object holding the array under
// "recommendations". Any invalid element rejects the whole response so callers
// never see partially shaped data; the returned error is always *ParseError.
func ParseRecommendations(raw string) ([]AIRecommendation, error) {
	body := util.StripCodeFences(raw)
	if body == "" {
		return nil, &ParseError{Index: -1, Reason: "response is empty"}
	}
	if !gjson.Valid(body) {
		return nil, &ParseError{Index: -1, Reason: "response is not valid JSON"}
	}
	root := gjson.Parse(body)
	list := root
	if root.IsObject() {
		list = root.Get("recommendations")
	}
	if !list.IsArray() {
		return nil, &ParseError{Index: -1, Reason: "recommendations array missing"}
	}
	items := list.Array()
	if len(items) == 0 {
		return nil, &ParseError{Index: -1, Reason: "recommendations array is empty"}
	}
	out := make([]AIRecommendation, 0, len(items))
	for i, item := range items {
		rec, err := parseRecommendation(i, item)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// ValidateRecommendation applies the same schema rules to an already decoded
// recommendation.
func ValidateRecommendation(rec AIRecommendation) (AIRecommendation, error) {
	fail := func(field, reason string) error {
		return &ParseError{Index: 0, Field: field, Reason: reason}
	}
	rec.Category = Category(strings.ToLower(strings.TrimSpace(string(rec.Category))))
	if !rec.Category.Valid() {
		return AIRecommendation{}, fail("category", "is not a known category")
	}
	rec.ProductName = strings.TrimSpace(rec.ProductName)
	if rec.ProductName == "" {
		return AIRecommendation{}, fail("productName", "is required")
	}
	rec.BrandName = strings.TrimSpace(rec.BrandName)
	if rec.BrandName == "" {
		return AIRecommendation{}, fail("brandName", "is required")
	}
	rec.WhyForYou = util.NormalizeList(rec.WhyForYou)
	if len(rec.WhyForYou) == 0 {
		return AIRecommendation{}, fail("whyForYou", "needs at least one entry")
	}
	if len(rec.WhyForYou) > maxWhyForYou {
		rec.WhyForYou = rec.WhyForYou[:maxWhyForYou]
	}
	if rec.PriorityOrder < 1 {
		return AIRecommendation{}, fail("priorityOrder", "must be a positive integer")
	}
	if rec.PriorityOrder > maxPriorityOrder {
		return AIRecommendation{}, fail("priorityOrder", fmt.Sprintf("must not exceed %d", maxPriorityOrder))
	}
	rec.PersonalReason = strings.TrimSpace(rec.PersonalReason)
	rec.SkinTypeMatch = strings.TrimSpace(rec.SkinTypeMatch)
	rec.UsageTip = strings.TrimSpace(rec.UsageTip)
	rec.ConcernsAddressed = util.NormalizeList(rec.ConcernsAddressed)
	return rec, nil
}

func parseRecommendation(index int, item gjson.Result) (AIRecommendation, error) {
	fail := func(field, reason string) (AIRecommendation, error) {
		return AIRecommendation{}, &ParseError{Index: index, Field: field, Reason: reason}
	}
	if !item.IsObject() {
		return fail("", "is not an object")
	}

	var (
		rec      AIRecommendation
		category string
		err      error
	)
	fields := []struct {
		name     string
		required bool
		dst      *string
	}{
		{name: "category", required: true, dst: &category},
		{name: "productName", required: true, dst: &rec.ProductName},
		{name: "brandName", required: true, dst: &rec.BrandName},
		{name: "personalReason", dst: &rec.PersonalReason},
		{name: "skinTypeMatch", dst: &rec.SkinTypeMatch},
		{name: "usageTip", dst: &rec.UsageTip},
	}
	for _, f := range fields {
		value := item.Get(f.name)
		if !value.Exists() || value.Type == gjson.Null {
			if f.required {
				return fail(f.name, "is required")
			}
			continue
		}
		if value.Type != gjson.String {
			return fail(f.name, "must be a string")
		}
		*f.dst = value.Str
	}
	rec.Category = Category(category)

	if rec.WhyForYou, err = stringList(item.Get("whyForYou")); err != nil {
		return fail("whyForYou", err.Error())
	}
	if rec.ConcernsAddressed, err = stringList(item.Get("concernsAddressed")); err != nil {
		return fail("concernsAddressed", err.Error())
	}

	priority := item.Get("priorityOrder")
	if priority.Type != gjson.Number {
		return fail("priorityOrder", "must be a number")
	}
	if priority.Num != math.Trunc(priority.Num) {
		return fail("priorityOrder", "must be an integer")
	}
	if priority.Num > maxPriorityOrder {
		return fail("priorityOrder", fmt.Sprintf("must not exceed %d", maxPriorityOrder))
	}
	rec.PriorityOrder = int(priority.Num)

	validated, err := ValidateRecommendation(rec)
	if err != nil {
		pe := err.(*ParseError)
		pe.Index = index
		return AIRecommendation{}, pe
	}
	return validated, nil
}

func stringList(value gjson.Result) ([]string, error) {
	if !value.Exists() || value.Type == gjson.Null {
		return nil, nil
	}
	if !value.IsArray() {
		return nil, fmt.Errorf("must be an array of strings")
	}
	var out []string
	for _, item := range value.Array() {
		if item.Type != gjson.String {
			return nil, fmt.Errorf("must contain only strings")
		}
		out = append(out, item.Str)
	}
	return out, nil
}
