package weekly

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/yanqian/skinsight/pkg/util"
)

type aiAdvice struct {
	Insights        []string
	Recommendations []string
}

func parseAdvice(raw string) (aiAdvice, error) {
	body := util.StripCodeFences(raw)
	if !gjson.Valid(body) {
		return aiAdvice{}, errors.New("advice is not valid JSON")
	}
	root := gjson.Parse(body)
	if !root.IsObject() {
		return aiAdvice{}, errors.New("advice must be a JSON object")
	}
	insights, err := coerceStringArray(root.Get("insights"))
	if err != nil {
		return aiAdvice{}, fmt.Errorf("insights: %w", err)
	}
	recs, err := coerceStringArray(root.Get("recommendations"))
	if err != nil {
		return aiAdvice{}, fmt.Errorf("recommendations: %w", err)
	}
	advice := aiAdvice{
		Insights:        util.NormalizeList(insights),
		Recommendations: util.NormalizeList(recs),
	}
	if len(advice.Insights) == 0 && len(advice.Recommendations) == 0 {
		return aiAdvice{}, errors.New("advice is empty")
	}
	return advice, nil
}

func coerceStringArray(value gjson.Result) ([]string, error) {
	switch {
	case !value.Exists() || value.Type == gjson.Null:
		return nil, nil
	case value.Type == gjson.String:
		return []string{value.Str}, nil
	case value.IsArray():
		var out []string
		var bad error
		value.ForEach(func(_, item gjson.Result) bool {
			if item.Type != gjson.String {
				bad = fmt.Errorf("unexpected %s element", item.Type)
				return false
			}
			out = append(out, item.Str)
			return true
		})
		return out, bad
	default:
		return nil, fmt.Errorf("unsupported %s value", value.Type)
	}
}
