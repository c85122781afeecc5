package service

import (
	"strings"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

// Query holds the recognised filter parameters of a list request
type Query struct {
	Transformation string
	Status         string
	Code           string
	Search         string

	// IncludeMetadata is false only for include_metadata=false
	IncludeMetadata bool

	// ParamCount counts every distinct key supplied, recognised or not
	ParamCount int
}

// ParseQuery builds a Query from request parameters. For repeated keys the
// last value wins.
func ParseQuery(params map[string][]string) Query {
	q := Query{IncludeMetadata: true, ParamCount: len(params)}
	last := func(key string) string {
		vals := params[key]
		if len(vals) == 0 {
			return ""
		}
		return vals[len(vals)-1]
	}

	q.Transformation = last("transformation")
	q.Status = last("status")
	q.Code = last("code")
	q.Search = last("search")
	if _, ok := params["include_metadata"]; ok && last("include_metadata") == "false" {
		q.IncludeMetadata = false
	}
	return q
}

// FiltersApplied reports whether the request carried any parameter
func (q Query) FiltersApplied() bool {
	return q.ParamCount > 0
}

// Filter keeps the models matching every non-empty predicate of q, in
// their original order.
func Filter(models []domain.PublicModel, q Query) []domain.PublicModel {
	search := strings.ToLower(q.Search)

	out := make([]domain.PublicModel, 0, len(models))
	for _, m := range models {
		if q.Transformation != "" && !strings.EqualFold(domain.Value(m.Transformation), q.Transformation) {
			continue
		}
		if q.Status != "" && !strings.EqualFold(domain.Value(m.Status), q.Status) {
			continue
		}
		if q.Code != "" && !strings.EqualFold(domain.Value(m.Code), q.Code) {
			continue
		}
		if search != "" && !matchesSearch(m, search) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesSearch(m domain.PublicModel, term string) bool {
	if strings.Contains(strings.ToLower(domain.Value(m.Name)), term) {
		return true
	}
	return m.Description != nil && strings.Contains(strings.ToLower(*m.Description), term)
}

// FindByCode returns the record whose code equals code, ignoring case
func FindByCode(doc *domain.Document, code string) (domain.ModelRecord, error) {
	want := strings.ToUpper(code)
	for _, raw := range doc.Models {
		if raw.Code != nil && strings.ToUpper(*raw.Code) == want {
			return raw, nil
		}
	}
	return domain.ModelRecord{}, domain.ErrModelNotFound
}
