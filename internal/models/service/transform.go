package service

import (
	"github.com/hummbl-dev/models-api/internal/models/domain"
)

// Transform maps a raw record onto the public shape. It never fails.
func Transform(raw domain.ModelRecord) domain.PublicModel {
	related := raw.RelatedModels
	if related == nil {
		related = []string{}
	}

	return domain.PublicModel{
		Code:           raw.Code,
		Name:           raw.Name,
		Definition:     definitionOf(raw),
		Priority:       raw.Priority,
		Transformation: raw.Transformation,
		Description:    raw.Description,
		Example:        raw.Example,
		RelatedModels:  related,
		Status:         raw.Status,
		Version:        raw.Version,
		Relationships:  raw.Relationships,
	}
}

// TransformAll maps every record of doc, preserving order
func TransformAll(doc *domain.Document) []domain.PublicModel {
	if doc == nil {
		return []domain.PublicModel{}
	}
	out := make([]domain.PublicModel, 0, len(doc.Models))
	for _, raw := range doc.Models {
		out = append(out, Transform(raw))
	}
	return out
}

func definitionOf(raw domain.ModelRecord) string {
	if def := domain.Value(raw.Definition); def != "" {
		return def
	}
	desc := []rune(domain.Value(raw.Description))
	if len(desc) > DefinitionPreviewLength {
		desc = desc[:DefinitionPreviewLength]
	}
	return string(desc)
}
