package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hummbl-dev/models-api/internal/models/domain"
)

func thinkDocument() *domain.Document {
	return &domain.Document{Models: []domain.ModelRecord{
		{
			Code:           domain.String("T1"),
			Name:           domain.String("Think"),
			Transformation: domain.String("Cognitive"),
			Status:         domain.String("active"),
			Description:    domain.String("A" + strings.Repeat("x", 90)),
		},
		{
			Code:           domain.String("P2"),
			Name:           domain.String("Stakeholder Mapping"),
			Transformation: domain.String("Perspective"),
			Status:         domain.String("draft"),
		},
	}}
}

func TestModelService_List(t *testing.T) {
	src := &fakeSource{docs: []*domain.Document{thinkDocument()}}
	svc := NewModelService(NewDocumentCache(src))

	models, err := svc.List(context.Background(), Query{Search: "think"})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "A"+strings.Repeat("x", 79), models[0].Definition)

	all, err := svc.List(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 1, src.Calls())
}

func TestModelService_Get(t *testing.T) {
	src := &fakeSource{docs: []*domain.Document{thinkDocument()}}
	svc := NewModelService(NewDocumentCache(src))

	m, err := svc.Get(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "Think", domain.Value(m.Name))

	_, err = svc.Get(context.Background(), "Z9")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestModelService_FetchFailure(t *testing.T) {
	src := &fakeSource{errs: []error{errors.New("down"), errors.New("down")}}
	svc := NewModelService(NewDocumentCache(src))

	_, err := svc.List(context.Background(), Query{})
	assert.ErrorIs(t, err, domain.ErrFetchFailure)

	_, err = svc.Get(context.Background(), "T1")
	assert.ErrorIs(t, err, domain.ErrFetchFailure)

	assert.Zero(t, svc.CacheAge())
}
