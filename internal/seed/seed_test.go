package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-larek/internal/domain"
)

type stubSaver struct {
	saved  []domain.Product
	failAt int
}

func (s *stubSaver) Save(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.failAt > 0 && len(s.saved)+1 == s.failAt {
		return nil, errors.New("boom")
	}
	s.saved = append(s.saved, p)
	return &p, nil
}

func TestApply_SavesCatalogInOrder(t *testing.T) {
	saver := &stubSaver{}

	n, err := Apply(context.Background(), saver)
	require.NoError(t, err)

	assert.Equal(t, 10, n)
	seen := map[string]bool{}
	for i, p := range saver.saved {
		assert.Equal(t, i, p.Position)
		assert.True(t, p.Category.Valid(), p.ID)
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
}

func TestApply_StopsOnError(t *testing.T) {
	n, err := Apply(context.Background(), &stubSaver{failAt: 3})
	assert.Error(t, err)
	assert.Equal(t, 2, n)
}
