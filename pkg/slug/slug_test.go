package slug

import (
	"strings"
	"testing"

	"pinory-system/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	t.Run("fixed length and url-safe alphabet", func(t *testing.T) {
		g := NewGenerator(10, 5)
		for i := 0; i < 100; i++ {
			s, err := g.Generate()
			require.NoError(t, err)
			assert.Len(t, s, 10)
			for _, c := range s {
				assert.True(t, strings.ContainsRune(alphabet, c), "unexpected char %q in %q", c, s)
			}
		}
	})

	t.Run("custom length", func(t *testing.T) {
		g := NewGenerator(16, 5)
		s, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, s, 16)
	})

	t.Run("defaults for non-positive params", func(t *testing.T) {
		g := NewGenerator(0, 0)
		s, err := g.Generate()
		require.NoError(t, err)
		assert.Len(t, s, DefaultLength)
	})

	t.Run("no repeats across many draws", func(t *testing.T) {
		g := NewGenerator(10, 5)
		seen := map[string]bool{}
		for i := 0; i < 1000; i++ {
			s, err := g.Generate()
			require.NoError(t, err)
			assert.False(t, seen[s], "slug %q repeated", s)
			seen[s] = true
		}
	})
}

func TestGenerateUnique(t *testing.T) {
	t.Run("returns first non-colliding slug", func(t *testing.T) {
		g := NewGenerator(10, 5)
		calls := 0
		s, err := g.GenerateUnique(func(string) (bool, error) {
			calls++
			return false, nil
		})
		require.NoError(t, err)
		assert.Len(t, s, 10)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries on collision", func(t *testing.T) {
		g := NewGenerator(10, 5)
		calls := 0
		s, err := g.GenerateUnique(func(string) (bool, error) {
			calls++
			// 前两次命中已有slug，第三次放行
			return calls < 3, nil
		})
		require.NoError(t, err)
		assert.NotEmpty(t, s)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts after max attempts", func(t *testing.T) {
		g := NewGenerator(10, 5)
		calls := 0
		_, err := g.GenerateUnique(func(string) (bool, error) {
			calls++
			return true, nil
		})
		assert.ErrorIs(t, err, errs.ErrSlugExhausted)
		assert.Equal(t, 5, calls)
	})

	t.Run("propagates existence check error", func(t *testing.T) {
		g := NewGenerator(10, 5)
		_, err := g.GenerateUnique(func(string) (bool, error) {
			return false, assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
