package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategoryPath(t *testing.T) {
	t.Run("builds canonical key from ordered segments", func(t *testing.T) {
		path, err := NewCategoryPath("Food", "Restaurants", "Sushi")
		require.NoError(t, err)
		assert.Equal(t, "Food:Restaurants:Sushi", path.Key())
	})

	t.Run("trims segment whitespace", func(t *testing.T) {
		path, err := NewCategoryPath("  Food ", " Restaurants  ")
		require.NoError(t, err)
		assert.Equal(t, "Food:Restaurants", path.Key())
	})

	t.Run("drops empty trailing segments", func(t *testing.T) {
		path, err := NewCategoryPath("Food", "Restaurants", "", "")
		require.NoError(t, err)
		assert.Equal(t, "Food:Restaurants", path.Key())
	})

	t.Run("rejects empty path", func(t *testing.T) {
		_, err := NewCategoryPath()
		assert.Error(t, err)

		_, err = NewCategoryPath("", "  ")
		assert.Error(t, err)
	})

	t.Run("rejects empty middle segment", func(t *testing.T) {
		_, err := NewCategoryPath("Food", "", "Sushi")
		assert.Error(t, err)
	})

	t.Run("rejects path deeper than max", func(t *testing.T) {
		_, err := NewCategoryPath("a", "b", "c", "d", "e", "f")
		assert.Error(t, err)
	})
}

func TestCategoryPath_Equal(t *testing.T) {
	a, err := NewCategoryPath("Food", "Restaurants")
	require.NoError(t, err)
	b, err := NewCategoryPath(" Food", "Restaurants ")
	require.NoError(t, err)
	parent, err := NewCategoryPath("Food")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))

	// Родитель не равен потомку: сравнение по точной глубине
	assert.False(t, a.Equal(parent))
}

func TestNormalizeLegacyCategoryKey(t *testing.T) {
	assert.Equal(t, "Food:Restaurants:Sushi", NormalizeLegacyCategoryKey("Food > Restaurants > Sushi"))
	assert.Equal(t, "Food:Restaurants", NormalizeLegacyCategoryKey(" Food :  Restaurants "))
	assert.Equal(t, "Food", NormalizeLegacyCategoryKey("Food"))
	assert.Equal(t, "", NormalizeLegacyCategoryKey("  "))
}

func TestCategoryNode_ContainsPath(t *testing.T) {
	sushi := NewLeaf()
	restaurants, err := NewBranch(map[string]*CategoryNode{"Sushi": sushi})
	require.NoError(t, err)
	food, err := NewBranch(map[string]*CategoryNode{"Restaurants": restaurants})
	require.NoError(t, err)
	root, err := NewBranch(map[string]*CategoryNode{"Food": food})
	require.NoError(t, err)

	fullPath, _ := NewCategoryPath("Food", "Restaurants", "Sushi")
	assert.True(t, root.ContainsPath(fullPath))

	// Путь может заканчиваться на ветке
	branchPath, _ := NewCategoryPath("Food", "Restaurants")
	assert.True(t, root.ContainsPath(branchPath))

	missing, _ := NewCategoryPath("Food", "Bakeries")
	assert.False(t, root.ContainsPath(missing))
}

func TestNewBranch_Validation(t *testing.T) {
	_, err := NewBranch(nil)
	assert.Error(t, err)

	_, err = NewBranch(map[string]*CategoryNode{"": NewLeaf()})
	assert.Error(t, err)

	_, err = NewBranch(map[string]*CategoryNode{"Food": nil})
	assert.Error(t, err)
}
