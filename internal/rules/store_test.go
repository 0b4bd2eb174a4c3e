package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerloom/ledgerloom/internal/common"
	"github.com/ledgerloom/ledgerloom/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "rules.txt"))
	require.NoError(t, err)
	return store
}

func TestMatchFirstRuleWins(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("coffee", "Food"))
	require.NoError(t, store.Add("starbucks coffee", "Entertainment"))

	category, ok := store.Match("Starbucks Coffee downtown")
	assert.True(t, ok)
	assert.Equal(t, "Food", category)
}

func TestMatchCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("UBER", "Transport"))

	category, ok := store.Match("uber trip to airport")
	assert.True(t, ok)
	assert.Equal(t, "Transport", category)

	_, ok = store.Match("train ticket")
	assert.False(t, ok)
}

func TestAddLastWriteWins(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("market", "Food"))
	require.NoError(t, store.Add("market", "Shopping"))

	category, ok := store.Match("farmers market")
	assert.True(t, ok)
	assert.Equal(t, "Shopping", category)
	assert.Len(t, store.Rules(), 1)
}

func TestAddRejectsEmptyFields(t *testing.T) {
	store := newTestStore(t)
	assert.ErrorIs(t, store.Add("", "Food"), common.ErrInvalidConfig)
	assert.ErrorIs(t, store.Add("coffee", "  "), common.ErrInvalidConfig)
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("coffee", "Food"))
	require.NoError(t, store.Add("taxi", "Transport"))

	require.NoError(t, store.Remove("coffee"))
	_, ok := store.Match("morning coffee")
	assert.False(t, ok)

	category, ok := store.Match("taxi ride")
	assert.True(t, ok)
	assert.Equal(t, "Transport", category)

	assert.ErrorIs(t, store.Remove("coffee"), common.ErrNotFound)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")

	store, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Add("coffee", "Food"))
	require.NoError(t, store.Add("rent", "Housing"))

	reopened, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Rule{
		{Keyword: "coffee", Category: "Food"},
		{Keyword: "rent", Category: "Housing"},
	}, reopened.Rules())
}

func TestLoadSkipsCommentsAndMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.txt")
	content := "# comment line\n\ncoffee||Food\nmalformed-no-separator\ntaxi||Transport\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewStore(path)
	require.NoError(t, err)
	assert.Equal(t, []model.Rule{
		{Keyword: "coffee", Category: "Food"},
		{Keyword: "taxi", Category: "Transport"},
	}, store.Rules())
}

func TestRulesReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Add("coffee", "Food"))

	rules := store.Rules()
	rules[0].Category = "Shopping"

	category, _ := store.Match("coffee")
	assert.Equal(t, "Food", category)
}
