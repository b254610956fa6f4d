package localmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func candidates() []Candidate {
	return []Candidate{
		{ID: "1", Label: "Rue Hector Malot, Paris"},
		{ID: "2", Label: "Rue Victor Hugo, Lyon"},
		{ID: "3", Label: "Avenue Hector Berlioz, Nice"},
	}
}

func TestPrefixMatchFindsTokenPrefix(t *testing.T) {
	got := PrefixMatch("hect", candidates())
	assert.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[1].ID)
}

func TestPrefixMatchEmptyQueryReturnsNil(t *testing.T) {
	assert.Nil(t, PrefixMatch("", candidates()))
	assert.Nil(t, PrefixMatch("   ", candidates()))
}

func TestFuzzyMatchToleratesTypo(t *testing.T) {
	got := FuzzyMatch("hctor malot", candidates())
	assert.NotEmpty(t, got)
	assert.Equal(t, "1", got[0].ID)
}

func TestFuzzyMatchNoHitsReturnsEmpty(t *testing.T) {
	got := FuzzyMatch("zzzzzzzzzz", candidates())
	assert.Empty(t, got)
}
