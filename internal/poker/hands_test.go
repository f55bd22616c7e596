package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllClassesEnumeration(t *testing.T) {
	all := AllClasses()
	require.Len(t, all, NumHandClasses)

	labels := make(map[string]bool, NumHandClasses)
	pairs, suited, offsuit := 0, 0, 0
	for _, class := range all {
		label := class.Label()
		assert.False(t, labels[label], "duplicate class %s", label)
		labels[label] = true

		switch class.Suitedness {
		case PocketPair:
			pairs++
			assert.Equal(t, class.High, class.Low)
		case Suited:
			suited++
			assert.Greater(t, class.High, class.Low)
		case Offsuit:
			offsuit++
			assert.Greater(t, class.High, class.Low)
		}
	}
	assert.Equal(t, 13, pairs)
	assert.Equal(t, 78, suited)
	assert.Equal(t, 78, offsuit)
}

func TestAllClassesCanonicalOrder(t *testing.T) {
	all := AllClasses()
	// Pairs first, from aces down to deuces, then each rank combination
	// suited before offsuit.
	assert.Equal(t, "AA", all[0].Label())
	assert.Equal(t, "KK", all[1].Label())
	assert.Equal(t, "22", all[12].Label())
	assert.Equal(t, "AKs", all[13].Label())
	assert.Equal(t, "AKo", all[14].Label())
	assert.Equal(t, "AQs", all[15].Label())
	assert.Equal(t, "32o", all[168].Label())
}

func TestHoleCardsMatchClass(t *testing.T) {
	for _, class := range AllClasses() {
		hc := class.HoleCards()
		assert.NotEqual(t, hc[0], hc[1], "class %s deals a duplicate card", class.Label())
		assert.Equal(t, class, ClassForCards(hc[0], hc[1]), "class %s", class.Label())
	}
}

func TestClassForCardsOrderIndependent(t *testing.T) {
	a, b := MustParseCard("Ks"), MustParseCard("As")
	assert.Equal(t, ClassForCards(a, b), ClassForCards(b, a))
	assert.Equal(t, "AKs", ClassForCards(a, b).Label())

	c, d := MustParseCard("7d"), MustParseCard("2h")
	assert.Equal(t, "72o", ClassForCards(c, d).Label())

	e, f := MustParseCard("5c"), MustParseCard("5h")
	assert.Equal(t, "55", ClassForCards(e, f).Label())
}

func TestClassFromLabelRoundTrip(t *testing.T) {
	for _, class := range AllClasses() {
		parsed, err := ClassFromLabel(class.Label())
		require.NoError(t, err, class.Label())
		assert.Equal(t, class, parsed)
	}
}

func TestClassFromLabelErrors(t *testing.T) {
	for _, label := range []string{"", "A", "KAs", "AK", "AAs", "AKx", "ZKs", "AKso"} {
		_, err := ClassFromLabel(label)
		assert.Error(t, err, label)
	}
}

func TestRealize(t *testing.T) {
	aks, err := ClassFromLabel("AKs")
	require.NoError(t, err)
	hc := aks.Realize(Hearts, Hearts)
	assert.Equal(t, "AKs", ClassForCards(hc[0], hc[1]).Label())

	ako, err := ClassFromLabel("AKo")
	require.NoError(t, err)
	hc = ako.Realize(Spades, Hearts)
	assert.Equal(t, "AKo", ClassForCards(hc[0], hc[1]).Label())

	assert.Panics(t, func() { aks.Realize(Hearts, Spades) })
	assert.Panics(t, func() { ako.Realize(Hearts, Hearts) })
}
