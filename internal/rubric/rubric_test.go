package rubric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsCanonicalOrder(t *testing.T) {
	want := []string{"claridad", "veracidad", "fuentes", "contexto", "balance", "estructura", "dato", "transparencia"}
	assert.Equal(t, want, IDs())

	items := Items()
	require.Len(t, items, 8)
	seen := map[string]bool{}
	for _, it := range items {
		assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
		seen[it.ID] = true
		assert.NotEmpty(t, it.Title)
		assert.NotEmpty(t, Keywords(it.ID))
	}
}

func TestLookup(t *testing.T) {
	it, ok := Lookup("dato")
	require.True(t, ok)
	assert.Equal(t, "Uso de datos", it.Title)

	_, ok = Lookup("nope")
	assert.False(t, ok)
	assert.Empty(t, FallbackRationale("nope", 3))
	assert.Nil(t, Keywords("nope"))
}

func TestFallbackRationaleTiers(t *testing.T) {
	assert.Equal(t, TierLow, TierFor(1))
	assert.Equal(t, TierLow, TierFor(2))
	assert.Equal(t, TierMid, TierFor(3))
	assert.Equal(t, TierHigh, TierFor(4))
	assert.Equal(t, TierHigh, TierFor(5))

	low := FallbackRationale("fuentes", 2)
	mid := FallbackRationale("fuentes", 3)
	high := FallbackRationale("fuentes", 5)
	assert.NotEqual(t, low, mid)
	assert.NotEqual(t, mid, high)
}

func TestAggregate(t *testing.T) {
	all := func(v int) map[string]int {
		m := map[string]int{}
		for _, id := range IDs() {
			m[id] = v
		}
		return m
	}
	assert.Equal(t, 20, Aggregate(all(1)))
	assert.Equal(t, 100, Aggregate(all(5)))
	assert.Equal(t, 60, Aggregate(all(3)))

	// one 5 and seven 3s: (5+21)/8*20 = 65
	assert.Equal(t, 65, Aggregate(map[string]int{"dato": 5}))

	// (4*4 + 3*4)/8*20 = 70
	m := all(3)
	for _, id := range IDs()[:4] {
		m[id] = 4
	}
	assert.Equal(t, 70, Aggregate(m))

	// out-of-range values are clamped
	assert.Equal(t, 100, Aggregate(all(9)))
}

func TestLabelBoundaries(t *testing.T) {
	cases := map[int]string{
		100: LabelExcelente,
		85:  LabelExcelente,
		84:  LabelBuena,
		70:  LabelBuena,
		69:  LabelAceptable,
		50:  LabelAceptable,
		49:  LabelBaja,
		20:  LabelBaja,
	}
	for score, want := range cases {
		assert.Equal(t, want, Label(score), "score %d", score)
	}
}
