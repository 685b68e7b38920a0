package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCageCacheThreshold(t *testing.T) {
	small := NewCageCache(5)
	assert.False(t, small.Enabled())

	big := NewCageCache(6)
	assert.True(t, big.Enabled())
}

func TestCageCacheRoundTrip(t *testing.T) {
	c := NewCageCache(6)
	key := makeCacheKey(OpAdd, TierNormal, 6, []int{0, 1, 2}, []Mask{MaskOf(1, 2, 3), MaskOf(1, 2, 3), MaskOf(1, 2, 3)})

	_, hit := c.Lookup(key)
	assert.False(t, hit)

	c.Insert(key, []Mask{MaskOf(1, 2), MaskOf(2, 3), MaskOf(1, 3)}, nil, true)

	entry, hit := c.Lookup(key)
	assert.True(t, hit)
	assert.True(t, entry.ok)
	assert.Equal(t, []Mask{MaskOf(1, 2), MaskOf(2, 3), MaskOf(1, 3)}, entry.anyMasks)
}

func TestCageCacheKeyDistinguishesTier(t *testing.T) {
	cells := []int{0, 1, 2}
	doms := []Mask{MaskOf(1, 2, 3), MaskOf(1, 2, 3), MaskOf(1, 2, 3)}
	easy := makeCacheKey(OpAdd, TierEasy, 6, cells, doms)
	hard := makeCacheKey(OpAdd, TierHard, 6, cells, doms)
	assert.NotEqual(t, easy, hard)
}

func TestCageCacheKeyDistinguishesCellOrder(t *testing.T) {
	doms := []Mask{MaskOf(1, 2, 3), MaskOf(1, 2, 3), MaskOf(1, 2, 3)}
	a := makeCacheKey(OpAdd, TierNormal, 6, []int{0, 1, 2}, doms)
	b := makeCacheKey(OpAdd, TierNormal, 6, []int{2, 1, 0}, doms)
	assert.NotEqual(t, a, b)
}

func TestDisabledCacheIsNoOp(t *testing.T) {
	c := NewCageCache(4)
	key := makeCacheKey(OpAdd, TierNormal, 3, []int{0, 1}, []Mask{MaskOf(1, 2), MaskOf(1, 2)})
	c.Insert(key, []Mask{MaskOf(1), MaskOf(2)}, nil, true)
	_, hit := c.Lookup(key)
	assert.False(t, hit)
}
