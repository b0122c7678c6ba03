package counters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountersZeroValue(t *testing.T) {
	var cs Counters
	assert.Equal(t, 0, cs.Count("+1/+1"))
	assert.False(t, cs.Has("+1/+1"))
	assert.False(t, cs.Remove("+1/+1", 1))
}

func TestCountersAddRemove(t *testing.T) {
	var cs Counters
	cs.Add("+1/+1", 2)
	cs.Add("+1/+1", 1)
	cs.Add("lore", 1)
	cs.Add("ignored", 0)

	assert.Equal(t, 3, cs.Count("+1/+1"))
	assert.Equal(t, 1, cs.Count("lore"))
	assert.False(t, cs.Has("ignored"))

	assert.True(t, cs.Remove("+1/+1", 5))
	assert.False(t, cs.Has("+1/+1"))
	assert.True(t, cs.Has("lore"))
}

func TestCountersCopyIsDeep(t *testing.T) {
	var cs Counters
	cs.Add("lore", 1)
	cp := cs.Copy()
	cs.Add("lore", 2)

	assert.Equal(t, 1, cp.Count("lore"))
	assert.Equal(t, 3, cs.Count("lore"))
}

func TestCounterRemoveFloorsAtZero(t *testing.T) {
	c := NewCounter("charge", 2)
	c.Remove(3)
	assert.Equal(t, 0, c.Count)
	c.Add(-1)
	assert.Equal(t, 0, c.Count)
	assert.Equal(t, 1, NewCounter("charge", 0).Count)
}
