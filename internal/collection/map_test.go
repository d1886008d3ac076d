package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSyncMap_Take(t *testing.T) {
	m := NewSyncMap[string, int]()
	m.Put("r1", 1)
	m.Put("r2", 2)

	v, ok := m.Take("r1")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = m.Take("r1")
	assert.False(t, ok, "taken values are single use")
	assert.Equal(t, 1, m.Len())

	m.Delete("r2")
	_, ok = m.Get("r2")
	assert.False(t, ok)
}

func TestSyncMap_Clear(t *testing.T) {
	m := NewSyncMap[string, string]()
	m.Put("a", "1")
	m.Put("b", "2")
	m.Clear()
	assert.Equal(t, 0, m.Len())
	m.Put("c", "3")
	v, ok := m.Get("c")
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}
