package reactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactiveMap(t *testing.T) {
	t.Run("reading a key tracks only that key", func(t *testing.T) {
		m := NewReactive[string, int]()
		m.Set("a", 1)
		m.Set("b", 2)
		var log []string

		NewEffect(func() {
			v, _ := m.Get("a")
			log = append(log, "a", "is", "now")
			_ = v
		})

		log = nil
		m.Set("b", 99)
		assert.Empty(t, log, "writing an untracked key must not rerun the effect")

		m.Set("a", 2)
		assert.NotEmpty(t, log)
	})

	t.Run("adding or deleting a key reruns anything that enumerated the map", func(t *testing.T) {
		m := NewReactive[string, int]()
		m.Set("a", 1)
		var lens []int

		NewEffect(func() {
			lens = append(lens, m.Len())
		})

		m.Set("b", 2)
		m.Delete("a")
		m.Set("b", 99) // overwrite of an existing key, not an add: must not rerun Len's effect

		assert.Equal(t, []int{1, 2, 1}, lens)
	})

	t.Run("clear fires every dep", func(t *testing.T) {
		m := NewReactive[string, int]()
		m.Set("a", 1)
		runs := 0

		NewEffect(func() {
			_, _ = m.Get("a")
			runs++
		})

		m.Clear()
		assert.Equal(t, 2, runs)
	})
}
