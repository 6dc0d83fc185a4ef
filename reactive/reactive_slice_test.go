package reactive

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReactiveSlice(t *testing.T) {
	t.Run("append triggers an effect depending on length but not one depending on an untouched index", func(t *testing.T) {
		s := NewReactiveSlice[int]()
		s.Append(1)
		s.Append(2)

		var lens []int
		NewEffect(func() { lens = append(lens, s.Len()) })

		idx0Runs := 0
		NewEffect(func() { s.Get(0); idx0Runs++ })

		s.Append(3)

		assert.Equal(t, []int{2, 3}, lens)
		assert.Equal(t, 1, idx0Runs)
	})

	t.Run("delete shrinks length and reruns an effect depending on length", func(t *testing.T) {
		s := NewReactiveSlice[string]()
		s.Append("a")
		s.Append("b")
		s.Append("c")

		var log []string
		NewEffect(func() { log = append(log, "len-is", strconv.Itoa(s.Len())) })

		log = nil
		s.Delete(2)

		assert.Equal(t, []string{"len-is", "2"}, log)
	})

	t.Run("clear fires every dep", func(t *testing.T) {
		s := NewReactiveSlice[int]()
		s.Append(1)
		s.Append(2)
		runs := 0

		NewEffect(func() { s.Get(0); runs++ })

		s.Clear()
		assert.Equal(t, 2, runs)
	})
}
