package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputed(t *testing.T) {
	t.Run("lazily recomputes only when read after a dependency changes", func(t *testing.T) {
		count := NewRef(0)
		computes := 0

		double := NewComputed(func() int {
			computes++
			return count.Get() * 2
		})

		assert.Equal(t, 0, computes)

		assert.Equal(t, 0, double.Get())
		assert.Equal(t, 1, computes)

		assert.Equal(t, 0, double.Get())
		assert.Equal(t, 1, computes, "a second Get with no intervening write must not recompute")

		count.Set(5)
		assert.Equal(t, 10, double.Get())
		assert.Equal(t, 2, computes)
	})

	t.Run("diamond dependency settles to one rerun per drain", func(t *testing.T) {
		count := NewRef(0)
		double := NewComputed(func() int { return count.Get() * 2 })
		quad := NewComputed(func() int { return count.Get() * 4 })
		var log []string

		WatchEffect(func(onCleanup CleanupFunc) {
			log = append(log, fmt.Sprintf("%d %d", double.Get(), quad.Get()))
		})

		count.Set(10)
		NextTick(nil).Wait()

		assert.Equal(t, []string{"0 0", "20 40"}, log)
	})
}
