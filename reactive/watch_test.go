package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWatch(t *testing.T) {
	t.Run("does not invoke the callback on the initial eager read", func(t *testing.T) {
		count := NewRef(0)
		var calls int

		Watch(count.Get, func(newVal, oldVal int, onCleanup CleanupFunc) {
			calls++
		})

		assert.Equal(t, 0, calls)
	})

	t.Run("reports old and new values and runs cleanup before each rerun", func(t *testing.T) {
		count := NewRef(0)
		var log []string

		Watch(count.Get, func(newVal, oldVal int, onCleanup CleanupFunc) {
			log = append(log, fmt.Sprintf("run %d %d", newVal, oldVal))
			onCleanup(func() { log = append(log, "cleanup") })
		})

		count.Set(1)
		NextTick(nil).Wait()
		count.Set(2)
		NextTick(nil).Wait()

		assert.Equal(t, []string{"run 1 0", "cleanup", "run 2 1"}, log)
	})
}

func TestWatchEffectCleanup(t *testing.T) {
	t.Run("stop runs the pending cleanup once", func(t *testing.T) {
		count := NewRef(0)
		var log []string

		e := WatchEffect(func(onCleanup CleanupFunc) {
			log = append(log, "run")
			onCleanup(func() { log = append(log, "cleanup") })
			count.Get()
		})

		e.Stop()
		e.Stop()

		assert.Equal(t, []string{"run", "cleanup"}, log)
	})
}
