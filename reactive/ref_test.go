package reactive

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef(t *testing.T) {
	t.Run("read and write", func(t *testing.T) {
		count := NewRef(0)
		assert.Equal(t, 0, count.Get())

		count.Set(10)
		assert.Equal(t, 10, count.Get())
	})

	t.Run("peek does not track", func(t *testing.T) {
		count := NewRef(0)
		var log []string

		NewEffect(func() {
			log = append(log, fmt.Sprintf("peek %d", count.Peek()))
		})

		count.Set(1)

		assert.Equal(t, []string{"peek 0"}, log)
	})

	t.Run("batching: two synchronous writes coalesce into one rerun", func(t *testing.T) {
		a := NewRef(1)
		b := NewRef(2)
		var log []int

		WatchEffect(func(onCleanup CleanupFunc) {
			log = append(log, a.Get()+b.Get())
		})

		a.Set(10)
		b.Set(20)

		NextTick(nil).Wait()

		assert.Equal(t, []int{3, 30}, log)
	})
}
