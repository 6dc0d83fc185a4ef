package main

import (
	"fmt"

	"github.com/corewave/reactive/reactive"
)

func main() {
	reactive.Configure(true)

	a := reactive.NewRef(1)
	b := reactive.NewRef(2)

	sum := reactive.NewComputed(func() int {
		result := a.Get() + b.Get()
		fmt.Println("  [computed] recomputing sum:", result)
		return result
	})

	reactive.WatchEffect(func(onCleanup reactive.CleanupFunc) {
		fmt.Println("  [effect] sum is:", sum.Get())
	})

	fmt.Println("\nupdating a and b synchronously...")
	a.Set(10)
	b.Set(20)

	fmt.Println("\nwaiting for the drain that coalesces both writes into one rerun...")
	reactive.NextTick(nil).Wait()

	fmt.Println("\nexpected: the effect above printed \"sum is: 30\" exactly once, not twice")
}
