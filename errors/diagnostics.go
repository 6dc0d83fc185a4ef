package errors

import (
	"fmt"
	"os"

	"github.com/corewave/reactive/internal"
)

// ConsoleDiagnostics prints recursion-limit and misuse warnings to stderr,
// naming the offending owner when one is available.
type ConsoleDiagnostics struct{}

func (ConsoleDiagnostics) Warnf(owner, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if owner != "" {
		fmt.Fprintf(os.Stderr, "[reactive] warning (in %s): %s\n", owner, msg)
		return
	}
	fmt.Fprintf(os.Stderr, "[reactive] warning: %s\n", msg)
}

// WireDiagnostics installs ConsoleDiagnostics as rt's DiagnosticsSink. Call
// WireDiagnostics alongside Wire when DevMode is enabled; a runtime with
// DevMode off never calls the sink regardless.
func WireDiagnostics(rt *internal.Runtime) {
	rt.SetDiagnosticsSink(ConsoleDiagnostics{})
}
