package internal

// DiagnosticsSink receives development-only warnings: recursion-limit
// overflows and misuse warnings. ownerName names the component/instance
// the offending job belongs to, empty when it carries no owner.
type DiagnosticsSink interface {
	Warnf(ownerName, format string, args ...any)
}

// SetDiagnosticsSink installs the warning collaborator. A nil sink (the
// default) makes every Warnf call a no-op, matching ErrorHandler's
// zero-overhead-when-unconfigured convention.
func (rt *Runtime) SetDiagnosticsSink(s DiagnosticsSink) { rt.diagnostics = s }

func (rt *Runtime) warnf(ownerName, format string, args ...any) {
	if rt.DevMode && rt.diagnostics != nil {
		rt.diagnostics.Warnf(ownerName, format, args...)
	}
}
