package internal

// Callback is an entry on the pre- or post-flush backlog. Go funcs are not
// comparable, so Callback carries an explicit Key the caller chooses to
// represent that identity — typically the *Effect or component instance
// the callback belongs to. ID orders post callbacks the same way jobs are
// ordered; pre callbacks don't need an order beyond FIFO-per-round, so ID
// is left as NoID for those.
type Callback struct {
	Key any
	ID  ID
	Fn  func()
}
