package ports

// Notifier surfaces non-fatal conditions to a human: a missing runtime
// install, an unsupported configuration version, an undecodable parameter
// blob. Notices are best-effort and must never block or fail program logic.
type Notifier interface {
	Warn(title, message string)
}

// NopNotifier discards all notices.
type NopNotifier struct{}

// Warn implements Notifier.
func (NopNotifier) Warn(title, message string) {}
