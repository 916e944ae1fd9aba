package domain

// Warnings is the ordered list of diagnostics produced by a vendor call.
// Warnings are informational: every conversion and calculation surfaces
// its list to the caller, and none of them is ever promoted to an error.
type Warnings []string

// Merge appends other after w, preserving the order of both lists.
func (w Warnings) Merge(other Warnings) Warnings {
	if len(other) == 0 {
		return w
	}
	out := make(Warnings, 0, len(w)+len(other))
	out = append(out, w...)
	return append(out, other...)
}
