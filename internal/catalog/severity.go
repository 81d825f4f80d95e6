package catalog

// Classify returns the severity of the first band containing v.
// Bands are scanned in order; the second result is false if none matches.
func Classify(bands []Band, v int64) (Severity, bool) {
	for _, b := range bands {
		if b.Contains(v) {
			return b.Severity, true
		}
	}
	return "", false
}
