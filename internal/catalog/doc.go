// Package catalog holds the sensor and command type tables and the rules
// that decide whether a reading or command may be written.
//
// The Registry is built once at startup and never mutated. Validate checks a
// request against it and returns the normalised value, plus a Severity for
// kinds that carry severity bands.
//
//	reg := catalog.Default()
//	out, err := reg.Validate(catalog.Request{
//	    Room: "salon", Kind: "gas", Value: json.Number("850"), Present: true,
//	}, false)
//	if errors.Is(err, catalog.ErrInvalid) {
//	    // reject with 400
//	}
//	if out.Severity.Escalates() {
//	    // raise an alert
//	}
package catalog
