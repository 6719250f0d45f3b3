package object

import "github.com/emurenMRz/pdftools/pdferrors"

// AsDict asserts that o is a Dict, raising TypeError otherwise. This is
// the Go realization of the reference's Object::operator[] / HasKey, which
// throw type_error when called on a non-Dictionary.
func AsDict(op string, o Object) (Dict, error) {
	d, ok := o.(Dict)
	if !ok {
		return nil, pdferrors.NewTypeError(op, "DICTIONARY", kind(o))
	}
	return d, nil
}

// AsArray asserts that o is an Array, raising TypeError otherwise.
func AsArray(op string, o Object) (Array, error) {
	a, ok := o.(Array)
	if !ok {
		return nil, pdferrors.NewTypeError(op, "ARRAY", kind(o))
	}
	return a, nil
}

// AsNumeric asserts that o is Numeric, raising TypeError otherwise.
func AsNumeric(op string, o Object) (Numeric, error) {
	n, ok := o.(Numeric)
	if !ok {
		return 0, pdferrors.NewTypeError(op, "NUMERIC", kind(o))
	}
	return n, nil
}

// AsIndirect asserts that o is an Indirect reference, raising TypeError
// otherwise.
func AsIndirect(op string, o Object) (Indirect, error) {
	r, ok := o.(Indirect)
	if !ok {
		return 0, pdferrors.NewTypeError(op, "INDIRECT", kind(o))
	}
	return r, nil
}

// Lookup fetches key from d; a missing key is reported via the ok result.
// It has no error result: the static Dict receiver already rules out the
// non-Dictionary case that AsDict reports as a TypeError.
func (d Dict) Lookup(key Name) (Object, bool) {
	o, ok := d[key]
	return o, ok
}

// Kind exposes the tag name of o (NIL, BOOLEAN, ...), matching the
// reference's Object::Type stringification; used in diagnostics.
func Kind(o Object) string { return kind(o) }
