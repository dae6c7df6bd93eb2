// Package helpers holds small pointer/string utilities shared across the
// core packages for working with nullable fields.
package helpers

// PtrInt32 returns a pointer to i, useful for populating the nullable
// integer fields of PersistedState without a throwaway local variable.
func PtrInt32(i int32) *int32 {
	return &i
}

// PtrInt64 returns a pointer to i.
func PtrInt64(i int64) *int64 {
	return &i
}

// PtrString returns a pointer to s.
func PtrString(s string) *string {
	return &s
}

// Int32Value returns *p, or def if p is nil.
func Int32Value(p *int32, def int32) int32 {
	if p == nil {
		return def
	}
	return *p
}

// StringValue returns *p, or def if p is nil.
func StringValue(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// NormalizeName lower-cases name and strips anything that isn't a safe
// identifier character, so it can be used to key a registry without
// allowing path traversal of the strategy/method namespace.
func NormalizeName(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '_', c == '-':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+('a'-'A'))
		default:
			// drop separators, dots and anything else that could be used
			// to escape the strategy namespace (e.g. "../other")
		}
	}
	return string(out)
}
