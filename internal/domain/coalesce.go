package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// StrFromPtr returns *p when p is non-nil, otherwise cur.
func StrFromPtr(cur string, p *string) string {
	if p != nil {
		return *p
	}
	return cur
}

// CloneStrings returns a copy of s that never aliases the original backing array.
func CloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// CloneFloatPtr returns a fresh pointer holding the same value, or nil.
func CloneFloatPtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
