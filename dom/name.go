package dom

import "unicode/utf8"

// IsName reports whether `s` is an XML Name, as required for element
// tags and attribute keys: such names are serialized without escaping.
func IsName(s string) bool {
	if s == "" || !utf8.ValidString(s) {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isNameStart(r) {
				return false
			}
			continue
		}
		if !isNameChar(r) {
			return false
		}
	}
	return true
}

// NameStartChar production of XML 1.0 (fifth edition)
func isNameStart(r rune) bool {
	switch {
	case r == ':' || r == '_',
		'A' <= r && r <= 'Z', 'a' <= r && r <= 'z',
		0xC0 <= r && r <= 0xD6, 0xD8 <= r && r <= 0xF6,
		0xF8 <= r && r <= 0x2FF, 0x370 <= r && r <= 0x37D,
		0x37F <= r && r <= 0x1FFF, 0x200C <= r && r <= 0x200D,
		0x2070 <= r && r <= 0x218F, 0x2C00 <= r && r <= 0x2FEF,
		0x3001 <= r && r <= 0xD7FF, 0xF900 <= r && r <= 0xFDCF,
		0xFDF0 <= r && r <= 0xFFFD, 0x10000 <= r && r <= 0xEFFFF:
		return true
	}
	return false
}

// NameChar production of XML 1.0 (fifth edition)
func isNameChar(r rune) bool {
	switch {
	case isNameStart(r),
		r == '-' || r == '.' || r == 0xB7,
		'0' <= r && r <= '9',
		0x300 <= r && r <= 0x36F, 0x203F <= r && r <= 0x2040:
		return true
	}
	return false
}
