package sourcemap

import (
	"encoding/base64"
	"strings"

	"github.com/mapforge/mapforge/pkg/sourcefs"
)

// ToJSON serializes sm against reg into the exact Source Map v3 envelope:
//
//	{"version":3,"sourceRoot":"","sources":[...],"sourcesContent":[...],"names":[],"mappings":"..."}
//
// Fields appear in this fixed order so byte-for-byte golden tests are
// possible. encoding/json is deliberately not used: sourcesContent needs
// the non-standard escaping described below, which encoding/json cannot
// produce without a post-processing pass that would just be this function.
func (sm SourceMap) ToJSON(reg sourcefs.Registry) string {
	var b strings.Builder
	b.WriteString(`{"version":3,"sourceRoot":"","sources":[`)
	for i, id := range sm.Sources {
		if i > 0 {
			b.WriteByte(',')
		}
		reg.WithSource(id, func(src *sourcefs.Source) {
			b.WriteByte('"')
			b.WriteString(escape(toForwardSlashes(src.Path)))
			b.WriteByte('"')
		})
	}
	b.WriteString(`],"sourcesContent":[`)
	for i, id := range sm.Sources {
		if i > 0 {
			b.WriteByte(',')
		}
		reg.WithSource(id, func(src *sourcefs.Source) {
			b.WriteByte('"')
			b.WriteString(escape(src.Content))
			b.WriteByte('"')
		})
	}
	b.WriteString(`],"names":[],"mappings":"`)
	b.WriteString(sm.Mappings)
	b.WriteString(`"}`)
	return b.String()
}

// escape applies exactly the three substitutions the v3 envelope requires
// for string-literal fields: \n, \r and " — no other escaping.
func escape(s string) string {
	if !strings.ContainsAny(s, "\n\r\"") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toForwardSlashes(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// Inline appends a literal newline followed by
// "//# sourceMappingURL=data:application/json;base64,<b64>" to generated,
// where <b64> is standard (padded) Base64 of sm's JSON envelope. No
// trailing newline is added after the comment.
func Inline(generated string, sm SourceMap, reg sourcefs.Registry) string {
	body := sm.ToJSON(reg)
	encoded := base64.StdEncoding.EncodeToString([]byte(body))
	var b strings.Builder
	b.Grow(len(generated) + len(encoded) + 64)
	b.WriteString(generated)
	b.WriteString("\n//# sourceMappingURL=data:application/json;base64,")
	b.WriteString(encoded)
	return b.String()
}
