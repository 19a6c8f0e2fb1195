package q3

import (
	"sort"
	"strings"
)

const varDelimiter = `\`

// Vars maps server variable names to their raw values.
type Vars map[string]string

// ParseVars decodes a backslash delimited info string such as `\sv_hostname\Foo\g_gametype\3`.
// The empty segment before the leading delimiter is dropped and the remaining segments are paired
// up as key and value. A trailing key without a value maps to "". Duplicate keys keep the last
// value. ParseVars never fails; malformed input yields fewer or garbled entries.
func ParseVars(section string) Vars {
	vars := Vars{}

	segments := strings.Split(section, varDelimiter)
	segments = segments[1:]

	for i := 0; i < len(segments); i += 2 {
		key := segments[i]
		value := ""
		if i+1 < len(segments) {
			value = segments[i+1]
		}
		vars[key] = value
	}

	return vars
}

// Keys returns the variable names in lexical order.
func (v Vars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
