package frontmatter

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// specialChars forces a string value to be quoted
const specialChars = ":\"'#|<>[]{}@\n"

// maxInlineLength is the longest quoted value kept on a single line
const maxInlineLength = 100

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Format renders b between delimiter lines, keys in insertion order
func Format(b *Block) string {
	var sb strings.Builder
	sb.WriteString(Delimiter + "\n")
	for _, key := range b.Keys() {
		writeEntry(&sb, key, b.Get(key))
	}
	sb.WriteString(Delimiter + "\n")
	return sb.String()
}

// Compose renders b followed by a blank line and the body, unmodified
func Compose(b *Block, body string) string {
	return Format(b) + "\n" + body
}

func writeEntry(sb *strings.Builder, key string, value Value) {
	switch v := value.(type) {
	case Scalar:
		sb.WriteString(key + ": " + FormatString(string(v)) + "\n")
	case Number:
		sb.WriteString(key + ": " + FormatNumber(float64(v)) + "\n")
	case StringList:
		sb.WriteString(key + ": " + FormatString(strings.Join(v, ", ")) + "\n")
	case *BoolMap:
		sb.WriteString(key + ":\n")
		for _, name := range v.Keys() {
			enabled, _ := v.Get(name)
			sb.WriteString("  " + name + ": " + strconv.FormatBool(enabled) + "\n")
		}
	}
}

// FormatNumber renders f in its shortest decimal form
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatString renders s as a YAML value. Plain strings are emitted as is;
// strings with YAML significant characters are double quoted, or emitted as
// a literal block when they span lines or exceed maxInlineLength.
func FormatString(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, specialChars) {
		return s
	}

	if strings.Contains(s, "\n") || utf8.RuneCountInString(s) > maxInlineLength {
		var sb strings.Builder
		sb.WriteString("|-")
		for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
			sb.WriteString("\n")
			if line != "" {
				sb.WriteString("  " + line)
			}
		}
		return sb.String()
	}

	return `"` + escaper.Replace(s) + `"`
}
