package frontmatter

import (
	"math"
	"strconv"
	"strings"
)

// Delimiter opens and closes a frontmatter block
const Delimiter = "---"

// TemperatureKey is the only key whose value is parsed as a number
const TemperatureKey = "temperature"

// ToolsKey is the only key that accepts a nested mapping
const ToolsKey = "tools"

type parseState int

const (
	stateOutside parseState = iota
	stateScalar
	stateTools
	stateBlockScalar
)

type parser struct {
	state parseState
	block *Block

	tools     *BoolMap
	toolsList []string

	blockKey   string
	blockLines []string
}

// Parse splits content into its frontmatter block and body. It never fails:
// content without a complete `---` block yields an empty Block and the whole
// content as Body.
func Parse(content string) *Document {
	doc := &Document{Frontmatter: NewBlock(), Body: content}
	if !strings.HasPrefix(strings.TrimSpace(content), Delimiter) {
		return doc
	}

	p := &parser{state: stateOutside, block: NewBlock()}
	offset := 0
	for _, raw := range strings.SplitAfter(content, "\n") {
		offset += len(raw)
		line := strings.TrimRight(raw, "\r\n")

		if p.state == stateOutside {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if !isDelimiter(line) {
				return doc
			}
			p.state = stateScalar
			continue
		}

		if isDelimiter(line) {
			p.finish()
			doc.Frontmatter = p.block
			doc.Body = strings.TrimLeft(content[offset:], "\r\n")
			doc.HasFrontmatter = true
			return doc
		}

		p.feed(line)
	}

	// no closing delimiter
	return doc
}

func isDelimiter(line string) bool {
	return line == Delimiter
}

func (p *parser) feed(line string) {
	switch p.state {
	case stateTools:
		if p.feedTools(line) {
			return
		}
	case stateBlockScalar:
		if p.feedBlockScalar(line) {
			return
		}
	}
	p.feedKey(line)
}

func (p *parser) feedKey(line string) {
	if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '#' {
		return
	}

	if strings.TrimRight(line, " \t") == ToolsKey+":" {
		p.state = stateTools
		p.tools = NewBoolMap()
		p.toolsList = nil
		return
	}

	key, value, found := strings.Cut(line, ":")
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return
	}
	value = strings.TrimSpace(value)

	switch value {
	case "|", "|-", "|+":
		p.state = stateBlockScalar
		p.blockKey = key
		p.blockLines = nil
		return
	}

	p.block.Set(key, scalarValue(key, unquote(value)))
}

// feedTools consumes indented tool entries. It reports false when the line
// ends the nested mapping.
func (p *parser) feedTools(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	if line[0] != ' ' && line[0] != '\t' {
		p.commitTools()
		p.state = stateScalar
		return false
	}
	if !strings.HasPrefix(line, "  ") && line[0] != '\t' {
		return true
	}

	entry := strings.TrimSpace(line)
	if item, ok := strings.CutPrefix(entry, "-"); ok {
		if item = unquote(strings.TrimSpace(item)); item != "" {
			p.toolsList = append(p.toolsList, item)
		}
		return true
	}

	name, value, found := strings.Cut(entry, ":")
	if !found {
		return true
	}
	name = strings.TrimSpace(name)
	switch strings.TrimSpace(value) {
	case "true":
		p.tools.Set(name, true)
	case "false":
		p.tools.Set(name, false)
	}
	return true
}

func (p *parser) commitTools() {
	if p.tools.Len() == 0 && len(p.toolsList) > 0 {
		p.block.Set(ToolsKey, StringList(p.toolsList))
		return
	}
	p.block.Set(ToolsKey, p.tools)
}

func (p *parser) feedBlockScalar(line string) bool {
	switch {
	case strings.TrimSpace(line) == "":
		p.blockLines = append(p.blockLines, "")
		return true
	case strings.HasPrefix(line, "  "):
		p.blockLines = append(p.blockLines, line[2:])
		return true
	case line[0] == '\t':
		p.blockLines = append(p.blockLines, line[1:])
		return true
	}
	p.commitBlockScalar()
	p.state = stateScalar
	return false
}

func (p *parser) commitBlockScalar() {
	lines := p.blockLines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	p.block.Set(p.blockKey, scalarValue(p.blockKey, strings.Join(lines, "\n")))
}

func (p *parser) finish() {
	switch p.state {
	case stateTools:
		p.commitTools()
	case stateBlockScalar:
		p.commitBlockScalar()
	}
	p.state = stateScalar

	if s, ok := p.block.Get(ToolsKey).(Scalar); ok {
		p.block.Set(ToolsKey, SplitList(string(s)))
	}
}

func scalarValue(key, value string) Value {
	if key == TemperatureKey {
		if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Number(f)
		}
	}
	return Scalar(value)
}

// SplitList splits a legacy comma separated tools value. A surrounding flow
// sequence `[a, b]` is unwrapped and empty elements are dropped.
func SplitList(s string) StringList {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		s = s[1 : len(s)-1]
	}

	list := StringList{}
	for _, item := range strings.Split(s, ",") {
		if item = unquote(strings.TrimSpace(item)); item != "" {
			list = append(list, item)
		}
	}
	return list
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}

	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		inner := s[1 : len(s)-1]
		var sb strings.Builder
		for i := 0; i < len(inner); i++ {
			c := inner[i]
			if c == '\\' && i+1 < len(inner) {
				i++
				switch inner[i] {
				case 'n':
					sb.WriteByte('\n')
				case 't':
					sb.WriteByte('\t')
				default:
					sb.WriteByte(inner[i])
				}
				continue
			}
			sb.WriteByte(c)
		}
		return sb.String()
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
