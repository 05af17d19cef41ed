package parse

import (
	"regexp"
	"strings"
)

// dialectKind tags which parse strategy recognized the input
type dialectKind string

const (
	dialectHeaderBlock dialectKind = "headerBlock"
	dialectFlatAssoc   dialectKind = "flatAssoc"
)

// fields is the dialect-neutral output of a parse strategy
type fields struct {
	kind       dialectKind
	title      string
	values     map[string]string // recognized keys, lowercased
	extra      map[string]string // unrecognized keys, passed through
	acceptance []string
}

var fieldKeyRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_-]*$`)

// Keys recognized in the dialect A header block (matched case-insensitively).
var headerBlockKeys = map[string]bool{
	"status":  true,
	"story":   true,
	"created": true,
	"updated": true,
	"type":    true,
	"owner":   true,
	"related": true,
}

// Keys recognized in the dialect B association list (lowercase only).
var flatAssocKeys = map[string]bool{
	"id":         true,
	"story":      true,
	"title":      true,
	"status":     true,
	"created":    true,
	"updated":    true,
	"type":       true,
	"owner":      true,
	"related":    true,
	"acceptance": true,
	"notes":      true,
}

// tryFlatAssoc parses the dialect B shape: a flat field-per-line
// association list where acceptance introduces indented bullet children.
// Recognition keys off a lowercase `id:` line at column zero.
func tryFlatAssoc(text string) (*fields, bool) {
	lines := strings.Split(text, "\n")

	recognized := false
	for _, line := range lines {
		if strings.HasPrefix(line, "id:") {
			recognized = true
			break
		}
	}
	if !recognized {
		return nil, false
	}

	f := &fields{
		kind:   dialectFlatAssoc,
		values: make(map[string]string),
		extra:  make(map[string]string),
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if line == "" || line[0] == ' ' || line[0] == '\t' || line[0] == '-' {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if !fieldKeyRE.MatchString(key) {
			continue
		}

		switch {
		case key == "acceptance":
			// child bullets at deeper indentation, until the text
			// returns to column zero
			for i+1 < len(lines) {
				child := lines[i+1]
				if child == "" || (child[0] != ' ' && child[0] != '\t') {
					break
				}
				item := strings.TrimSpace(child)
				item = strings.TrimPrefix(item, "- ")
				if item != "" {
					f.acceptance = append(f.acceptance, item)
				}
				i++
			}
		case key == "title":
			f.title = value
		case flatAssocKeys[key]:
			f.values[key] = value
		default:
			f.extra[key] = value
		}
	}

	return f, true
}

// tryHeaderBlock parses the dialect A shape: an optional `# ` title
// heading followed by a `Key: value` block terminated by a blank line or
// a `## ` heading. Keys match case-insensitively.
func tryHeaderBlock(text string) (*fields, bool) {
	lines := strings.Split(text, "\n")

	f := &fields{
		kind:   dialectHeaderBlock,
		values: make(map[string]string),
		extra:  make(map[string]string),
	}

	recognized := false
	inHeader := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "# ") && !inHeader && f.title == "" {
			f.title = strings.TrimSpace(trimmed[2:])
			continue
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "## ") {
			if inHeader {
				break
			}
			continue
		}

		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			if inHeader {
				break
			}
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if !fieldKeyRE.MatchString(key) {
			if inHeader {
				break
			}
			continue
		}

		if headerBlockKeys[key] {
			f.values[key] = value
			recognized = true
			inHeader = true
		} else if inHeader {
			f.extra[key] = value
		}
	}

	if !recognized {
		return nil, false
	}
	return f, true
}

// strategies is the fixed trial order: the flat association list is
// keyed off its mandatory id field, so it goes first; the header block
// accepts anything with at least one recognized key.
var strategies = []func(string) (*fields, bool){
	tryFlatAssoc,
	tryHeaderBlock,
}
