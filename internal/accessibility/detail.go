package accessibility

import (
	"fmt"
	"regexp"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

// Column value types with dedicated rendering.
const (
	ValueTypeThumbnail = "thumbnail"
	ValueTypeURL       = "url"
)

// explanationIndent matches one or two two-space indents at the start of a line.
var explanationIndent = regexp.MustCompile(`(?m)^( {2}){1,2}`)

// FormatDetail renders the cell for heading h in item as zero or more lines of
// Markdown-flavored text. Primitive values in columns without a dedicated
// value type produce no lines.
func FormatDetail(h schemas.Heading, item schemas.Item) ([]string, error) {
	value := item[h.Key]

	switch h.Type() {
	case ValueTypeThumbnail:
		return linkCell(h, value, "[![](%[1]s)](%[1]s)")
	case ValueTypeURL:
		return linkCell(h, value, "[%[1]s](%[1]s)")
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, nil
	}

	var lines []string

	code, found, err := firstText(obj, "snippet", "selector")
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", h.Key, err)
	}
	if found {
		lines = append(lines, "```\n"+code+"\n```")
	}

	explanation, found, err := textField(obj, "explanation")
	if err != nil {
		return nil, fmt.Errorf("column %q: %w", h.Key, err)
	}
	if found {
		lines = append(lines, FormatExplanation(explanation))
	}

	return lines, nil
}

// FormatExplanation rewrites indented sub-lines of an explanation as Markdown list items.
func FormatExplanation(explanation string) string {
	return explanationIndent.ReplaceAllString(explanation, "- ")
}

func linkCell(h schemas.Heading, value any, layout string) ([]string, error) {
	if value == nil {
		return nil, nil
	}
	text, err := primitiveText(value)
	if err != nil {
		return nil, fmt.Errorf("column %q (%s): %w", h.Key, h.Type(), err)
	}
	return []string{fmt.Sprintf(layout, text)}, nil
}

func primitiveText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool, float64, float32, int, int64, int32:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("%w: expected a primitive value, got %T", ErrMalformedDetail, value)
	}
}

// firstText returns the first of keys present in obj.
func firstText(obj map[string]any, keys ...string) (string, bool, error) {
	for _, key := range keys {
		text, found, err := textField(obj, key)
		if err != nil || found {
			return text, found, err
		}
	}
	return "", false, nil
}

func textField(obj map[string]any, key string) (string, bool, error) {
	raw, present := obj[key]
	if !present || raw == nil {
		return "", false, nil
	}
	text, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("%w: field %q is %T, not text", ErrMalformedDetail, key, raw)
	}
	return text, true, nil
}
