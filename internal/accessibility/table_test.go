package accessibility

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/a11y-lighthouse/api/schemas"
)

func TestBuildTable_SingleColumnExpansion(t *testing.T) {
	t.Parallel()
	audit := rawAudit("image-alt", 1, 0, &schemas.Details{
		Headings: []schemas.Heading{{Key: "k", Text: "Col"}},
		Items: []schemas.Item{
			{"k": map[string]any{"snippet": "<img>", "explanation": "Fix this"}},
		},
	})

	table, err := BuildTable(audit)
	require.NoError(t, err)

	want := schemas.Table{
		{"Col", "Explanation"},
		{"```\n<img>\n```", "Fix this"},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("BuildTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTable_ExplanationHeaderAddedOnce(t *testing.T) {
	t.Parallel()
	audit := rawAudit("color-contrast", 1, 0, &schemas.Details{
		Headings: []schemas.Heading{{Key: "node", Label: "Failing Elements"}},
		Items: []schemas.Item{
			{"node": map[string]any{"snippet": "<p>", "explanation": "one"}},
			{"node": map[string]any{"selector": "div", "explanation": "two"}},
			{"node": map[string]any{"selector": "span"}},
		},
	})

	table, err := BuildTable(audit)
	require.NoError(t, err)

	want := schemas.Table{
		{"Failing Elements", "Explanation"},
		{"```\n<p>\n```", "one"},
		{"```\ndiv\n```", "two"},
		// Single-line cells are not expanded, so this row stays narrower than the header.
		{"```\nspan\n```"},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("BuildTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildTable_MultiColumnJoinsLines(t *testing.T) {
	t.Parallel()
	audit := rawAudit("link-name", 1, 0, &schemas.Details{
		Headings: []schemas.Heading{
			{Key: "node", ValueType: "node", Text: "Element"},
			{Key: "url", ValueType: "url", Label: "URL"},
			{Key: "thumb", ValueType: "thumbnail"},
			{Key: "size", ValueType: "bytes", Label: "Size"},
		},
		Items: []schemas.Item{
			{
				"node":  map[string]any{"snippet": "<a>", "explanation": "Fix:\n  name it"},
				"url":   "https://example.com/a",
				"thumb": "https://example.com/a.png",
				"size":  float64(2048),
			},
		},
	})

	table, err := BuildTable(audit)
	require.NoError(t, err)

	want := schemas.Table{
		{"Element", "URL", "", "Size"},
		{
			"```\n<a>\n```\nFix:\n- name it",
			"[https://example.com/a](https://example.com/a)",
			"[![](https://example.com/a.png)](https://example.com/a.png)",
			"",
		},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("BuildTable() mismatch (-want +got):\n%s", diff)
	}
	for _, row := range table {
		assert.Len(t, row, 4, "multi-column rows are uniform")
	}
}

func TestBuildTable_NoTable(t *testing.T) {
	t.Parallel()

	t.Run("nil details", func(t *testing.T) {
		_, err := BuildTable(rawAudit("a", 1, 1, nil))
		assert.ErrorIs(t, err, ErrNoEvidence)
	})

	t.Run("empty items", func(t *testing.T) {
		_, err := BuildTable(rawAudit("a", 1, 1, &schemas.Details{
			Headings: []schemas.Heading{{Key: "k"}},
			Items:    []schemas.Item{},
		}))
		assert.ErrorIs(t, err, ErrNoEvidence)
	})

	t.Run("missing headings", func(t *testing.T) {
		table, err := BuildTable(rawAudit("a", 1, 1, &schemas.Details{
			Items: []schemas.Item{{"k": "v"}},
		}))
		assert.ErrorIs(t, err, ErrMalformedDetail)
		assert.Nil(t, table)
	})

	t.Run("null item", func(t *testing.T) {
		_, err := BuildTable(rawAudit("a", 1, 1, &schemas.Details{
			Headings: []schemas.Heading{{Key: "k"}},
			Items:    []schemas.Item{nil},
		}))
		assert.ErrorIs(t, err, ErrMalformedDetail)
	})

	t.Run("malformed field", func(t *testing.T) {
		_, err := BuildTable(rawAudit("a", 1, 1, &schemas.Details{
			Headings: []schemas.Heading{{Key: "k"}},
			Items:    []schemas.Item{{"k": map[string]any{"snippet": []any{"x"}}}},
		}))
		assert.ErrorIs(t, err, ErrMalformedDetail)
	})
}
