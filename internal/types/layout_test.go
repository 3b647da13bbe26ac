package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLayoutPreservesSiblingOrder(t *testing.T) {
	raw := `[{"id":"a","type":"bio"},{"id":"b","type":"spacer"},{"id":"c","type":"links"}]`
	sections, err := DecodeLayout([]byte(raw))
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "a", sections[0].ID)
	assert.Equal(t, "b", sections[1].ID)
	assert.Equal(t, "c", sections[2].ID)
}

func TestDecodeLayoutEmpty(t *testing.T) {
	sections, err := DecodeLayout(nil)
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestDecodeLayoutInvalidJSON(t *testing.T) {
	_, err := DecodeLayout([]byte(`{{`))
	assert.Error(t, err)
}

func TestDecodeLayoutDepthBound(t *testing.T) {
	// build a column chain deeper than the allowed maximum
	inner := `{"id":"leaf","type":"spacer"}`
	for i := 0; i < MaxLayoutDepth+1; i++ {
		inner = `{"id":"n","type":"column","children":[` + inner + `]}`
	}
	_, err := DecodeLayout([]byte("[" + inner + "]"))
	assert.ErrorIs(t, err, ErrLayoutTooDeep)
}

func TestDecodeLayoutSectionCountBound(t *testing.T) {
	entries := make([]string, MaxLayoutSections+1)
	for i := range entries {
		entries[i] = `{"id":"s","type":"spacer"}`
	}
	raw := "[" + strings.Join(entries, ",") + "]"
	_, err := DecodeLayout([]byte(raw))
	assert.ErrorIs(t, err, ErrLayoutTooLarge)
}

func TestSectionTypeKnown(t *testing.T) {
	assert.True(t, SectionBio.Known())
	assert.True(t, SectionPage.Known())
	assert.False(t, SectionType("hologram").Known())
}

func TestEncodeLayoutRoundTrip(t *testing.T) {
	sections := []LayoutSection{
		{ID: "a", Type: SectionTab, Children: []LayoutSection{{ID: "b", Type: SectionBio}}},
	}
	raw, err := EncodeLayout(sections)
	require.NoError(t, err)
	decoded, err := DecodeLayout(raw)
	require.NoError(t, err)
	assert.Equal(t, sections, decoded)
}
