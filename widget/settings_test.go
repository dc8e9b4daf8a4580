package widget

import (
	"testing"

	"github.com/chrisuehlinger/vibeui/popper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTooltipSettingsFromDataset(t *testing.T) {
	doc := load(t, `<html><body>
		<div id="a" title="plain" data-ui-placement="bottom" data-ui-position="end"
			data-ui-spacing="4px" data-ui-min-contact="12" data-ui-fixed data-ui-use-gpu="false"></div>
		<div id="b" title="plain" data-ui-title="Fancy" data-ui-content="More"></div>
	</body></html>`)

	s, err := TooltipSettingsFromDataset(doc.GetElementById("a"), DefaultTooltipSettings())
	require.NoError(t, err)
	assert.Equal(t, "plain", s.Title)
	assert.Equal(t, popper.Bottom, s.Placement)
	assert.Equal(t, popper.End, s.Position)
	assert.Equal(t, 4.0, s.Spacing)
	require.NotNil(t, s.MinContact)
	assert.Equal(t, 12.0, *s.MinContact)
	assert.True(t, s.Fixed)
	assert.False(t, s.UseGPU)

	s, err = TooltipSettingsFromDataset(doc.GetElementById("b"), DefaultPopoverSettings())
	require.NoError(t, err)
	assert.Equal(t, "Fancy", s.Title)
	assert.Equal(t, "More", s.Content)
	assert.Equal(t, popper.Right, s.Placement)
	assert.Equal(t, 8.0, s.Spacing)
	assert.True(t, s.UseGPU)
	assert.Nil(t, s.MinContact)
}

func TestTooltipSettingsFromDatasetInvalid(t *testing.T) {
	doc := load(t, `<html><body>
		<div id="placement" data-ui-placement="middle"></div>
		<div id="spacing" data-ui-spacing="wide"></div>
		<div id="fixed" data-ui-fixed="maybe"></div>
	</body></html>`)

	for _, id := range []string{"placement", "spacing", "fixed"} {
		base := DefaultTooltipSettings()
		s, err := TooltipSettingsFromDataset(doc.GetElementById(id), base)
		assert.ErrorIs(t, err, ErrInvalidOption, id)
		assert.Equal(t, base, s, "%s: base settings are returned on error", id)
	}
}

func TestAutoInit(t *testing.T) {
	doc := load(t, `<html><body style="margin: 0">
		<div id="tip" data-ui-toggle="tooltip" title="Hi" data-ui-placement="bottom"
			style="margin-top: 100px; width: 40px; height: 20px"></div>
		<div id="pop" data-ui-toggle="popover" data-ui-title="T" data-ui-content="Body"
			style="width: 40px; height: 20px"></div>
		<div id="bad" data-ui-toggle="tooltip" data-ui-position="sideways"></div>
		<div id="other" data-ui-toggle="collapse"></div>
	</body></html>`)

	widgets, err := AutoInit(doc)
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Contains(t, err.Error(), "div#bad")
	require.Len(t, widgets, 2)

	tip, ok := widgets[0].(*Tooltip)
	require.True(t, ok)
	assert.Equal(t, "tip", tip.Trigger().Id())
	require.NoError(t, tip.Show())
	assert.Equal(t, popper.Bottom, tip.Positioner().Placement())
	assert.Equal(t, "Hi", tip.Element().Children()[1].TextContent())

	pop, ok := widgets[1].(*Popover)
	require.True(t, ok)
	assert.Equal(t, "pop", pop.Trigger().Id())
	require.NoError(t, pop.Show())
	assert.Equal(t, popper.Right, pop.Positioner().Placement())

	for _, w := range widgets {
		w.Dispose()
	}
}
