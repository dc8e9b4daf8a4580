/*
Package widget implements tooltips and popovers on top of the popper
positioning engine.

A widget is bound to a trigger element. Showing it builds the floating
markup, appends it to its container and hands it to a popper.Positioner
anchored at the trigger. Hiding disposes the positioner and detaches the
markup again. Widgets do no animation and bind no input events; callers
decide when to show and hide them.

Options may be given in code (TooltipSettings) or read from the trigger's
data-ui-* attributes, which is what AutoInit does for every element
carrying data-ui-toggle="tooltip" or data-ui-toggle="popover".
*/
package widget

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'vibeui.widget'.
func tracer() tracing.Trace {
	return tracing.Select("vibeui.widget")
}
