package format

import (
	"slices"
	"strings"

	"github.com/yaklabco/cssfmt/pkg/config"
	"github.com/yaklabco/cssfmt/pkg/syntax"
)

// smacssOrder groups properties by box, border, background, text and
// other, following the SMACSS convention.
var smacssOrder = rankOf([]string{
	"display", "position", "top", "right", "bottom", "left", "inset",
	"flex", "flex-basis", "flex-direction", "flex-flow", "flex-grow", "flex-shrink", "flex-wrap",
	"align-content", "align-items", "align-self", "justify-content", "order",
	"grid", "grid-area", "grid-template", "grid-template-areas", "grid-template-rows",
	"grid-template-columns", "grid-row", "grid-row-start", "grid-row-end", "grid-column",
	"grid-column-start", "grid-column-end", "grid-auto-rows", "grid-auto-columns", "grid-auto-flow",
	"gap", "row-gap", "column-gap",
	"float", "clear", "box-sizing",
	"width", "min-width", "max-width", "height", "min-height", "max-height",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"overflow", "overflow-x", "overflow-y", "z-index", "visibility", "columns", "column-count",
	"border", "border-top", "border-right", "border-bottom", "border-left",
	"border-width", "border-style", "border-color", "border-radius",
	"border-top-left-radius", "border-top-right-radius", "border-bottom-right-radius",
	"border-bottom-left-radius", "border-image", "border-collapse", "border-spacing",
	"outline", "outline-width", "outline-style", "outline-color", "outline-offset",
	"box-shadow", "opacity",
	"background", "background-color", "background-image", "background-repeat",
	"background-position", "background-size", "background-attachment", "background-clip",
	"background-origin",
	"color", "font", "font-family", "font-size", "font-style", "font-weight", "font-variant",
	"line-height", "letter-spacing", "word-spacing", "text-align", "text-decoration",
	"text-indent", "text-overflow", "text-transform", "text-shadow", "white-space",
	"word-break", "word-wrap", "overflow-wrap", "vertical-align", "list-style",
	"list-style-type", "list-style-position", "list-style-image", "quotes", "content",
	"cursor", "pointer-events", "user-select", "resize",
	"transform", "transform-origin", "transition", "transition-property",
	"transition-duration", "transition-timing-function", "transition-delay",
	"animation", "animation-name", "animation-duration", "animation-timing-function",
	"animation-delay", "animation-iteration-count", "animation-direction",
	"animation-fill-mode", "animation-play-state", "will-change",
})

// concentricOrder goes from the outside of the box to the inside.
var concentricOrder = rankOf([]string{
	"all", "display", "position", "top", "right", "bottom", "left", "inset", "z-index",
	"float", "clear", "columns", "column-count", "column-gap",
	"flex", "flex-basis", "flex-direction", "flex-flow", "flex-grow", "flex-shrink", "flex-wrap",
	"grid", "grid-area", "grid-template", "grid-template-areas", "grid-template-rows",
	"grid-template-columns", "grid-row", "grid-column", "grid-auto-flow", "gap",
	"align-content", "align-items", "align-self", "justify-content", "justify-items",
	"justify-self", "order",
	"transform", "transform-origin", "transition", "animation",
	"visibility", "opacity", "box-sizing", "box-shadow",
	"margin", "margin-top", "margin-right", "margin-bottom", "margin-left",
	"outline", "outline-offset", "outline-width", "outline-style", "outline-color",
	"border", "border-top", "border-right", "border-bottom", "border-left",
	"border-width", "border-style", "border-color", "border-radius", "border-image",
	"background", "background-color", "background-image", "background-repeat",
	"background-position", "background-size", "background-clip",
	"padding", "padding-top", "padding-right", "padding-bottom", "padding-left",
	"width", "min-width", "max-width", "height", "min-height", "max-height",
	"overflow", "overflow-x", "overflow-y",
	"list-style", "caption-side", "table-layout", "border-collapse", "border-spacing",
	"empty-cells", "vertical-align", "text-align", "text-indent", "text-transform",
	"text-decoration", "text-shadow", "text-overflow", "letter-spacing", "word-spacing",
	"white-space", "word-break", "overflow-wrap", "color", "font", "font-family",
	"font-size", "font-style", "font-weight", "font-variant", "line-height",
	"quotes", "content", "cursor", "pointer-events", "user-select", "resize",
})

func rankOf(names []string) map[string]int {
	rank := make(map[string]int, len(names))
	for idx, name := range names {
		if _, seen := rank[name]; !seen {
			rank[name] = idx
		}
	}
	return rank
}

// unprefixed strips a vendor prefix such as -webkit- from a property name.
func unprefixed(name string) string {
	if !strings.HasPrefix(name, "-") || strings.HasPrefix(name, "--") {
		return name
	}
	if idx := strings.IndexByte(name[1:], '-'); idx >= 0 {
		return name[idx+2:]
	}
	return name
}

// sortKey returns the property name of a sortable declaration unit.
func sortKey(current unit) (string, bool) {
	decl, ok := current.stmt.(*syntax.Declaration)
	if !ok || current.ignore {
		return "", false
	}
	name := identName(decl.Name)
	if name == "" {
		return "", false
	}
	return strings.ToLower(name), true
}

// sortDeclarations reorders runs of adjacent declarations according to
// declarationOrder. Any other statement ends a run, and so does a blank
// line when grouping by empty lines. Units keep their comments.
func (c *ctx) sortDeclarations(units []unit) []unit {
	order := c.options.DeclarationOrder
	if order == config.DeclarationOrderNone || len(units) < 2 {
		return units
	}
	byEmptyLine := c.options.DeclarationOrderGroupBy == config.DeclarationOrderGroupByNonDeclarationAndEmptyLine

	sorted := slices.Clone(units)
	runStart := -1
	flush := func(end int) {
		if runStart >= 0 && end-runStart > 1 {
			c.sortRun(sorted[runStart:end], order)
		}
		runStart = -1
	}

	for idx, current := range sorted {
		_, sortable := sortKey(current)
		switch {
		case !sortable:
			flush(idx)
		case runStart < 0:
			runStart = idx
		case byEmptyLine && unitStartsWithBlank(current):
			flush(idx)
			runStart = idx
		}
	}
	flush(len(sorted))

	return sorted
}

func unitStartsWithBlank(current unit) bool {
	if len(current.leading) > 0 {
		return current.leading[0].blankBefore
	}
	return current.blankBefore
}

// sortRun sorts one run in place. Blank lines inside the run are dropped;
// the run keeps the blank line that preceded it.
func (c *ctx) sortRun(run []unit, order config.DeclarationOrder) {
	blank := unitStartsWithBlank(run[0])

	slices.SortStableFunc(run, func(a, b unit) int {
		nameA, _ := sortKey(a)
		nameB, _ := sortKey(b)
		return compareProperties(order, nameA, nameB)
	})

	for idx := range run {
		run[idx].blankBefore = false
		if len(run[idx].leading) > 0 {
			leading := slices.Clone(run[idx].leading)
			leading[0].blankBefore = false
			run[idx].leading = leading
		}
	}
	if len(run[0].leading) > 0 {
		run[0].leading[0].blankBefore = blank
	} else {
		run[0].blankBefore = blank
	}
}

func compareProperties(order config.DeclarationOrder, nameA, nameB string) int {
	baseA, baseB := unprefixed(nameA), unprefixed(nameB)
	if order != config.DeclarationOrderAlphabetical {
		ranks := smacssOrder
		if order == config.DeclarationOrderConcentric {
			ranks = concentricOrder
		}
		rankA, knownA := ranks[baseA]
		rankB, knownB := ranks[baseB]
		switch {
		case knownA && knownB && rankA != rankB:
			return rankA - rankB
		case knownA != knownB:
			if knownA {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(baseA, baseB)
}
