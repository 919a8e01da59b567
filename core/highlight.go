package core

import (
	"errors"
	"fmt"

	"github.com/pynyc/tripmap/internal/contract"
)

// ErrNoSuchFeature is returned when a selection refers to a layer that is not on the overlay.
var ErrNoSuchFeature = errors.New("no such feature")

// idle marks that no layer is highlighted.
const idle = -1

// Highlighter owns the single-selection highlight state of an overlay.
// It is not safe for concurrent use; callers dispatch UI events one at a time.
type Highlighter struct {
	overlay contract.Overlay
	styler  Styler
	current int
}

// NewHighlighter creates a highlighter in the idle state.
func NewHighlighter(overlay contract.Overlay, styler Styler) *Highlighter {
	return &Highlighter{overlay: overlay, styler: styler, current: idle}
}

// Select highlights layer i. Any previously highlighted layer is reset to its base
// style first, so at most one layer is ever highlighted.
func (h *Highlighter) Select(i int) error {
	if i < 0 || i >= h.overlay.Len() {
		return fmt.Errorf("select %d of %d: %w", i, h.overlay.Len(), ErrNoSuchFeature)
	}
	if h.current != idle {
		h.overlay.SetStyle(h.current, h.styler.Base(h.overlay.Feature(h.current)))
	}
	f := h.overlay.Feature(i)
	h.overlay.SetStyle(i, h.styler.Highlight(f))
	h.overlay.BringToFront(i)
	h.overlay.OpenPopup(i, PopupContent(f))
	h.current = i
	return nil
}

// Reset restores every layer to a freshly computed base style and returns to idle.
func (h *Highlighter) Reset() {
	for i := range h.overlay.Len() {
		h.overlay.SetStyle(i, h.styler.Base(h.overlay.Feature(i)))
	}
	h.current = idle
}

// Current returns the highlighted layer index, if any.
func (h *Highlighter) Current() (int, bool) {
	return h.current, h.current != idle
}
