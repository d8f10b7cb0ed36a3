package showcase

import (
	"github.com/milk9111/petshow/component"
	"github.com/milk9111/petshow/pet"
)

// ButtonGroup is the set of trigger buttons shown next to one pet.
type ButtonGroup interface {
	pet.Highlighter
	// OnClick registers the handler called with the clicked animation name.
	OnClick(fn func(animation string))
	// Press shows or clears the pressed effect on one button.
	Press(animation string, pressed bool)
}

// Visibility reports when a pet first scrolls or resizes into view.
type Visibility interface {
	// OnEnter subscribes fn and returns a function that unsubscribes it.
	OnEnter(fn func()) (cancel func())
	Reveal()
}

// Surface is the presentation layer the coordinator wires pets into.
type Surface interface {
	// Handles resolves the rendering handles named by cfg. A missing handle
	// is a configuration error.
	Handles(cfg component.PetConfig) (pet.Handles, error)
	// Buttons returns nil when the pet has no trigger buttons.
	Buttons(id string) ButtonGroup
	// Visibility returns nil when reveal effects are not supported.
	Visibility(id string) Visibility
}
