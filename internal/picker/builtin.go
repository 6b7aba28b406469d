package picker

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/quantmind-br/gitpick/internal/domain"
	"github.com/quantmind-br/gitpick/internal/utils"
)

// defaultBuiltinHeight is the option-list height of the in-process picker
const defaultBuiltinHeight = 15

// BuiltinPicker is an in-process multi-select for hosts without an
// external picker binary. It honors the same three-way contract as
// FzfPicker, so callers never learn which picker ran.
type BuiltinPicker struct {
	height int
	log    *utils.Logger
}

var _ domain.Picker = (*BuiltinPicker)(nil)

// BuiltinOptions contains options for creating a BuiltinPicker
type BuiltinOptions struct {
	Height int
	Logger *utils.Logger
}

// NewBuiltinPicker creates an in-process picker
func NewBuiltinPicker(opts BuiltinOptions) *BuiltinPicker {
	if opts.Height <= 0 {
		opts.Height = defaultBuiltinHeight
	}

	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}

	return &BuiltinPicker{
		height: opts.Height,
		log:    log.WithComponent("picker"),
	}
}

// Select runs a filterable multi-select over the items
func (p *BuiltinPicker) Select(ctx context.Context, items []string) ([]string, error) {
	if len(items) == 0 {
		return []string{}, nil
	}

	p.log.Debug().Int("items", len(items)).Msg("Launching builtin picker")

	var chosen []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Pick files to download").
				Options(huh.NewOptions(items...)...).
				Filterable(true).
				Height(p.height).
				Value(&chosen),
		),
	).WithTheme(GetTheme())

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
			return nil, domain.ErrPickerInterrupted
		}
		return nil, domain.NewOtherError(fmt.Sprintf("a file was not chosen: %s", err))
	}

	if chosen == nil {
		chosen = []string{}
	}

	p.log.Debug().Int("chosen", len(chosen)).Msg("Picker finished")
	return chosen, nil
}
