package app

import (
	"context"

	"github.com/specialistvlad/overhangs/internal/digest"
)

// Enzymes returns every known enzyme: the built-in table, plus the
// configured ones once Load has run.
func (a *App) Enzymes() []digest.Enzyme {
	if a.enzymes == nil {
		return digest.Builtin()
	}
	return a.enzymes.All()
}

// RunEnzymes renders the enzyme table.
func (a *App) RunEnzymes(_ context.Context) error {
	return a.render(func(r renderer) error { return r.enzymes(a.Enzymes()) })
}
