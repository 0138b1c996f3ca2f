package ui

import (
	"sort"

	"github.com/desertthunder/presetx/internal/models"
)

const noIndex = -1

// row is one visible line of the list: a preset, or one of its sounds when the preset is expanded.
type row struct {
	preset int
	sound  int // noIndex for preset rows
}

func (r row) isPreset() bool { return r.sound == noIndex }

// soundRef addresses a sound by position in the loaded list.
type soundRef struct {
	preset int
	sound  int
}

// expansion is the set of expanded preset positions.
type expansion map[int]struct{}

func (e expansion) has(i int) bool {
	_, ok := e[i]
	return ok
}

func (e expansion) toggle(i int) {
	if e.has(i) {
		delete(e, i)
		return
	}
	e[i] = struct{}{}
}

// without returns the set as it should look after the preset at deleted is removed.
//
// Positions below deleted stay, deleted is dropped, and positions above shift down by one.
func (e expansion) without(deleted int) expansion {
	next := make(expansion, len(e))
	for i := range e {
		switch {
		case i < deleted:
			next[i] = struct{}{}
		case i > deleted:
			next[i-1] = struct{}{}
		}
	}
	return next
}

// sorted returns the expanded positions in ascending order.
func (e expansion) sorted() []int {
	out := make([]int, 0, len(e))
	for i := range e {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// flatten lists the visible rows for presets under the given expansion.
func flatten(presets []models.Preset, expanded expansion) []row {
	rows := make([]row, 0, len(presets))
	for i, p := range presets {
		rows = append(rows, row{preset: i, sound: noIndex})
		if !expanded.has(i) {
			continue
		}
		for j := range p.Sounds {
			rows = append(rows, row{preset: i, sound: j})
		}
	}
	return rows
}
