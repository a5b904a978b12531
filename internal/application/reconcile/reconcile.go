// Package reconcile merges persisted portfolio content onto the default
// baseline. The engine is total: malformed or missing remote halves fall
// back to defaults with a diagnostic log, never an error to the caller.
package reconcile

import (
	"go.uber.org/zap"

	"github.com/hoangvle/scholarfolio/internal/domain/defaults"
	"github.com/hoangvle/scholarfolio/internal/domain/profile"
	"github.com/hoangvle/scholarfolio/internal/domain/section"
	"github.com/hoangvle/scholarfolio/pkg/logger"
)

// State is the single consistent view both the public renderer and the
// admin editors read from.
type State struct {
	Profile  profile.Profile
	Sections []section.Section
}

type Engine struct {
	logger logger.Logger
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Reconcile overlays remote content onto the defaults. Per-id section
// merge keeps every default section even when the store has no record
// of it, and keeps every stored section unknown to the baseline by
// appending it after the merged defaults. Nothing is ever dropped: the
// result always holds at least as many sections as the baseline.
func (e *Engine) Reconcile(remoteProfile *profile.Profile, remoteSections []section.Section) State {
	state := State{
		Profile:  defaults.Profile(),
		Sections: defaults.Sections(),
	}

	if remoteProfile != nil {
		state.Profile = profile.Overlay(state.Profile, *remoteProfile)
	}

	if len(remoteSections) == 0 {
		return state
	}

	byID := make(map[string]section.Section, len(remoteSections))
	remoteOrder := make([]string, 0, len(remoteSections))
	for _, rs := range remoteSections {
		if rs.ID == "" {
			e.logger.Warn("skipping stored section without id", zap.String("title", rs.Title))
			continue
		}
		if _, dup := byID[rs.ID]; dup {
			e.logger.Warn("skipping stored section with duplicate id", zap.String("section_id", rs.ID))
			continue
		}
		byID[rs.ID] = rs
		remoteOrder = append(remoteOrder, rs.ID)
	}

	merged := make([]section.Section, 0, len(state.Sections)+len(remoteOrder))
	known := make(map[string]struct{}, len(state.Sections))
	for _, def := range state.Sections {
		known[def.ID] = struct{}{}
		if stored, ok := byID[def.ID]; ok {
			merged = append(merged, section.Overlay(def, stored))
		} else {
			merged = append(merged, def)
		}
	}

	for _, id := range remoteOrder {
		if _, ok := known[id]; ok {
			continue
		}
		extra := byID[id]
		if err := extra.Validate(); err != nil {
			e.logger.Warn("stored section unknown to baseline failed validation, keeping as-is",
				zap.String("section_id", id), zap.Error(err))
		}
		merged = append(merged, extra)
	}

	state.Sections = merged
	return state
}
