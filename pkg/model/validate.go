package model

import (
	"errors"
	"fmt"
)

var errNoFields = errors.New("model: form has no fields")

// Validate checks the structural invariants of a form definition: non-empty
// unique field IDs, known field types, and resolvable conditional logic.
// Self-referencing or cyclic logic chains are rejected here so the response
// engine never has to evaluate them.
func (f Form) Validate() error {
	if len(f.Fields) == 0 {
		return errNoFields
	}

	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field.ID == "" {
			return fmt.Errorf("model: field %q has no id", field.Label)
		}
		if _, dup := seen[field.ID]; dup {
			return fmt.Errorf("model: duplicate field id %q", field.ID)
		}
		seen[field.ID] = struct{}{}
		if !field.Type.Known() {
			return fmt.Errorf("model: field %q has unknown type %q", field.ID, field.Type)
		}
	}

	dependsOn := make(map[string]string, len(f.Fields))
	for _, field := range f.Fields {
		if field.Logic == nil || field.Logic.ShowWhenFieldID == "" {
			continue
		}
		target := field.Logic.ShowWhenFieldID
		if target == field.ID {
			return fmt.Errorf("model: field %q logic references itself", field.ID)
		}
		if _, ok := seen[target]; !ok {
			return fmt.Errorf("model: field %q logic references unknown field %q", field.ID, target)
		}
		dependsOn[field.ID] = target
	}

	// Each field depends on at most one other, so cycle detection is a
	// plain chain walk.
	for start := range dependsOn {
		visited := map[string]struct{}{start: {}}
		current := start
		for {
			next, ok := dependsOn[current]
			if !ok {
				break
			}
			if _, seen := visited[next]; seen {
				return fmt.Errorf("model: field %q is part of a logic cycle", start)
			}
			visited[next] = struct{}{}
			current = next
		}
	}

	return nil
}
