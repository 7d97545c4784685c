package world

import "fmt"

// AmbiguousDescriptionError is returned when two distinct objects are
// indistinguishable even by their full size+color+form description, so no
// unique phrase can name either of them.
type AmbiguousDescriptionError struct {
	Description string
}

func (e *AmbiguousDescriptionError) Error() string {
	return fmt.Sprintf("description %q matches more than one object", e.Description)
}

// MinimalDescription returns the shortest attribute phrase — "form",
// "color form", or "size color form" — that uniquely names id among every
// object currently in the world.
func MinimalDescription(id string, s *State) (string, error) {
	def, ok := s.Definition(id)
	if !ok {
		return "", fmt.Errorf("unknown object %q", id)
	}
	if id == FloorID {
		return string(FormFloor), nil
	}

	tries := []ObjectDefinition{
		{Form: def.Form},
		{Form: def.Form, Color: def.Color},
		{Form: def.Form, Color: def.Color, Size: def.Size},
	}
	for _, desc := range tries {
		if s.countMatching(desc) == 1 {
			return desc.String(), nil
		}
	}
	// Even the full description collides with another object.
	return "", &AmbiguousDescriptionError{Description: def.String()}
}

// countMatching counts present objects (stacked or held) admitted by desc.
func (s *State) countMatching(desc ObjectDefinition) int {
	n := 0
	for _, id := range s.Existing() {
		if id == FloorID {
			continue
		}
		def, _ := s.Definition(id)
		if MatchesDescriptor(desc, def) {
			n++
		}
	}
	return n
}
