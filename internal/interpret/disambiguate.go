package interpret

import (
	"github.com/haricheung/blockshell/internal/grammar"
	"github.com/haricheung/blockshell/internal/world"
)

// "the" promises a unique referent. After the formula is built, each
// the-quantified top-level entity is checked against the argument column
// it binds in the DNF; more than one distinct identifier there means the
// utterance underdetermines the referent and the user must choose.

// checkClarifications runs the "the" uniqueness checks over a built DNF.
func checkClarifications(cmd *grammar.Command, dnf DNF, s *world.State) error {
	between := cmd.Location != nil && cmd.Location.Relation == world.RelBetween

	// Conjunction-count threshold: between bindings appear once per
	// reference ordering, so pairs of conjunctions describe one choice.
	threshold := 1
	strides := [][2]int{{0, 1}}
	if between {
		threshold = 2
		strides = [][2]int{{0, 2}, {1, 2}}
	}
	if len(dnf) <= threshold {
		return nil
	}

	if cmd.Entity != nil && cmd.Entity.Quantifier == grammar.QuantThe {
		if err := clarifyColumn(dnf, strides, 0, s); err != nil {
			return err
		}
	}
	if cmd.Location == nil {
		return nil
	}
	if cmd.Location.Entity.Quantifier == grammar.QuantThe {
		if err := clarifyColumn(dnf, strides, 1, s); err != nil {
			return err
		}
	}
	if between && cmd.Location.Entity2.Quantifier == grammar.QuantThe {
		if err := clarifyColumn(dnf, strides, 2, s); err != nil {
			return err
		}
	}
	return nil
}

// clarifyColumn walks the DNF with the given strides, collecting the
// distinct identifiers bound in the given argument column of each
// conjunction's first literal. Two or more distinct identifiers raise a
// clarification listing their full "the size color form" descriptions;
// two identifiers collapsing to the same description cannot be told
// apart by words at all and raise the description collision instead.
func clarifyColumn(dnf DNF, strides [][2]int, column int, s *world.State) error {
	var ids []string
	seen := make(map[string]bool)
	for _, stride := range strides {
		for i := stride[0]; i < len(dnf); i += stride[1] {
			first := dnf[i][0]
			if column >= len(first.Args) {
				continue
			}
			id := first.Args[column]
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if len(ids) < 2 {
		return nil
	}

	var descs []string
	byDesc := make(map[string]string)
	for _, id := range ids {
		def, ok := s.Definition(id)
		if !ok {
			continue
		}
		desc := "the " + def.String()
		if other, clash := byDesc[desc]; clash && other != id {
			return &world.AmbiguousDescriptionError{Description: def.String()}
		}
		byDesc[desc] = id
		descs = append(descs, desc)
	}
	return &ClarificationError{Kind: ClarifyAmbiguity, Descriptions: descs}
}
