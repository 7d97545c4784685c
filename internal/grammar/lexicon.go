package grammar

import (
	"strings"

	"github.com/haricheung/blockshell/internal/world"
)

// Recognized vocabulary. Multi-word phrases (relation names, "pick up")
// are matched token-wise by the parser; everything here is single tokens.

var quantifiers = map[string]Quantifier{
	"the":   QuantThe,
	"a":     QuantAny,
	"an":    QuantAny,
	"any":   QuantAny,
	"all":   QuantAll,
	"every": QuantAll,
}

var sizes = map[string]world.Size{
	"small": world.SizeSmall,
	"tiny":  world.SizeSmall,
	"large": world.SizeLarge,
	"big":   world.SizeLarge,
}

var colors = map[string]world.Color{
	"black":  world.ColorBlack,
	"white":  world.ColorWhite,
	"red":    world.ColorRed,
	"green":  world.ColorGreen,
	"blue":   world.ColorBlue,
	"yellow": world.ColorYellow,
}

var forms = map[string]world.Form{
	"brick":    world.FormBrick,
	"bricks":   world.FormBrick,
	"plank":    world.FormPlank,
	"planks":   world.FormPlank,
	"ball":     world.FormBall,
	"balls":    world.FormBall,
	"box":      world.FormBox,
	"boxes":    world.FormBox,
	"pyramid":  world.FormPyramid,
	"pyramids": world.FormPyramid,
	"table":    world.FormTable,
	"tables":   world.FormTable,
	"object":   world.FormAny,
	"objects":  world.FormAny,
	"thing":    world.FormAny,
	"things":   world.FormAny,
	"form":     world.FormAny,
	"forms":    world.FormAny,
	"floor":    world.FormFloor,
	"ground":   world.FormFloor,
}

// relationPhrases is ordered longest-first so "on top of" wins over "on".
var relationPhrases = []struct {
	tokens []string
	rel    world.Relation
}{
	{[]string{"to", "the", "left", "of"}, world.RelLeftOf},
	{[]string{"to", "the", "right", "of"}, world.RelRightOf},
	{[]string{"on", "top", "of"}, world.RelOnTop},
	{[]string{"left", "of"}, world.RelLeftOf},
	{[]string{"right", "of"}, world.RelRightOf},
	{[]string{"next", "to"}, world.RelBeside},
	{[]string{"beside"}, world.RelBeside},
	{[]string{"above"}, world.RelAbove},
	{[]string{"over"}, world.RelAbove},
	{[]string{"under"}, world.RelUnder},
	{[]string{"below"}, world.RelUnder},
	{[]string{"beneath"}, world.RelUnder},
	{[]string{"onto"}, world.RelOnTop},
	{[]string{"upon"}, world.RelOnTop},
	{[]string{"on"}, world.RelOnTop},
	{[]string{"inside"}, world.RelInside},
	{[]string{"into"}, world.RelInside},
	{[]string{"in"}, world.RelInside},
	{[]string{"between"}, world.RelBetween},
}

// relationWord renders a relation back to its canonical surface phrase.
var relationWord = map[world.Relation]string{
	world.RelLeftOf:  "left of",
	world.RelRightOf: "right of",
	world.RelBeside:  "beside",
	world.RelAbove:   "above",
	world.RelUnder:   "under",
	world.RelOnTop:   "on top of",
	world.RelInside:  "inside",
	world.RelBetween: "between",
	world.RelHolding: "holding",
}

// Tokenize lowercases the utterance, strips sentence punctuation, and
// splits on whitespace.
func Tokenize(input string) []string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '!', '?', ';':
			return ' '
		}
		return r
	}, strings.ToLower(input))
	return strings.Fields(clean)
}
