package world

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Built-in example worlds. The letter-coded inventory (two balls, three
// boxes, bricks, planks, pyramids, tables) is shared by small, medium and
// complex; they differ in which objects are out and how they are stacked.

var standardObjects = map[string]ObjectDefinition{
	"a": {Form: FormBrick, Size: SizeLarge, Color: ColorGreen},
	"b": {Form: FormBrick, Size: SizeSmall, Color: ColorWhite},
	"c": {Form: FormPlank, Size: SizeLarge, Color: ColorRed},
	"d": {Form: FormPlank, Size: SizeSmall, Color: ColorGreen},
	"e": {Form: FormBall, Size: SizeLarge, Color: ColorWhite},
	"f": {Form: FormBall, Size: SizeSmall, Color: ColorBlack},
	"g": {Form: FormTable, Size: SizeLarge, Color: ColorBlue},
	"h": {Form: FormTable, Size: SizeSmall, Color: ColorRed},
	"i": {Form: FormPyramid, Size: SizeLarge, Color: ColorYellow},
	"j": {Form: FormPyramid, Size: SizeSmall, Color: ColorRed},
	"k": {Form: FormBox, Size: SizeLarge, Color: ColorYellow},
	"l": {Form: FormBox, Size: SizeLarge, Color: ColorRed},
	"m": {Form: FormBox, Size: SizeSmall, Color: ColorBlue},
}

func standardWorld(stacks [][]string) *State {
	objects := make(map[string]ObjectDefinition)
	for _, stack := range stacks {
		for _, id := range stack {
			objects[id] = standardObjects[id]
		}
	}
	return &State{Stacks: stacks, Arm: 0, Objects: objects}
}

// Builtin returns a fresh copy of a named built-in world.
func Builtin(name string) (*State, bool) {
	var s *State
	switch name {
	case "small":
		s = standardWorld([][]string{{"e"}, {"g", "l"}, {}, {"k", "m", "f"}, {}})
	case "medium":
		s = standardWorld([][]string{
			{"e"}, {"a", "l"}, {}, {}, {"i", "h", "j"}, {}, {}, {"k", "g", "c", "b"}, {}, {"d", "m", "f"},
		})
	case "complex":
		s = standardWorld([][]string{
			{"e"}, {"a", "l"}, {"i", "h", "j"}, {"c", "k", "g", "b"}, {"d", "m", "f"},
		})
	case "impossible":
		s = &State{
			Stacks: [][]string{
				{"lbrick1", "lplank2", "sbrick1"},
				{},
				{"lpyr1"},
				{"lbox1", "sball2"},
				{"splank1", "sbox1", "sball1"},
				{"sbrick2"},
				{"spyr1"},
			},
			Arm: 0,
			Objects: map[string]ObjectDefinition{
				"lbrick1": {Form: FormBrick, Size: SizeLarge, Color: ColorGreen},
				"sbrick1": {Form: FormBrick, Size: SizeSmall, Color: ColorWhite},
				"sbrick2": {Form: FormBrick, Size: SizeSmall, Color: ColorBlue},
				"lplank2": {Form: FormPlank, Size: SizeLarge, Color: ColorRed},
				"splank1": {Form: FormPlank, Size: SizeSmall, Color: ColorGreen},
				"lball1":  {Form: FormBall, Size: SizeLarge, Color: ColorWhite},
				"sball1":  {Form: FormBall, Size: SizeSmall, Color: ColorBlack},
				"sball2":  {Form: FormBall, Size: SizeSmall, Color: ColorRed},
				"lpyr1":   {Form: FormPyramid, Size: SizeLarge, Color: ColorYellow},
				"spyr1":   {Form: FormPyramid, Size: SizeSmall, Color: ColorRed},
				"lbox1":   {Form: FormBox, Size: SizeLarge, Color: ColorYellow},
				"sbox1":   {Form: FormBox, Size: SizeSmall, Color: ColorBlue},
			},
		}
	default:
		return nil, false
	}
	return s, true
}

// BuiltinNames lists the built-in world names in sorted order.
func BuiltinNames() []string {
	names := []string{"small", "medium", "complex", "impossible"}
	sort.Strings(names)
	return names
}

// LoadFile reads a world definition from a YAML file. The file uses the
// same shape as State: stacks, optional holding and arm, and an objects
// map of form/size/color triples.
func LoadFile(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world file: %w", err)
	}
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse world file %s: %w", path, err)
	}
	if s.Objects == nil {
		s.Objects = map[string]ObjectDefinition{}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("world file %s: %w", path, err)
	}
	return &s, nil
}
