package ast

import "sort"

// maxRune is the largest code point the engine will ever need to represent
// as the upper bound of a negated character class.
const maxRune = 0x10FFFF

// digitRanges backs \d / \D: decimal digits.
var digitRanges = []RuneRange{{'0', '9'}}

// spaceRanges backs \s / \S: whitespace, including the ECMA-262 set of
// line terminators and other Unicode space characters the original engine
// singled out.
var spaceRanges = []RuneRange{
	{'\t', '\t'},         // tab
	{'\r', '\r'},         // carriage return
	{'\n', '\n'},         // line feed
	{'\v', '\v'},         // vertical tab
	{'\f', '\f'},         // form feed
	{'\u2028', '\u2028'}, // line separator
	{'\u2029', '\u2029'}, // paragraph separator
	{'\u00a0', '\u00a0'}, // no-break space
	{'\ufeff', '\ufeff'}, // byte order mark
}

// wordRanges backs \w / \W: [A-Za-z0-9_].
var wordRanges = []RuneRange{
	{'a', 'z'}, {'A', 'Z'}, {'0', '9'}, {'_', '_'},
}

// commonEscapeClass returns the character class for one of the predefined
// escapes d/D/s/S/w/W. The uppercase forms negate the class. ok is false if
// c is not one of these six letters, in which case the escape is a plain
// literal of c.
func commonEscapeClass(c rune) (CharacterClass, bool) {
	var ranges []RuneRange
	switch c {
	case 'd', 'D':
		ranges = digitRanges
	case 's', 'S':
		ranges = spaceRanges
	case 'w', 'W':
		ranges = wordRanges
	default:
		return CharacterClass{}, false
	}

	if c >= 'A' && c <= 'Z' {
		return negateRanges(ranges), true
	}
	return CharacterClass{Ranges: ranges}, true
}

// negateRanges computes the set-complement of ranges over [0, maxRune]:
// sort the ranges and walk the gaps between them.
func negateRanges(ranges []RuneRange) CharacterClass {
	sorted := append([]RuneRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Lo < sorted[j].Lo })

	var inverted []RuneRange
	next := rune(0) // smallest code point not yet known to be covered
	for _, r := range sorted {
		if r.Lo > next {
			inverted = append(inverted, RuneRange{Lo: next, Hi: r.Lo - 1})
		}
		if r.Hi+1 > next {
			next = r.Hi + 1
		}
	}
	if next <= maxRune {
		inverted = append(inverted, RuneRange{Lo: next, Hi: maxRune})
	}

	return CharacterClass{Ranges: inverted}
}
