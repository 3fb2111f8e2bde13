// Package richtext models styled text as a sequence of runs.
//
// A Text pairs a string with runs that partition it: every grapheme cluster
// belongs to exactly one run, runs are sorted, never empty, and adjacent
// runs never carry identical attributes. Offsets are grapheme-cluster
// indices, so a flag emoji or a letter with combining marks counts as one
// position.
//
// All mutations validate their range first and leave the Text unchanged on
// error. Range-scoped writes split runs at the range boundaries, rewrite the
// runs inside and merge neighbours that became identical:
//
//	t := richtext.New("Hello, world!", richtext.Attributes{Font: body})
//	err := t.SetAttribute(richtext.NewRange(0, 5), richtext.KeyUnderline, richtext.LineSingle)
//
// A Text is not safe for concurrent mutation; callers own it for the
// duration of an edit.
package richtext
