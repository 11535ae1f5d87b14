// ABOUTME: Instruction list helpers that keep step numbers positional.
// ABOUTME: Every helper returns a new slice with steps renumbered 1..n.

package models

// RenumberSteps returns a copy of list with Step set to each 1-based position.
func RenumberSteps(list []Instruction) []Instruction {
	if list == nil {
		return nil
	}
	out := make([]Instruction, len(list))
	for i, ins := range list {
		ins.Step = i + 1
		out[i] = ins
	}
	return out
}

// InsertInstruction inserts ins before the 0-based position pos. A position
// outside the list appends.
func InsertInstruction(list []Instruction, pos int, ins Instruction) []Instruction {
	if pos < 0 || pos > len(list) {
		pos = len(list)
	}
	out := make([]Instruction, 0, len(list)+1)
	out = append(out, list[:pos]...)
	out = append(out, ins)
	out = append(out, list[pos:]...)
	return RenumberSteps(out)
}

// RemoveInstruction drops the instruction at 0-based position k. An out of
// range k returns a renumbered copy of list.
func RemoveInstruction(list []Instruction, k int) []Instruction {
	if k < 0 || k >= len(list) {
		return RenumberSteps(list)
	}
	out := make([]Instruction, 0, len(list)-1)
	out = append(out, list[:k]...)
	out = append(out, list[k+1:]...)
	return RenumberSteps(out)
}
