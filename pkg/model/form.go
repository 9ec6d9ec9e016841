package model

// Renumber rewrites every field's Order to its current slice position,
// keeping the sequence contiguous and 0-based. Every mutation below calls it
// so definitions never carry gaps.
func (f *Form) Renumber() {
	for i := range f.Fields {
		f.Fields[i].Order = i
	}
}

// InsertField places a field at the given position, clamping out-of-range
// indices to the ends of the list.
func (f *Form) InsertField(index int, field Field) {
	if index < 0 {
		index = 0
	}
	if index > len(f.Fields) {
		index = len(f.Fields)
	}
	f.Fields = append(f.Fields, Field{})
	copy(f.Fields[index+1:], f.Fields[index:])
	f.Fields[index] = field
	f.Renumber()
}

// AppendField adds a field to the end of the list.
func (f *Form) AppendField(field Field) {
	f.InsertField(len(f.Fields), field)
}

// RemoveField deletes the field with the given id and reports whether it was
// present.
func (f *Form) RemoveField(id string) bool {
	for i, field := range f.Fields {
		if field.ID == id {
			f.Fields = append(f.Fields[:i], f.Fields[i+1:]...)
			f.Renumber()
			return true
		}
	}
	return false
}

// MoveField relocates the field with the given id to the target position and
// reports whether it was present. The target is clamped into range.
func (f *Form) MoveField(id string, to int) bool {
	from := -1
	for i, field := range f.Fields {
		if field.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}
	if to < 0 {
		to = 0
	}
	if to >= len(f.Fields) {
		to = len(f.Fields) - 1
	}

	field := f.Fields[from]
	f.Fields = append(f.Fields[:from], f.Fields[from+1:]...)
	f.Fields = append(f.Fields, Field{})
	copy(f.Fields[to+1:], f.Fields[to:])
	f.Fields[to] = field
	f.Renumber()
	return true
}
