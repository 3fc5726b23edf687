package button

// BackupIterator walks a single button's sections in declared order
// (Type, MessageType, MidiId, Value, Channel), one per call, per §4.6.
type BackupIterator struct {
	index   uint16
	section SectionID
	done    bool
}

// NewBackupIterator starts a fresh walk over the button at index.
func NewBackupIterator(index uint16) *BackupIterator {
	return &BackupIterator{index: index, section: SectionType}
}

// Next returns the (section, value) pair to render as a Set frame, or
// ok=false once every section of this button has been emitted.
func (it *BackupIterator) Next(b *Button) (section SectionID, value uint16, ok bool) {
	if it.done {
		return 0, 0, false
	}
	section = it.section
	value = b.Get(section)
	if section == SectionChannel {
		it.done = true
	} else {
		it.section++
	}
	return section, value, true
}

// Index reports the component index this iterator is walking.
func (it *BackupIterator) Index() uint16 { return it.index }
