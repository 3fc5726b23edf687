package analog

// backupOrder is the declared section order the backup iterator walks,
// skipping the MSB placeholder ids (4, 6, 8) that carry no data in the
// TwoBytes protocol this module always uses.
var backupOrder = []SectionID{
	SectionEnabled,
	SectionInvertState,
	SectionMessageType,
	SectionMidiIDLSB,
	SectionLowerCCLimitLSB,
	SectionUpperCCLimitLSB,
	SectionChannel,
	SectionLowerADCOffset,
	SectionUpperADCOffset,
}

// BackupIterator walks a single analog input's sections in declared
// order, one per call.
type BackupIterator struct {
	index  uint16
	cursor int
}

// NewBackupIterator starts a fresh walk over the analog input at index.
func NewBackupIterator(index uint16) *BackupIterator {
	return &BackupIterator{index: index}
}

// Next returns the (section, value) pair to render as a Set frame, or
// ok=false once every section has been emitted.
func (it *BackupIterator) Next(a *Analog) (section SectionID, value uint16, ok bool) {
	if it.cursor >= len(backupOrder) {
		return 0, 0, false
	}
	section = backupOrder[it.cursor]
	value = a.Get(section)
	it.cursor++
	return section, value, true
}

// Index reports the component index this iterator is walking.
func (it *BackupIterator) Index() uint16 { return it.index }
