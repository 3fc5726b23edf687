package encoder

// backupOrder is the declared section order the backup iterator walks.
// SectionMidiIDMSB is skipped: it is unreachable in normal TwoBytes
// operation, matching the reference's backup walk exactly.
var backupOrder = []SectionID{
	SectionEnabled,
	SectionInvertState,
	SectionMessageType,
	SectionMidiIDLSB,
	SectionChannel,
	SectionPulsesPerStep,
	SectionAcceleration,
	SectionRemoteSync,
	SectionLowerLimit,
	SectionUpperLimit,
	SectionRepeatedValue,
	SectionSecondMidiID,
}

// BackupIterator walks a single encoder's sections in declared order, one
// per call.
type BackupIterator struct {
	index  uint16
	cursor int
}

// NewBackupIterator starts a fresh walk over the encoder at index.
func NewBackupIterator(index uint16) *BackupIterator {
	return &BackupIterator{index: index}
}

// Next returns the (section, value) pair to render as a Set frame, or
// ok=false once every section has been emitted.
func (it *BackupIterator) Next(e *Encoder) (section SectionID, value uint16, ok bool) {
	if it.cursor >= len(backupOrder) {
		return 0, 0, false
	}
	section = backupOrder[it.cursor]
	value = e.Get(section)
	it.cursor++
	return section, value, true
}

// Index reports the component index this iterator is walking.
func (it *BackupIterator) Index() uint16 { return it.index }
