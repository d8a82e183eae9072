package transfer

// EntryState tracks one source entry through a transfer batch. Only a
// Committed entry contributes to the journal batch that Undo can replay;
// Cancelled and Failed entries trigger backward replay of everything
// already Committed in the same batch.
type EntryState int

const (
	Planned EntryState = iota
	SizeKnown
	InProgress
	Committed
	Cancelled
	Failed
)

func (s EntryState) String() string {
	switch s {
	case Planned:
		return "planned"
	case SizeKnown:
		return "size_known"
	case InProgress:
		return "in_progress"
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
