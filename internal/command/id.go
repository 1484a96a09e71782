package command

// ID enumerates the commands this bot answers. The set is closed: adding a
// command means adding an ID here and a case to every switch over ID.
type ID int

const (
	TellTimes ID = iota + 1
	Timestamp
)

const (
	TellTimesName = "Tell me the times"
	TimestampName = "timestamp"
)

// IDs returns every command ID in registration order.
func IDs() []ID {
	return []ID{TellTimes, Timestamp}
}

// Name is the exact name Discord delivers for the command.
func (id ID) Name() string {
	switch id {
	case TellTimes:
		return TellTimesName
	case Timestamp:
		return TimestampName
	}
	return ""
}

func (id ID) String() string {
	if name := id.Name(); name != "" {
		return name
	}
	return "unknown"
}

// Parse maps an exact, case-sensitive command name to its ID.
func Parse(name string) (ID, bool) {
	switch name {
	case TellTimesName:
		return TellTimes, true
	case TimestampName:
		return Timestamp, true
	}
	return 0, false
}
