package model

// Subject is the closed set of controllable things.
// Adding a variant requires a matching taxonomy entry.
type Subject string

const (
	SubjectLight        Subject = "light"
	SubjectTeapot       Subject = "teapot"
	SubjectWindowBlinds Subject = "window blinds"
	SubjectTemperature  Subject = "temperature"
	SubjectVentilator   Subject = "ventilator"
)

// Subjects lists every subject in declaration order
func Subjects() []Subject {
	return []Subject{
		SubjectLight,
		SubjectTeapot,
		SubjectWindowBlinds,
		SubjectTemperature,
		SubjectVentilator,
	}
}

func (s Subject) String() string { return string(s) }
