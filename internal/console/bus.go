package console

// BusType classifies an output strip.
type BusType string

const (
	BusAux    BusType = "aux"
	BusGroup  BusType = "group"
	BusMatrix BusType = "matrix"
	BusMain   BusType = "main"
)

// BusPurpose tags what a bus is for. Purely advisory: it drives icon
// selection and generated documentation, never routing correctness.
type BusPurpose string

const (
	PurposeMonitor  BusPurpose = "monitor"
	PurposeIEM      BusPurpose = "iem"
	PurposeSubgroup BusPurpose = "subgroup"
	PurposeFXSend   BusPurpose = "fx-send"
	PurposeRecord   BusPurpose = "record"
	PurposeFill     BusPurpose = "fill"
)

// Bus is an output strip: the same processing shape as a channel minus the
// preamp, plus an output patch point.
type Bus struct {
	Number    int             `json:"number"`
	Name      string          `json:"name"`
	ShortName string          `json:"shortName,omitempty"`
	Type      BusType         `json:"type"`
	Purpose   BusPurpose      `json:"purpose,omitempty"`
	Color     string          `json:"color,omitempty"`
	EQ        *EQConfig       `json:"eq,omitempty"`
	Dynamics  *DynamicsConfig `json:"dynamics,omitempty"`
	FaderDB   float64         `json:"faderDb"`
	Mute      bool            `json:"mute,omitempty"`
	Pan       float64         `json:"pan,omitempty"`
	Output    PatchPoint      `json:"output"`
}

// DCA is a level group. ChannelNumbers mirrors the per-channel
// DCAAssignments sets for documentation; the channel-side bitmask is the
// authoritative routing fact.
type DCA struct {
	Number         int     `json:"number"`
	Name           string  `json:"name"`
	Color          string  `json:"color,omitempty"`
	FaderDB        float64 `json:"faderDb"`
	Mute           bool    `json:"mute,omitempty"`
	ChannelNumbers []int   `json:"channelNumbers,omitempty"`
}

// DCABitmask folds a channel's DCA assignment set into the wire bitmask:
// bit n-1 set for every assigned DCA n in 1..maxDCA. Out-of-range
// assignments are ignored rather than rejected.
func DCABitmask(assignments []int, maxDCA int) uint32 {
	var mask uint32
	for _, n := range assignments {
		if n < 1 || n > maxDCA || n > 32 {
			continue
		}
		mask |= 1 << (n - 1)
	}
	return mask
}
