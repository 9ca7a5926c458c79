package console

import "fmt"

// StageboxModel is a closed enumeration of supported remote I/O units.
type StageboxModel string

const (
	StageboxS16     StageboxModel = "S16"
	StageboxS32     StageboxModel = "S32"
	StageboxDL16    StageboxModel = "DL16"
	StageboxRio1608 StageboxModel = "Rio1608-D"
	StageboxRio3208 StageboxModel = "Rio3208-D"
	StageboxTio1608 StageboxModel = "Tio1608-D"
)

// stageboxIO gives the fixed physical counts of each supported model.
var stageboxIO = map[StageboxModel]struct{ in, out int }{
	StageboxS16:     {16, 8},
	StageboxS32:     {32, 16},
	StageboxDL16:    {16, 8},
	StageboxRio1608: {16, 8},
	StageboxRio3208: {32, 8},
	StageboxTio1608: {16, 8},
}

// Stagebox is one remote I/O unit on the audio network. Slot is 1-based
// and orders the boxes within the shared network channel space.
type Stagebox struct {
	Model   StageboxModel `json:"model"`
	Name    string        `json:"name,omitempty"`
	Slot    int           `json:"slot"`
	Inputs  int           `json:"inputs"`
	Outputs int           `json:"outputs"`
}

// KnownStageboxModel reports whether the model is part of the closed
// enumeration.
func KnownStageboxModel(m StageboxModel) bool {
	_, ok := stageboxIO[m]
	return ok
}

// NewStagebox builds a stagebox for a known model with its fixed I/O
// counts filled in.
func NewStagebox(model StageboxModel, slot int) (Stagebox, error) {
	io, ok := stageboxIO[model]
	if !ok {
		return Stagebox{}, fmt.Errorf("unknown stagebox model %q", model)
	}
	if slot < 1 {
		return Stagebox{}, fmt.Errorf("stagebox slot %d is not 1-based", slot)
	}
	return Stagebox{Model: model, Slot: slot, Inputs: io.in, Outputs: io.out}, nil
}

// DanteStartChannel derives the first network channel this box occupies.
// Every channel fed by the box patches relative to this offset, so the
// formula must stay consistent across the whole session:
//
//	start = (slot-1) * inputCount + 1
func (sb Stagebox) DanteStartChannel() int {
	if sb.Slot < 1 || sb.Inputs < 1 {
		return 1
	}
	return (sb.Slot-1)*sb.Inputs + 1
}

// NetworkChannel maps a local socket (1-based) on this box to its channel
// in the shared network space.
func (sb Stagebox) NetworkChannel(socket int) int {
	return sb.DanteStartChannel() + socket - 1
}
