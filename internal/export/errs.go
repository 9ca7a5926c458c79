package export

import "errors"

// ErrUnsupportedModel marks a (manufacturer, model) pair no adapter
// handles.
var ErrUnsupportedModel = errors.New("unsupported console model")
