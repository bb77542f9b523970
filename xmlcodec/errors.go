package xmlcodec

import "errors"

var (
	ErrParse            = errors.New("xmlcodec: failed to parse xml")
	ErrNoRootElement    = errors.New("xmlcodec: document has no root element")
	ErrInvalidName      = errors.New("xmlcodec: invalid element name")
	ErrUnsupportedValue = errors.New("xmlcodec: unsupported value type")
)
