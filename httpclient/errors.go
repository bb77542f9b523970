package httpclient

import (
	"errors"
)

var ErrRequestFailed = errors.New("httpclient: request failed")
