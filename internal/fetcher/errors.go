package fetcher

import "errors"

// ErrStatusNotOK is returned when http response had status different than 200 OK.
var ErrStatusNotOK = errors.New("response status is not 200 OK")
