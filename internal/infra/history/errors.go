package history

import "errors"

var ErrDatabase = errors.New("history database error")
