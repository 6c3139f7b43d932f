package settings

import "errors"

var ErrNotConfigured = errors.New("school settings not configured")
