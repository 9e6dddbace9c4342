package database

import "errors"

// ErrNotReady is returned by Ping until the startup ping has reached the server.
var ErrNotReady = errors.New("database connection not established")
