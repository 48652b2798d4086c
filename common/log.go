package common

import "github.com/go-i2p/logger"

// log is the package-level logger for the common package, shared by the control
// connection, session, parser, and options code.
var log = logger.GetGoI2PLogger()
