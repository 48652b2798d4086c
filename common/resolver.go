package common

// Resolve looks up name against the bridge this session is connected to,
// using the session's own control connection. "ME" resolves to the
// session's own destination.
func (s *Session) Resolve(name string) (I2PAddr, error) {
	return s.conn.NamingLookup(name)
}

// ResolveWithOptions is the SAMv3.2+ variant that also requests any
// lease-set properties associated with name.
func (s *Session) ResolveWithOptions(name string) (I2PAddr, error) {
	return s.conn.NamingLookupWithOptions(name)
}

// Resolve opens a short-lived control connection to address purely to
// perform one NAMING LOOKUP, for callers that don't already hold a Session.
func Resolve(address, name string) (I2PAddr, error) {
	conn, err := Connect(address)
	if err != nil {
		return I2PAddr(""), err
	}
	defer conn.Close()
	return conn.NamingLookup(name)
}
