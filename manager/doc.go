// Package manager layers additional logical sessions onto a PRIMARY session
// (spec §4.7). SESSION ADD multiplexes subsessions over the primary
// session's own control connection, the opposite sharing model from the
// stream package's fresh-connection-per-STREAM-CONNECT/ACCEPT: one socket,
// many nicknames.
package manager
