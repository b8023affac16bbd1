// Package ephemeris defines the collaborators that turn a civil birth moment
// into raw sidereal positions.
//
// # Contracts
//
// A [Resolver] maps an absolute instant and a geographic location to the
// sidereal longitude and daily speed of each planet plus the ascendant
// longitude, all under one fixed ayanamsa. Implementations live in
// subpackages:
//
//   - remote: JSON over HTTP with retries and a response cache
//   - static: precomputed positions, used by tests and offline profiles
//
// A [ZoneFinder] maps coordinates to an IANA timezone name. The tz
// subpackage implements it over an embedded timezone boundary dataset.
//
// # Civil time
//
// [BirthData] holds local civil time. [BirthData.Instant] converts it to an
// absolute time using an explicit timezone when one is set, otherwise the
// zone found for the coordinates, and falls back to UTC when neither yields
// a loadable location. This is the only silent fallback in the system.
//
// [Resolve] ties the steps together: validate, convert, resolve. Resolver
// failures are wrapped with the UPSTREAM_RESOLUTION code and returned
// unchanged otherwise.
package ephemeris
