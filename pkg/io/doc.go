// Package io reads birth profiles and writes results.
//
// # Overview
//
// A profile names one person and carries their birth data. It may also embed
// precomputed positions so that charts can be built without an ephemeris
// service. Profiles are TOML or JSON, chosen by file extension:
//
//	label = "Asha"
//
//	[birth]
//	year = 1990
//	month = 3
//	day = 15
//	hour = 14
//	minute = 30
//	latitude = 28.6139
//	longitude = 77.2090
//	timezone = "Asia/Kolkata"   # optional
//
//	[positions]                 # optional
//	ascendant = 95.5
//
//	[positions.bodies.Sun]
//	longitude = 40.2
//	speed = 0.96
//
// A group file lists several profiles under [[people]] (TOML) or a
// "people" array (JSON) and feeds synastry.
//
// # Import
//
// Use [LoadProfiles] to read a file, or [ReadProfiles] to read from any
// io.Reader:
//
//	profiles, err := io.LoadProfiles("asha.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Every profile is validated: a non-empty label, in-range birth data and,
// when present, positions naming every planet from Sun to Rahu.
//
// # Export
//
// Use [ExportJSON] to write any result to a file, or [WriteJSON] to write to
// an io.Writer. [WriteProfile] writes a profile back as TOML.
package io
