// Package dignity evaluates the dignity of a planet placed in a sign.
//
// A dignity is one of seven categories, each carrying a fixed strength
// score. [Evaluate] applies the rules in strict priority order and the first
// matching rule wins:
//
//  1. [Exalted]: the exaltation sign, within 2° of the ideal degree
//  2. [Mooltrikona]: the mooltrikona sign, inside its [start,end) range
//  3. [OwnSign]: one of the planet's own signs
//  4. [Debilitated]: the debilitation sign
//  5. [FriendSign], [EnemySign] or [Neutral] by the planet's relationship
//     with the sign's ruler
//
// Rahu and Ketu own no sign and have no mooltrikona range, so rules 2 and 3
// never match for them.
//
// The evaluator is total and pure: every (planet, sign, degree) triple yields
// exactly one [Dignity], and the same triple always yields the same result.
// The per-planet tables are exposed through [ProfileOf] for callers that
// want to display them.
package dignity
