// Package world sequences one simulation step over a set of bodies.
//
// Each [World.Update] runs four phases in a fixed order:
//
//  1. every force registration adds its force
//  2. every body integrates
//  3. contact generators fill the shared contact buffer, up to MaxContacts
//  4. the resolver runs if any contact was produced
//
// With [WithCollisions] the world also keeps a bounding-volume hierarchy of
// its bodies and turns overlapping bounding spheres into contacts after all
// other generators have run.
//
// # Thread Safety
//
// A World is not safe for concurrent use. Independent worlds may be stepped
// from different goroutines.
package world
