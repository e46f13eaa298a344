// Package contact generates and resolves contacts between bodies.
//
// Generators write into a caller-provided slice whose length is the
// remaining budget and return how many contacts they wrote:
//
//   - [Floor]: a body against the horizontal plane y = FloorY
//   - [Cable]: two bodies that may not separate beyond MaxLength
//   - [Rod]: two bodies held at exactly Length
//   - [SphereCollisions]: bounding-sphere intersections found by the broad phase
//
// The [Resolver] repeatedly picks the contact with the most negative
// separating velocity and resolves it with an impulse and a positional
// correction, both split by inverse mass.
package contact
