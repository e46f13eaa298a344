// Package shape describes the geometry of simulated bodies.
//
// A [Model] is immutable and may be shared by any number of bodies. It
// supplies the body-space inverse inertia tensor for a given inverse mass
// and the radius of the sphere that bounds it. [BoundingSphere] is the
// volume the broad phase is built from.
package shape
