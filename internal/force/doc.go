// Package force holds the force generators and the registry that binds
// them to bodies.
//
// A [Generator] adds force to one body per call. Generators are shared: the
// same gravity generator is usually registered against every body. The
// [Registry] keeps (body, generator) pairs in registration order and is
// driven once per step by the world.
package force
