// Package bvh implements the broad phase: a binary bounding-volume
// hierarchy of spheres.
//
// Nodes live in an arena and reference each other by index; freed slots are
// reused by later insertions. Every branch volume encloses both of its
// children and is refreshed bottom-up after each insertion or removal.
//
// The tree is generic over the stored item so it can hold bodies directly;
// items are compared by identity.
package bvh
