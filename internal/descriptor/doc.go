// Package descriptor holds the serializable, edit-time representation of a
// script: block instances, the content of their named slots, and the source
// that says which block kind an instance is stamped from.
//
// Descriptors are plain data. They are turned into executable blocks by the
// block package and persisted with the JSON codec in this package.
package descriptor
