// Package kernel provides shared value objects for the water-delivery domain.
//
// It contains:
//   - UUID: validated identifier wrapping github.com/google/uuid
//   - GeoPoint: delivery coordinates supplied by the external geocoding collaborator
//
// All value objects are immutable. Zero values are invalid and fail Validate;
// instances must be created through the provided constructors.
package kernel
