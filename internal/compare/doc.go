// Package compare resolves and orders assertion operands.
//
// Every assertion reduces to a single three-way comparison. Operands are
// resolved in two steps:
//
//  1. Scalar kinds (integers, floats, strings, booleans, pointers) map to
//     a closed set of builtin tags and are ordered by value. Floats use
//     ULP-tolerant equality, so two floats within four representable
//     values of each other compare equal.
//  2. Every other kind is looked up in the type registry by its dynamic
//     type name. Registration is idempotent and first-wins; comparing a
//     type that was never registered is an error the caller must treat
//     as fatal.
//
// The sign of the comparison drives every operator: Eq is order == 0,
// Lt is order < 0, Le is order <= 0, and so on. A consequence of the
// float tolerance is that two nearly equal floats are neither less nor
// greater than each other.
package compare
