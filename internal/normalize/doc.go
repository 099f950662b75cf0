// Package normalize provides text coercion helpers and the canonical
// team/venue lookup tables shared by the crawler and the dataset layer.
//
// Box-score pages render team and ballpark names in their long forms with
// inconsistent spacing; the analytics dataset stores short canonical codes.
// The lookup tables here are static and immutable at runtime.
package normalize
