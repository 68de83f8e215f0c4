// Package models defines the catalog and job entities shared by the resolver, matcher and download pipeline.
//
// # Catalog
//
//   - [CatalogReference] : provider, kind and identifier parsed from a user supplied URL
//   - [Collection] : a resolved track, album, playlist or set with its ordered [Track] list
//   - [Track], [Album], [Artist], [Image] : canonical metadata used for searching and tagging
//
// # Matching
//
//   - [Candidate] : a media item on the video host that may stand in for a catalog track
//
// # Jobs
//
// [JobState] names the stages a per-track job moves through. Terminal states are
// [JobDone] and [JobFailed].
//
// # History
//
// [Batch] and [Download] are the rows written to the local history database.
package models
