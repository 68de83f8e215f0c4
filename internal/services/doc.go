// Package services resolves catalog references into [models.Collection] values and searches the
// video host for candidate media.
//
// # Resolvers
//
// [Resolver] is implemented per provider:
//   - [SpotifyService] : track, album and playlist lookups against the Spotify Web API using a
//     bearer token from an [oauth2.TokenSource]
//   - [SoundCloudService] : URL based resolution of tracks and sets with an OAuth token
//
// [Catalog] dispatches a reference to the resolver registered for its provider.
//
// A resolver either returns a complete collection or an error; pages are merged before return.
//
// # Search
//
// [YouTubeService] implements [Searcher] against the innertube search endpoint. Result entries
// are extracted with gjson paths so a missing field skips the entry instead of failing the search.
//
// # Errors
//
//   - [shared.ErrAuth] : HTTP 401/403 or a failed token exchange
//   - [shared.ErrResolution] : any other transport, status or decode failure while resolving
//   - [shared.ErrSearchFailed] : the search request itself failed
//
// # Tokens
//
// [NewSpotifyTokenSource] performs the client-credentials grant and caches the token on disk
// until it expires.
package services
