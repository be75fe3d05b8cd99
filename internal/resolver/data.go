package resolver

import "strings"

// LookupRequest identifies one lyrics lookup: an opaque, caller-assigned
// cache key plus the natural-language pair the lookup path derives from.
type LookupRequest struct {
	TrackID    string `json:"track_id"`
	ArtistName string `json:"artist_name"`
	TrackTitle string `json:"track_title"`
}

// Validate enforces the request invariant: id, artist, and title all
// non-empty after trimming.
func (r LookupRequest) Validate() error {
	if strings.TrimSpace(r.TrackID) == "" {
		return &ResolveError{Kind: KindInvalidRequest, ArtistName: r.ArtistName, TrackTitle: r.TrackTitle}
	}
	if strings.TrimSpace(r.ArtistName) == "" || strings.TrimSpace(r.TrackTitle) == "" {
		return &ResolveError{Kind: KindInvalidRequest, TrackID: r.TrackID, ArtistName: r.ArtistName, TrackTitle: r.TrackTitle}
	}
	return nil
}

// LookupResult carries back the original request fields plus the resolved
// lyrics. Constructed once per successful resolution; immutable.
type LookupResult struct {
	TrackID    string `json:"track_id"`
	ArtistName string `json:"artist_name"`
	TrackTitle string `json:"track_title"`
	Lyrics     string `json:"lyrics"`
}

// Outcome is one entry of a batch resolution: either a result or a
// classified failure, never both.
type Outcome struct {
	Result LookupResult
	Err    error
}
