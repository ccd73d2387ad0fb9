package model

// MusicFile is the metadata of an uploaded background-music track.  The URL
// points at wherever the presentation layer hosts the media; playback itself
// never touches this service.
type MusicFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

// MusicState is the persisted state of the background-music widget.
type MusicState struct {
	MusicFile *MusicFile `json:"musicFile"`
	IsPlaying bool       `json:"isPlaying"`
}
