package model

import "strings"

// Platform identifies the streaming service a URL belongs to
type Platform string

const (
	PlatformQobuz      Platform = "Qobuz"
	PlatformDeezer     Platform = "Deezer"
	PlatformTidal      Platform = "Tidal"
	PlatformSoundCloud Platform = "SoundCloud"
	PlatformYouTube    Platform = "YouTube"
	PlatformSpotify    Platform = "Spotify"
	PlatformUnknown    Platform = "?"
)

// String returns the display name of the platform
func (p Platform) String() string {
	return string(p)
}

// platformNeedles are tested in order; the first match wins
var platformNeedles = []struct {
	needle   string
	platform Platform
}{
	{"qobuz", PlatformQobuz},
	{"deezer", PlatformDeezer},
	{"tidal", PlatformTidal},
	{"soundcloud", PlatformSoundCloud},
	{"youtube", PlatformYouTube},
	{"youtu.be", PlatformYouTube},
	{"spotify", PlatformSpotify},
}

// InferPlatform maps a URL to its streaming platform by case-insensitive
// substring match. Unrecognized URLs map to PlatformUnknown.
func InferPlatform(url string) Platform {
	u := strings.ToLower(url)
	for _, rule := range platformNeedles {
		if strings.Contains(u, rule.needle) {
			return rule.platform
		}
	}
	return PlatformUnknown
}
