package config

// File mirrors the subset of the streamrip config file this app reads and
// edits. Unknown keys in the file are left alone by the TOML decoder; only the
// sections below are round-tripped.
type File struct {
	Downloads  Downloads  `toml:"downloads"`
	Qobuz      Qobuz      `toml:"qobuz"`
	Deezer     Deezer     `toml:"deezer"`
	Tidal      Tidal      `toml:"tidal"`
	SoundCloud SoundCloud `toml:"soundcloud"`
	YouTube    YouTube    `toml:"youtube"`
	Conversion Conversion `toml:"conversion"`
	Misc       Misc       `toml:"misc"`
}

// Downloads configures where and how the engine writes files
type Downloads struct {
	Folder               string `toml:"folder"`
	SourceSubdirectories bool   `toml:"source_subdirectories"`
	DiscSubdirectories   bool   `toml:"disc_subdirectories"`
	Concurrency          bool   `toml:"concurrency"`
	MaxConnections       int    `toml:"max_connections"`
	RequestsPerMinute    int    `toml:"requests_per_minute"`
	VerifySSL            bool   `toml:"verify_ssl"`
}

// Qobuz holds Qobuz quality and credential settings. Either an email/password
// pair or a userid/token pair may be used; both map onto the same two fields.
type Qobuz struct {
	Quality          int    `toml:"quality"`
	DownloadBooklets bool   `toml:"download_booklets"`
	UseAuthToken     bool   `toml:"use_auth_token"`
	EmailOrUserID    string `toml:"email_or_userid"`
	PasswordOrToken  string `toml:"password_or_token"`
}

// Deezer holds Deezer quality settings and the ARL session cookie
type Deezer struct {
	Quality            int    `toml:"quality"`
	ARL                string `toml:"arl"`
	UseDeezloader      bool   `toml:"use_deezloader"`
	DeezloaderWarnings bool   `toml:"deezloader_warnings"`
}

// Tidal holds Tidal quality settings
type Tidal struct {
	Quality        int  `toml:"quality"`
	DownloadVideos bool `toml:"download_videos"`
}

// SoundCloud holds SoundCloud client settings
type SoundCloud struct {
	Quality    int    `toml:"quality"`
	ClientID   string `toml:"client_id"`
	AppVersion string `toml:"app_version"`
}

// YouTube holds YouTube quality settings
type YouTube struct {
	Quality              int    `toml:"quality"`
	DownloadVideos       bool   `toml:"download_videos"`
	VideoDownloadsFolder string `toml:"video_downloads_folder"`
}

// Conversion configures optional post-download transcoding done by the engine
type Conversion struct {
	Enabled      bool   `toml:"enabled"`
	Codec        string `toml:"codec"`
	SamplingRate int    `toml:"sampling_rate"`
	BitDepth     int    `toml:"bit_depth"`
	LossyBitrate int    `toml:"lossy_bitrate"`
}

// Misc holds the config schema version and update checking flag
type Misc struct {
	Version         string `toml:"version"`
	CheckForUpdates bool   `toml:"check_for_updates"`
}

// Snapshot is the point-in-time view of configuration a job start consumes.
// The gate reads credentials from it and the runner reads the output folder;
// neither ever re-reads the file mid-job.
type Snapshot struct {
	OutputFolder string
	Qobuz        Qobuz
	Deezer       Deezer
}

// defaultFile returns the config written when no file exists yet
func defaultFile(outputFolder string) *File {
	return &File{
		Downloads: Downloads{
			Folder:             outputFolder,
			DiscSubdirectories: true,
			Concurrency:        true,
			MaxConnections:     6,
			RequestsPerMinute:  60,
			VerifySSL:          true,
		},
		Qobuz:      Qobuz{Quality: 3, DownloadBooklets: true},
		Deezer:     Deezer{Quality: 2, DeezloaderWarnings: true},
		Tidal:      Tidal{Quality: 3},
		SoundCloud: SoundCloud{Quality: 0},
		YouTube:    YouTube{Quality: 0},
		Conversion: Conversion{Codec: "ALAC", SamplingRate: 48000, BitDepth: 24, LossyBitrate: 320},
		Misc:       Misc{Version: "2.0.6", CheckForUpdates: true},
	}
}
