package engine

// Package engine defines the boundary to the external download engine and its
// yt-dlp implementation (via github.com/lrstanley/go-ytdlp). The rest of the
// app only sees the Engine interface and explicit ResolvedItem metadata; no
// engine-specific types leak past this package.
