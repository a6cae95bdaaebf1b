package orchestrator

import (
	"github.com/tuanmtrinh/streamrip-gui/internal/config"
	"github.com/tuanmtrinh/streamrip-gui/internal/model"
)

// GateResult reports whether the queued URLs may start a job with the
// credentials currently configured
type GateResult struct {
	Blocked bool
	Service model.Platform
	Reason  string
}

// Blocked-service messages shown to the user
const (
	qobuzMissingReason  = "Qobuz URLs detected, but credentials are missing. Open the Qobuz section to set them."
	deezerMissingReason = "Deezer URLs detected, but the ARL is missing. Open the Deezer section to set it."
)

// CheckCredentials runs the pre-flight credential gate: for every service
// with credential requirements, if any URL classifies to that service and the
// matching config fields are empty, the start is blocked for the first such
// service. Qobuz is checked before Deezer. The check is synchronous and
// touches no network.
func CheckCredentials(urls []string, cfg *config.Snapshot) GateResult {
	var needQobuz, needDeezer bool
	for _, url := range urls {
		switch model.InferPlatform(url) {
		case model.PlatformQobuz:
			needQobuz = true
		case model.PlatformDeezer:
			needDeezer = true
		}
	}

	if needQobuz && (cfg.Qobuz.EmailOrUserID == "" || cfg.Qobuz.PasswordOrToken == "") {
		return GateResult{Blocked: true, Service: model.PlatformQobuz, Reason: qobuzMissingReason}
	}
	if needDeezer && cfg.Deezer.ARL == "" {
		return GateResult{Blocked: true, Service: model.PlatformDeezer, Reason: deezerMissingReason}
	}
	return GateResult{}
}
