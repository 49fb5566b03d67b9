package api

import (
	"encoding/json"

	"github.com/chimekit/chime/common"
)

// versionHandler reports the version, commit, and build type the daemon
// was started with.
func (s *Api) versionHandler(json.RawMessage) (any, error) {
	return &common.VersionResponse{
		Version:   s.version,
		Commit:    s.commit,
		BuildType: s.buildType,
	}, nil
}
