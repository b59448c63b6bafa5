// Package version provides unified mechanisms for application version tracking and update discovery.
package version

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/constant"
	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/style"
	"github.com/vidq-cli/vidq/util"
	"github.com/vidq-cli/vidq/where"
)

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest retrieves the most recent stable application version identifier from the remote update registry.
// It queries the GitHub Releases API and caches the result for performance and rate-limit mitigation.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	resp, err := http.Get("https://api.github.com/repos/vidq-cli/vidq/releases/latest")
	if err != nil {
		return
	}

	defer util.Ignore(resp.Body.Close)

	var release struct {
		TagName string `json:"tag_name"`
	}

	err = json.NewDecoder(resp.Body).Decode(&release)
	if err != nil {
		return
	}

	// Sanitization: Normalize the release identifier by stripping the 'v' prefix if present.
	if release.TagName == "" {
		err = errors.New("empty tag name")
		return
	}

	version = release.TagName[1:]
	_ = versionCacher.Set(version)
	return
}

// Notify prints an update hint when a newer release is available.
// Silent on any failure: version discovery is best effort and must never
// break a command.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	latest, err := Latest()
	if err != nil || latest == "" || latest == constant.Version {
		return
	}

	fmt.Printf(
		"\n%s %s is out! You are on %s\n",
		style.Bold(constant.Vidq),
		style.Fg(style.SuccessColor)("v"+latest),
		style.Faint("v"+constant.Version),
	)
}
