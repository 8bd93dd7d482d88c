package uploader

import "github.com/detox-ci/artifacts/artifacts"

// Report is the outcome of SaveArtifacts.
type Report struct {
	Success    bool   `json:"success,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	ReportLink string `json:"report_link,omitempty"`
	Uploaded   int    `json:"uploaded,omitempty"`
}

// Platform returns the platform name used by the HTML test report.
func Platform(ios bool) string {
	if ios {
		return "ios"
	}
	return "android"
}

func reportKey(run artifacts.RunID, ios bool) string {
	return run.KeyFor("jest-stare/" + Platform(ios) + "-report.html")
}
