// internal/requestinfo/ua.go
//
// User-Agent parsing helpers.
//
// This file isolates the third-party `github.com/avct/uasurfer` API so the
// rest of the codebase never sees its enums or structs.
package requestinfo

import (
	"fmt"
	"strconv"
	"strings"

	surfer "github.com/avct/uasurfer"
)

// agent is the parsed subset of a User-Agent header we keep.
type agent struct {
	Browser string
	Version string
	OS      string
	Device  string
	IsBot   bool
}

func parseAgent(raw string) agent {
	ua := surfer.Parse(raw)

	a := agent{
		Browser: strings.TrimPrefix(ua.Browser.Name.String(), "Browser"),
		Version: versionToString(ua.Browser.Version),
		OS:      strings.TrimPrefix(ua.OS.Name.String(), "OS"),
		IsBot:   ua.IsBot(),
	}

	switch ua.DeviceType {
	case surfer.DeviceComputer:
		a.Device = "Desktop"
	case surfer.DeviceTablet:
		a.Device = "Tablet"
	case surfer.DevicePhone, surfer.DeviceWearable:
		a.Device = "Mobile"
	default:
		a.Device = "Other"
	}
	return a
}

// versionToString renders 17.0.0 → "17", 17.3.0 → "17.3", 17.3.1 → "17.3.1".
func versionToString(v surfer.Version) string {
	if v.Major == 0 && v.Minor == 0 && v.Patch == 0 {
		return ""
	}
	if v.Patch != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	if v.Minor != 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return strconv.Itoa(int(v.Major))
}

// primaryLang extracts the first language tag before any ";q=" weight.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag, _, _ := strings.Cut(al, ",")
	tag, _, _ = strings.Cut(tag, ";")
	return strings.ToLower(strings.TrimSpace(tag))
}
