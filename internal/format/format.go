// Package format holds the pure helpers shared by the upload flow and the
// command line views: extension and content type inference plus byte,
// duration and timestamp rendering.
package format

import (
	"fmt"
	"math"
	"path"
	"strings"
	"time"
)

const FallbackContentType = "application/octet-stream"

// AllowedExtensions lists the accepted recording formats, in display order.
var AllowedExtensions = []string{"mp3", "wav", "m4a"}

var extensionContentType = map[string]string{
	"mp3": "audio/mpeg",
	"wav": "audio/wav",
	"m4a": "audio/mp4",
}

// Extension returns the lower-cased text after the last dot of the base name,
// or "" when there is none.
func Extension(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	i := strings.LastIndex(base, ".")
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

func IsAllowedExtension(name string) bool {
	_, ok := extensionContentType[Extension(name)]
	return ok
}

// ContentTypeFor prefers the declared type and falls back to the extension map.
func ContentTypeFor(name, declared string) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if ct, ok := extensionContentType[Extension(name)]; ok {
		return ct
	}
	return FallbackContentType
}

var byteUnits = []string{"KB", "MB", "GB"}

func Bytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := float64(n) / 1024
	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[unit])
}

// Duration renders seconds as mm:ss; nil or NaN render as "--:--".
func Duration(seconds *float64) string {
	if seconds == nil || math.IsNaN(*seconds) {
		return "--:--"
	}
	total := int64(math.Floor(math.Max(0, *seconds)))
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

const dateTimeLayout = "2006/01/02 15:04:05"

// DateTime renders an RFC 3339 timestamp in local time, or "--" when it does not parse.
func DateTime(iso string) string {
	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		return "--"
	}
	return t.Local().Format(dateTimeLayout)
}
