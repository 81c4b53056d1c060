package launcher

import (
	"net/url"
	"os"
	"strings"
)

// Platform defines the OS-specific commands behind each launcher action.
type Platform interface {
	// OpenCommand opens target with the desktop's default handler.
	OpenCommand(target string) []string
	// PasteCommand sends the paste keystroke to the frontmost application.
	PasteCommand() []string
	// SearchCommand opens the default file search tool with query pre-filled.
	SearchCommand(query string) []string
	Name() string
}

// DarwinPlatform implements Platform for macOS.
type DarwinPlatform struct{}

func (DarwinPlatform) OpenCommand(target string) []string {
	return []string{"open", target}
}

func (DarwinPlatform) PasteCommand() []string {
	return []string{"osascript", "-e", `tell application "System Events" to keystroke "v" using command down`}
}

// SearchCommand opens Raycast's file search with the path as fallback text.
func (DarwinPlatform) SearchCommand(query string) []string {
	target := "raycast://extensions/raycast/file-search/search-files?fallbackText=" + escapeComponent(query)
	return []string{"open", target}
}

func (DarwinPlatform) Name() string { return "darwin" }

// LinuxPlatform implements Platform for X11 and Wayland desktops.
type LinuxPlatform struct {
	Wayland bool
}

func (LinuxPlatform) OpenCommand(target string) []string {
	return []string{"xdg-open", target}
}

func (p LinuxPlatform) PasteCommand() []string {
	if p.Wayland {
		return []string{"wtype", "-M", "ctrl", "v", "-m", "ctrl"}
	}
	return []string{"xdotool", "key", "--clearmodifiers", "ctrl+v"}
}

// SearchCommand opens the directory itself; there is no common desktop
// search tool that accepts a query on the command line.
func (p LinuxPlatform) SearchCommand(query string) []string {
	return p.OpenCommand(query)
}

func (LinuxPlatform) Name() string { return "linux" }

// WindowsPlatform implements Platform for Windows.
type WindowsPlatform struct{}

func (WindowsPlatform) OpenCommand(target string) []string {
	return []string{"cmd", "/c", "start", "", target}
}

func (WindowsPlatform) PasteCommand() []string {
	return []string{"powershell", "-NoProfile", "-Command",
		`Add-Type -AssemblyName System.Windows.Forms; [System.Windows.Forms.SendKeys]::SendWait('^v')`}
}

func (WindowsPlatform) SearchCommand(query string) []string {
	return []string{"explorer", "search-ms:query=" + escapeComponent(query)}
}

func (WindowsPlatform) Name() string { return "windows" }

// DetectPlatform picks the Platform for goos (usually runtime.GOOS).
// Unknown systems are treated like Linux.
func DetectPlatform(goos string) Platform {
	switch goos {
	case "darwin":
		return DarwinPlatform{}
	case "windows":
		return WindowsPlatform{}
	default:
		return LinuxPlatform{Wayland: os.Getenv("WAYLAND_DISPLAY") != ""}
	}
}

// ExpandTemplate splits a command template on whitespace and substitutes
// {query} in every argument. Quoting is not interpreted.
func ExpandTemplate(template, query string) []string {
	fields := strings.Fields(template)
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, "{query}", query)
	}
	return fields
}

// escapeComponent percent-encodes s for use as one URL query value, with
// spaces as %20. Raycast and search-ms read a literal + as a plus sign.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
