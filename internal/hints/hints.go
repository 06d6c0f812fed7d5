// Package hints builds short suggestions appended to fatal error messages,
// formatted as "\n  hint: <text>".
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
)

// IsInContainer reports whether the process runs in a Docker container.
// It is a variable so tests can replace it.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect suggests the environment variables that usually fix a
// Chrome launch failure in CI or containers.
func ForBrowserConnect() string {
	var out []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		out = append(out, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		out = append(out, "set ROD_BROWSER_BIN to use a specific Chrome")
	}
	return join(out)
}

// ForNavigationTimeout points at the timeout flags.
func ForNavigationTimeout() string {
	return format("raise --protocolTimeout, or --waitForRender for slow client-side rendering")
}

// ForUnreachable suggests checking the entry point and base URL.
func ForUnreachable() string {
	return format("check that the site is up; use --baseUrl to render from a local server")
}

// ForNoContent suggests checking the content selector against the site.
func ForNoContent(contentSelector string) string {
	if contentSelector == "" {
		return format("set --contentSelector to the element wrapping page content")
	}
	return format("no page matched --contentSelector " + contentSelector + "; check it against the page HTML or try the docusaurus command")
}

// ForOutputDirectory suggests checking the destination directory.
func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

// ForConfigNotFound lists where a config file may be created.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-docs2pdf") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForHighlightStyle lists the accepted highlight styles.
func ForHighlightStyle(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available styles: " + strings.Join(available, ", ") + ", none")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func join(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
