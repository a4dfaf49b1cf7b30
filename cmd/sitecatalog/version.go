package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags. Release builds
// stamp these; everything else falls back to module build info.
var (
	version = ""
	commit  = ""
	date    = ""
)

// versionInfo holds the resolved build identity of the binary.
type versionInfo struct {
	Version string
	Commit  string
	Date    string
}

// resolveVersionInfo merges the ldflags values with whatever the Go
// toolchain embedded. Ldflags win; missing fields read "unknown".
func resolveVersionInfo() versionInfo {
	info := versionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" {
			info.Version = bi.Main.Version
		}
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = shortCommit(setting.Value)
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = setting.Value
				}
			}
		}
	}

	if info.Version == "" {
		info.Version = "(devel)"
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return info
}

// shortCommit truncates a full VCS revision to the conventional
// 7-character abbreviation.
func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// getVersion returns the version string alone, for cobra's --version flag.
func getVersion() string {
	return resolveVersionInfo().Version
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of sitecatalog.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info := resolveVersionInfo()

			short, _ := cmd.Flags().GetBool("short")
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), info.Version)
				return
			}

			fmt.Fprintf(cmd.OutOrStdout(), "sitecatalog %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}

	cmd.Flags().BoolP("short", "s", false, "Print only the version number")

	return cmd
}
