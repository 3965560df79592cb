package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	latest "github.com/tcnksm/go-latest"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the craft version and check for a newer release",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(rootCmd.Version)
		checkUpdate(rootCmd.Version)
	},
}

// checkUpdate reports a newer GitHub release when one exists. Network or
// lookup failures are silent: the check is informational only.
func checkUpdate(currentVer string) {
	if currentVer == "" || currentVer == "dev" {
		return
	}

	githubTag := &latest.GithubTag{
		Owner:      "craft-cli",
		Repository: "craft",
	}

	res, err := latest.Check(githubTag, currentVer)
	if err != nil {
		return
	}
	if res.Outdated {
		PrintInfo(fmt.Sprintf("A newer version is available: %s (you have %s)", res.Current, currentVer))
		PrintInfo("Download it from https://github.com/craft-cli/craft/releases")
	}
}
