package cmd

import (
	"github.com/valen/studyquest/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "studyquest",
	Short: "Gamified study tracker",
	Long:  "StudyQuest — terminal study tracker with points, streaks, achievements and a heuristic coach.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to the data file (overrides STUDYQUEST_DATA env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDataPath returns the document path using --data flag (highest
// priority), then STUDYQUEST_DATA env var, then the default XDG path.
func resolveDataPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDataPath()
}
