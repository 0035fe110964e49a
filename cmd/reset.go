package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valen/studyquest/internal/store"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all study data",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, err := resolveDataPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve data path: %w", err)
		}

		if !resetForce {
			fmt.Printf("This deletes %s. Re-run with --force to confirm.\n", dataPath)
			return nil
		}

		st, err := store.Open(dataPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		if err := st.Reset(); err != nil {
			return err
		}
		fmt.Println("Study data deleted.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip the confirmation")
}
