package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/tracker"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print platform statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dataPath, err := resolveDataPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve data path: %w", err)
		}
		st, err := store.Open(dataPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}

		svc := tracker.NewService(st.Load(), nil, nil)
		g := svc.GlobalStats()

		fmt.Printf("Learners:          %d\n", g.Users)
		fmt.Printf("Plans:             %d\n", g.Plans)
		fmt.Printf("Sessions:          %d\n", g.Sessions)
		fmt.Printf("Total minutes:     %d\n", g.TotalMinutes)
		fmt.Printf("Avg duration:      %d min\n", g.AvgDuration)
		fmt.Printf("Avg satisfaction:  %.1f\n", g.AvgSatisfaction)
		return nil
	},
}
