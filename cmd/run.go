package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/valen/studyquest/internal/app"
	"github.com/valen/studyquest/internal/insights"
	"github.com/valen/studyquest/internal/store"
	"github.com/valen/studyquest/internal/tracker"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	dataPath, err := resolveDataPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve data path: %w", err)
	}
	st, err := store.Open(dataPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	doc := st.Load()
	gen := insights.NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())), time.Now)
	svc := tracker.NewService(doc, st, gen)

	return app.Run(app.Options{Service: svc})
}
