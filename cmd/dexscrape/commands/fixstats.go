package commands

import (
	"log/slog"

	"dexscrape/internal/postprocess"

	"github.com/spf13/cobra"
)

var fixStatsFile *string

func init() {
	fixStatsFile = fixStatsCmd.Flags().String("file", postprocess.DEFAULT_FIX_STATS_FILE, "The pokedex json file to rewrite.")
	rootCmd.AddCommand(fixStatsCmd)
}

var fixStatsCmd = &cobra.Command{
	Use:   "fix-stats [--file <path/to/pokemon.json>]",
	Short: "Rewrites a pokedex json file so every stat is an integer.",
	Run: func(cmd *cobra.Command, args []string) {
		blocks, err := postprocess.FixStats(*fixStatsFile)
		if err != nil {
			fatal("failed to fix stats", err)
		}
		slog.Info("fixed stats", "file", *fixStatsFile, "stat_blocks", blocks)
	},
}
