package commands

import (
	"log/slog"

	"dexscrape/internal/components/telemetry"
	"dexscrape/internal/postprocess"

	"github.com/spf13/cobra"
)

var (
	injectExpFile   *string
	injectExpAsmDir *string
)

func init() {
	injectExpFile = injectExpCmd.Flags().String("file", postprocess.DEFAULT_INJECT_EXP_FILE, "The pokedex json file to rewrite.")
	injectExpAsmDir = injectExpCmd.Flags().String("asm-dir", postprocess.DEFAULT_ASM_DIR, "The directory of <name>.asm base stats files.")
	rootCmd.AddCommand(injectExpCmd)
}

var injectExpCmd = &cobra.Command{
	Use:   "inject-exp [--file <path/to/pokemon.json>] [--asm-dir <path/to/base_stats>]",
	Short: "Adds the base experience yield of every entity from a directory of base stats asm files.",
	Run: func(cmd *cobra.Command, args []string) {
		injector, err := postprocess.NewExpInjector(*injectExpAsmDir, telemetry.NewSlogAPI(slog.Default()))
		if err != nil {
			fatal("failed to read asm files", err)
		}
		result, err := injector.InjectFile(*injectExpFile)
		if err != nil {
			fatal("failed to inject exp yield", err)
		}
		slog.Info("injected exp yield", "file", *injectExpFile, "injected", result.Injected, "missing", len(result.Missing))
	},
}
