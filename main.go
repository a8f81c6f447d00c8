package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/grrosti/memory-game/internal/board"
	"github.com/grrosti/memory-game/internal/categories"
	"github.com/grrosti/memory-game/internal/config"
	"github.com/grrosti/memory-game/internal/daily"
	"github.com/grrosti/memory-game/internal/session"
)

func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// Ctrl-C during a reveal pause ends the game through the context.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(config.FromEnv()).ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal().Err(err).Msg("memory-game exited")
	}
}

// newRootCmd wires flags over cfg, which already holds env defaults.
func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "memory-game",
		Short: "Find the matching pairs on a grid of face-down cards",
		Long: `Cards are dealt face-down in pairs. Each turn pick two cards by row and
column (1-based). Matching pairs stay face-up; others flip back after a short
pause. The game ends when every pair is found.

Grid size and category are asked for unless given as flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
			zerolog.SetGlobalLevel(lvl)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return play(cmd.Context(), cmd, cfg)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&cfg.CategoriesFile, "categories", cfg.CategoriesFile, "YAML category catalogue (default: built-in)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	pf := root.Flags()
	pf.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of rows (0 asks)")
	pf.IntVar(&cfg.Cols, "cols", cfg.Cols, "number of columns (0 asks)")
	pf.StringVar(&cfg.Category, "category", cfg.Category, "category name (empty asks)")
	pf.DurationVar(&cfg.RevealDelay, "reveal-delay", cfg.RevealDelay, "how long a mismatched pair stays visible")
	pf.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "shuffle seed for a reproducible board (0 is random)")
	pf.BoolVar(&cfg.Daily, "daily", cfg.Daily, "deal today's board, the same for every player")

	root.AddCommand(newCategoriesCmd(&cfg))
	return root
}

func newCategoriesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories cards can be drawn from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := categories.Load(cfg.CategoriesFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, name := range cat.Names() {
				c, _ := cat.At(i + 1)
				fmt.Fprintf(out, "%d. %-12s %d values (up to %d cells)\n", i+1, name, len(c.Values), 2*len(c.Values))
			}
			return nil
		},
	}
}

func play(ctx context.Context, cmd *cobra.Command, cfg config.Config) error {
	cat, err := categories.Load(cfg.CategoriesFile)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	switch {
	case cfg.Daily:
		seed = daily.Seed(time.Now(), cfg.DailySalt)
		log.Info().Str("date", daily.DateKey(time.Now())).Msg("dealing daily board")
	case seed == 0:
		seed = board.RandomSeed()
	}
	log.Debug().Uint64("seed", seed).Msg("shuffle seed")

	_, err = session.Run(ctx, session.Options{
		In:          cmd.InOrStdin(),
		Out:         cmd.OutOrStdout(),
		Catalog:     cat,
		Rows:        cfg.Rows,
		Cols:        cfg.Cols,
		Category:    cfg.Category,
		RevealDelay: cfg.RevealDelay,
		Rand:        board.NewRand(seed),
	})
	return err
}
