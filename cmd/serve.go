package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/flashiz/internal/devserver"
	"github.com/abhisek/flashiz/internal/logz"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the in-memory reference backend",
	Long: `Run a development backend that implements the flashcard REST API in
memory. Data is lost when the process exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := logz.NewConsole(cfg.Log.Level)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Serve.Addr
		}
		secret := cfg.Serve.JWTSecret
		if secret == "" {
			secret = uuid.NewString()
			logger.Warn("serve.jwt_secret not set; tokens will not survive a restart")
		}

		opts := []devserver.Option{devserver.WithLogger(logger)}
		if seed, _ := cmd.Flags().GetBool("seed"); seed {
			decks := devserver.SampleDecks()
			opts = append(opts, devserver.WithDecks(decks...))
			logger.Info("seeded sample decks", zap.Int("decks", len(decks)))
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return devserver.New(secret, opts...).ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default serve.addr, :5000)")
	serveCmd.Flags().Bool("seed", false, "Preload sample decks")
}
