// visaged runs the face engine as a daemon: a fixed-rate animation loop,
// the dashboard API, and periodic mood persistence.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/visagelabs/go-visage/internal/config"
	"github.com/visagelabs/go-visage/internal/log"
	"github.com/visagelabs/go-visage/pkg/store"
	"github.com/visagelabs/go-visage/pkg/visage"
	"github.com/visagelabs/go-visage/pkg/web"
)

const autosavePeriod = 30 * time.Second

var (
	dataDir    string
	port       string
	tuningPath string
	skipReveal bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "visaged",
		Short: "visaged - emotion-driven face rig daemon",
		RunE:  runDaemon,
	}

	rootCmd.Flags().StringVar(&dataDir, "data-dir", config.DataDir(), "Data directory")
	rootCmd.Flags().StringVar(&port, "port", config.Port(), "Dashboard HTTP port")
	rootCmd.Flags().StringVar(&tuningPath, "tuning", "", "YAML tuning file (defaults built in)")
	rootCmd.Flags().BoolVar(&skipReveal, "skip-reveal", false, "Skip the wake-up choreography")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	log.Init(config.LogLevel())

	tuning := config.DefaultTuning()
	if tuningPath != "" {
		var err error
		if tuning, err = config.LoadTuning(tuningPath); err != nil {
			return fmt.Errorf("load tuning: %w", err)
		}
		log.Info("tuning loaded", "path", tuningPath)
	}

	engine, err := visage.NewWithConfig(tuning)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	st, err := store.Open(filepath.Join(dataDir, "visage.db"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// Wake up in the mood we went down with.
	switch mood, err := st.LoadMood(); {
	case err == nil:
		engine.SetMood(mood)
		log.Info("mood restored", "pad", mood)
	case errors.Is(err, store.ErrNoMood):
		log.Info("no saved mood, starting neutral")
	default:
		log.Warn("mood restore failed", "error", err)
	}

	server := web.NewServer(port, engine)
	server.StartAsync()

	if !skipReveal {
		engine.StartReveal()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dt := 1.0 / tuning.TickRate
	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	autosave := time.NewTicker(autosavePeriod)
	defer autosave.Stop()

	log.Info("daemon running", "port", port, "tick_rate", tuning.TickRate, "data_dir", dataDir)

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down")
			persist(st, engine)
			return server.Shutdown()

		case <-ticker.C:
			snap := engine.Tick(dt)
			server.PublishFrame(snap)

		case <-autosave.C:
			persist(st, engine)
		}
	}
}

func persist(st *store.Store, engine *visage.Engine) {
	if err := st.SaveMood(engine.CurrentPAD()); err != nil {
		log.Warn("mood autosave failed", "error", err)
	}
	if err := st.AppendRecords(engine.History().Records()); err != nil {
		log.Warn("history autosave failed", "error", err)
	}
}
