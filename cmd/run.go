package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alessio26gas/eulerfv/euler"
	"github.com/alessio26gas/eulerfv/input"
	"github.com/alessio26gas/eulerfv/logging"
	"github.com/alessio26gas/eulerfv/mesh"
	"github.com/alessio26gas/eulerfv/output"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation from a configuration file",
	Long: `
Loads the configuration and mesh, then runs the solver until the
iteration or time limit is reached. An interrupt signal stops the run
after the current iteration and still writes the final state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("input")
		if path == "" && len(args) > 0 {
			path = args[0]
		}
		if path == "" {
			return fmt.Errorf("must supply a configuration file (-i, --input)")
		}
		return runSimulation(path)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringP("input", "i", "", "configuration file (key=value or YAML)")
}

// logLevel maps the configured verbosity to a logging level.
func logLevel(verbosity int) logging.LogLevel {
	switch {
	case verbosity <= 0:
		return logging.LogLevelError
	case verbosity == 1:
		return logging.LogLevelWarn
	case verbosity == 2:
		return logging.LogLevelInfo
	default:
		return logging.LogLevelDebug
	}
}

func runSimulation(path string) error {
	in, err := input.Load(path)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	log, err := logging.NewWithFile(in.Log.LogFile, logLevel(in.Log.Verbosity))
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	log.Info("configuration loaded", "file", path)

	m, err := mesh.Read(in, log)
	if err != nil {
		return fmt.Errorf("reading mesh: %w", err)
	}

	w, err := output.NewFileWriter(in, log)
	if err != nil {
		return err
	}

	sim, err := euler.NewSimulation(in, m, log, w)
	if err != nil {
		return err
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Warn("interrupt received, stopping after current iteration")
		sim.Status.Stop()
	}()
	defer signal.Stop(sig)

	if err := sim.Preprocess(); err != nil {
		return fmt.Errorf("preprocessing: %w", err)
	}
	if err := sim.Solve(); err != nil {
		return fmt.Errorf("solving: %w", err)
	}
	return nil
}
