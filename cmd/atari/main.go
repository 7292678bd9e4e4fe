// Command atari runs preprocessed Atari environments from the command
// line.
//
// Usage:
//
//	atari rollout --env ArcadeCatchNoFrameskip-v0 --steps 10000 --out runs
//	atari info --backend gym --env PongNoFrameskip-v4
//
// Environment defaults may be given in a .env file through the ATARI_*
// variables read by envconfig.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/samuelfneumann/goatari/environment/envconfig"
	"github.com/samuelfneumann/goatari/experiment"
	"github.com/samuelfneumann/goatari/experiment/trackers"
	"github.com/samuelfneumann/goatari/utils/progressbar"
	"github.com/spf13/cobra"
)

// flags holds the command line flags shared by all subcommands
type flags struct {
	config      string
	env         string
	backend     string
	episodeLife bool
	clipRewards bool
	frameStack  int
	seed        uint64
}

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "atari",
		Short: "Atari runs Atari environments behind the standard DQN preprocessing",
	}

	var f flags
	rootCmd.PersistentFlags().StringVar(&f.config, "config", "",
		"JSON environment configuration file")
	rootCmd.PersistentFlags().StringVar(&f.env, "env", "",
		"environment ID, which must contain NoFrameskip")
	rootCmd.PersistentFlags().StringVar(&f.backend, "backend", "",
		"environment backend, arcade or gym")
	rootCmd.PersistentFlags().BoolVar(&f.episodeLife, "episode-life", false,
		"end episodes on loss of life")
	rootCmd.PersistentFlags().BoolVar(&f.clipRewards, "clip-rewards", true,
		"clip rewards to their sign")
	rootCmd.PersistentFlags().IntVar(&f.frameStack, "frame-stack", 4,
		"number of frames stacked into each observation")
	rootCmd.PersistentFlags().Uint64Var(&f.seed, "seed", 0, "random seed")

	var steps uint
	var out string
	var progress bool
	rolloutCmd := &cobra.Command{
		Use:   "rollout",
		Short: "Run a random agent and save episodic returns and lengths",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveConfig(cmd.Flags().Changed, f)
			if err != nil {
				return err
			}
			return rollout(c, f.seed, steps, out, progress)
		},
	}
	rolloutCmd.Flags().UintVar(&steps, "steps", 10000,
		"number of environment steps to run")
	rolloutCmd.Flags().StringVar(&out, "out", ".",
		"directory to save tracked data to")
	rolloutCmd.Flags().BoolVar(&progress, "progress", true,
		"display a progress bar")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print the specifications of the preprocessed environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveConfig(cmd.Flags().Changed, f)
			if err != nil {
				return err
			}
			return info(cmd, c, f.seed)
		},
	}

	rootCmd.AddCommand(rolloutCmd, infoCmd)
	return rootCmd
}

// resolveConfig builds the environment configuration from, in order of
// increasing precedence, the defaults, the configuration file, ATARI_*
// environment variables, and explicitly set flags
func resolveConfig(changed func(flag string) bool, f flags) (envconfig.Config,
	error) {
	c := envconfig.Default()
	if f.config != "" {
		var err error
		if c, err = envconfig.Load(f.config); err != nil {
			return envconfig.Config{}, err
		}
	}

	c, err := c.FromEnv()
	if err != nil {
		return envconfig.Config{}, err
	}

	if changed("env") {
		c.Environment = f.env
	}
	if changed("backend") {
		c.Backend = envconfig.Backend(f.backend)
	}
	if changed("episode-life") {
		c.EpisodeLife = f.episodeLife
	}
	if changed("clip-rewards") {
		c.ClipRewards = f.clipRewards
	}
	if changed("frame-stack") {
		c.FrameStack = f.frameStack
	}

	return c, nil
}

// rollout runs a random agent for steps steps and saves the episodic
// returns and lengths to out
func rollout(c envconfig.Config, seed uint64, steps uint, out string,
	progress bool) error {
	runID := uuid.New().String()
	log.Printf("Run %v: %v", runID, c)

	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("rollout: could not create output directory: %v",
			err)
	}
	if err := c.Save(filepath.Join(out, runID+"_config.json")); err != nil {
		return fmt.Errorf("rollout: %v", err)
	}

	returns := trackers.NewReturn(filepath.Join(out, runID+"_return.bin"))
	lengths := trackers.NewEpisodeLength(filepath.Join(out,
		runID+"_length.bin"))

	expConf := experiment.Config{
		Type:     experiment.OnlineExp,
		MaxSteps: steps,
		EnvConf:  c,
	}
	exp, err := expConf.CreateExp(seed, returns, lengths)
	if err != nil {
		return fmt.Errorf("rollout: %v", err)
	}
	defer exp.Close()

	if progress {
		exp.SetProgressBar(progressbar.New(50, int(steps), 100))
	}

	if err := exp.Run(); err != nil {
		return fmt.Errorf("rollout: %v", err)
	}
	if err := exp.Save(); err != nil {
		return fmt.Errorf("rollout: %v", err)
	}

	log.Printf("Run %v: %v episodes finished, returns: %v", runID,
		len(returns.Data()), returns.Data())
	return nil
}

// info prints the specifications of the preprocessed environment
func info(cmd *cobra.Command, c envconfig.Config, seed uint64) error {
	env, err := c.Create(seed)
	if err != nil {
		return fmt.Errorf("info: %v", err)
	}
	defer env.Close()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Configuration: %v\n", c)
	fmt.Fprintf(w, "Environment: %v\n", env)
	fmt.Fprintf(w, "Observations: %v\n", env.ObservationSpec())
	fmt.Fprintf(w, "Actions: %v %v\n", env.ActionSpec(), env.ActionMeanings())
	return nil
}
