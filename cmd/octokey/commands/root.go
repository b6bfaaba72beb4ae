package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"octokey/internal/app"
	"octokey/internal/logging"
)

const version = "1.0.0"

var errInvalidCommand = errors.New("invalid command. Use --help for usage information")

var (
	sshDir  string
	remote  string
	verbose bool
	appCtx  *app.App

	// newTools builds the collaborators; tests swap it for a recording double.
	newTools = app.NewTools
)

// Execute runs the CLI.
func Execute() error {
	root := NewRootCommand()
	err := root.Execute()
	if appCtx != nil {
		_ = appCtx.Log.Sync()
	}
	return err
}

// NewRootCommand returns the octokey command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "octokey",
		Short:        "A tentacular tool to manage GitHub SSH keys",
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return errInvalidCommand
		},
	}
	root.PersistentPreRunE = setup

	root.PersistentFlags().StringVar(&sshDir, "ssh-dir", "", "key directory (default ~/.ssh, env OCTOKEY_SSH_DIR)")
	root.PersistentFlags().StringVar(&remote, "remote", "", "endpoint used by check (default git@github.com, env OCTOKEY_REMOTE)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log external commands to stderr")

	root.AddCommand(addCmd(), switchCmd(), checkCmd(), listCmd())
	return root
}

// setup loads configuration and builds appCtx before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}
	if sshDir != "" {
		cfg.SSHDir = sshDir
	}
	if remote != "" {
		cfg.Remote = remote
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := logging.New(level, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	log.Debug("config loaded",
		zap.String("ssh_dir", cfg.SSHDir),
		zap.String("remote", cfg.Remote),
		zap.String("generator", cfg.Generator),
		zap.String("agent", cfg.Agent),
	)

	streams := app.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	appCtx = app.NewWithTools(cfg, newTools(cfg, streams, log), log)
	return nil
}
