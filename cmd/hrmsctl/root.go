package main

import (
	"context"
	"errors"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/apiclient"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errNotSignedIn = errors.New("not signed in, run 'hrmsctl login' first")

type app struct {
	configPath string
	server     string
	theme      string
	logFile    string

	cfg    cliConfig
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "hrmsctl",
		Short: "Terminal client for the HRMS dashboard",
		Long: `hrmsctl signs in to the HRMS API and browses the employee
directory and leave requests as interactive lists.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $HRMSCTL_CONFIG or the user config dir)")
	flags.StringVar(&a.server, "server", "", "API base URL, overrides the config file")
	flags.StringVar(&a.theme, "theme", "", "color theme: light or dark")
	flags.StringVar(&a.logFile, "log-file", "", "write debug logs to this file")

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newProfileCmd(a),
		newEmployeesCmd(a),
		newLeavesCmd(a),
	)
	return root
}

func (a *app) init() error {
	logger := zap.NewNop()
	if a.logFile != "" {
		zc := zap.NewDevelopmentConfig()
		zc.OutputPaths = []string{a.logFile}
		zc.ErrorOutputPaths = []string{a.logFile}
		l, err := zc.Build()
		if err != nil {
			return err
		}
		logger = l
	}
	zap.ReplaceGlobals(logger)
	a.logger = logger

	if a.configPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return err
		}
		a.configPath = p
	}
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.server != "" {
		cfg.Server = a.server
	}
	if a.theme != "" {
		cfg.Theme = a.theme
	}
	a.cfg = cfg
	return nil
}

func (a *app) save() error {
	return saveConfig(a.configPath, a.cfg)
}

func (a *app) client() *apiclient.Client {
	return apiclient.New(a.cfg.Server, a.cfg.AccessToken, nil, a.logger)
}

// session returns a client for the stored session, refreshing the access
// token first when it has expired.
func (a *app) session(ctx context.Context) (*apiclient.Client, error) {
	if !a.cfg.signedIn() {
		return nil, errNotSignedIn
	}
	c := a.client()
	if !a.cfg.expired(time.Now()) || a.cfg.RefreshToken == "" {
		return c, nil
	}

	sess, err := c.WithToken("").Refresh(ctx, a.cfg.RefreshToken)
	if err != nil {
		a.logger.Warn("token refresh failed", zap.Error(err))
		a.cfg.clearSession()
		_ = a.save()
		return nil, errNotSignedIn
	}
	a.cfg.AccessToken = sess.AccessToken
	a.cfg.RefreshToken = sess.RefreshToken
	a.cfg.ExpiresAt = sess.ExpiresAt
	if err := a.save(); err != nil {
		return nil, err
	}
	return c.WithToken(sess.AccessToken), nil
}
