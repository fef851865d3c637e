package main

import (
	"fmt"

	"github.com/kartikey1112/hrms-dashboard/internal/apiclient"
	"github.com/kartikey1112/hrms-dashboard/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

type closableModel interface {
	tea.Model
	Close()
	Theme() tui.Theme
}

func newEmployeesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "employees",
		Aliases: []string{"emp"},
		Short:   "Browse and edit the employee directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			opts, err := c.EmployeeOptions(cmd.Context())
			if err != nil {
				return fmt.Errorf("load employee options: %w", err)
			}
			m := tui.NewEmployeeList(apiclient.EmployeeSource{Client: c}, opts, tui.ThemeByName(a.cfg.Theme), a.logger)
			return a.runList(cmd, m)
		},
	}
}

func newLeavesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leaves",
		Short: "Browse, file and review leave requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			m := tui.NewLeaveList(apiclient.LeaveSource{Client: c}, tui.ThemeByName(a.cfg.Theme), a.logger)
			return a.runList(cmd, m)
		},
	}
}

// runList runs m full screen and remembers the theme it ended with.
func (a *app) runList(cmd *cobra.Command, m closableModel) error {
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return err
	}

	if name := m.Theme().Name(); name != a.cfg.Theme {
		a.cfg.Theme = name
		return a.save()
	}
	return nil
}
