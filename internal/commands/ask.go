package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/agent"
)

func newAskCommand(configPath *string, verbose *bool) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a single question and print the answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(*configPath, *verbose)
			if err != nil {
				return err
			}
			defer e.close()

			rt := e.runtime()
			a, err := agent.New(cmd.Context(), rt, e.store, agent.Options{
				Model:      e.cfg.Agent.Model,
				MaxHistory: e.cfg.Agent.MaxHistory,
				Log:        e.log,
			})
			if err != nil {
				return err
			}
			defer e.flushAudit(rt)

			answer, err := a.Ask(cmd.Context(), user, args[0])
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identifier (demo data when omitted)")

	return cmd
}
