package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finchat-dev/finchat/internal/agent"
)

func newChatCommand(configPath *string, verbose *bool) *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation about your finances",
		Args:  cobra.NoArgs,
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

			fmt.Println("finchat ready. Ask about your transactions; 'exit' to quit.")
			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				question := strings.TrimSpace(scanner.Text())
				if question == "" {
					continue
				}
				if question == "exit" || question == "quit" {
					break
				}

				answer, err := a.Ask(cmd.Context(), user, question)
				if err != nil {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
					continue
				}
				fmt.Println(answer)
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "user identifier (demo data when omitted)")

	return cmd
}
