package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rhuss/llmhub/pkg/api"
	"github.com/rhuss/llmhub/pkg/hub"
)

func newChatCmd(g *globals) *cobra.Command {
	var req api.ChatRequest

	cmd := &cobra.Command{
		Use:   "chat MESSAGE...",
		Short: "Send one message through the engine",
		Long: `Resolves the provider and instruction set from the configured catalog and
calls the vendor directly, without a running server.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			h, err := hub.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer h.Close()

			req.Message = strings.Join(args, " ")
			if err := api.ValidateChatRequest(&req); err != nil {
				return err
			}
			resp, err := h.Engine.Chat(cmd.Context(), &req)
			if err != nil {
				return err
			}
			if g.output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), resp.Response)
			return err
		},
	}
	cmd.Flags().StringVarP(&req.ProviderID, "provider", "p", "", "provider id")
	cmd.Flags().StringVarP(&req.InstructionID, "instruction", "i", "", "instruction set id")
	cmd.Flags().StringVar(&req.ConversationID, "conversation-id", "", "conversation id to echo back")
	cmd.MarkFlagRequired("provider")
	cmd.MarkFlagRequired("instruction")
	return cmd
}
