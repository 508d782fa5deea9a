package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:     "send",
	Short:   "Send one text message through the gateway and exit",
	Example: `  az-evo-relay send --number 5511999999999 --text "Ola!"`,
	RunE:    sendText,
}

func init() {
	sendCmd.Flags().String("number", "", "destination number or JID")
	sendCmd.Flags().String("text", "", "message text")
	_ = sendCmd.MarkFlagRequired("number")
	_ = sendCmd.MarkFlagRequired("text")
	rootCmd.AddCommand(sendCmd)
}

func sendText(cmd *cobra.Command, _ []string) error {
	defer StopApp()

	number, _ := cmd.Flags().GetString("number")
	text, _ := cmd.Flags().GetString("text")

	if !sendUsecase.SendText(context.Background(), number, text) {
		return fmt.Errorf("gateway did not accept the message for %s", number)
	}
	cmd.Printf("message sent to %s\n", number)
	return nil
}
