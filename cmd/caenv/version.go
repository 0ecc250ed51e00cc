package caenv

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the caenv version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println("caenv", version)
		},
	}
	rootCmd.AddCommand(cmd)
}
