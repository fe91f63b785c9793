package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "notelane",
	Short: "Live spectrum to note lanes",
	Long:  `Listens to the default input device, names the notes it hears, keeps them in stable display lanes, and can record a take and play it back.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
