// Package main implements a desktop utility that extracts every frame of a video into a
// numbered PNG sequence with ffmpeg, using the Fyne framework.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
	"github.com/Akaiko1/mp4-png-converter/internal/logging"
	"github.com/Akaiko1/mp4-png-converter/internal/ui"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "mp4png",
	Short: "Convert an MP4 file into a PNG sequence at full resolution",
	Long: `mp4png extracts every frame of a video as frame_0001.png, frame_0002.png, ...
using ffmpeg, and mirrors its progress in a log pane.

Without flags it opens the desktop window. With --headless it converts
--input into --output and prints the log to the terminal.`,
	SilenceUsage: true,
	RunE:         runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mp4png.yaml or ~/.config/mp4png/mp4png.yaml)")
	rootCmd.PersistentFlags().String("ffmpeg", "", "path to the ffmpeg binary")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")
	rootCmd.Flags().StringP("input", "i", "", "input video file")
	rootCmd.Flags().StringP("output", "o", "", "output directory for the frames")
	rootCmd.Flags().Bool("headless", false, "run without a window and print the log to stdout")

	_ = viper.BindPFlag("ffmpeg_path", rootCmd.PersistentFlags().Lookup("ffmpeg"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mp4png")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mp4png"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)
	logger.Info("starting mp4png", "version", version, "ffmpeg", cfg.FFmpegPath)

	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	headless, _ := cmd.Flags().GetBool("headless")

	if headless {
		return runHeadless(cmd.Context(), cfg, logger, input, output, cmd.OutOrStdout())
	}

	app := ui.NewConverterApp(cfg, logger)
	app.SetPaths(input, output)
	logger.Debug("app created, starting UI")
	app.Run()
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mp4png", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
