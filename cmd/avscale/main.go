package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/cobra"
	"github.com/xaionaro-go/avscale/logger"
)

var loggerLevel = logger.LevelWarning

var rootCmd = &cobra.Command{
	Use:   "avscale",
	Short: "Crop and scale raw RGB24/YUV420P video preserving the aspect ratio",
	Long: `avscale scales raw (headerless) video frames to a target resolution.

In the aspect-ratio-correct mode (the default) the input is center-cropped
to the aspect ratio of the output first, so the picture is never stretched.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		l := logrus.Default().WithLevel(loggerLevel)
		logger.SetDefault(func() logger.Logger {
			return l
		})
		cmd.SetContext(logger.CtxWithLogger(cmd.Context(), l))
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		belt.Flush(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().Var(&loggerLevel, "log-level", "Log level")
}

func main() {
	ctx, cancelFn := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelFn()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
