package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/fakeyudi/ticker/internal/segment"
)

var (
	formatJSON     bool
	formatSegments string
)

var formatCmd = &cobra.Command{
	Use:   "format <millis|duration>",
	Short: "Print the day/hour/minute/second decomposition of a duration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		millis, err := parseMillis(args[0])
		if err != nil {
			return err
		}
		names, err := segment.ParseSelector(formatSegments)
		if err != nil {
			return err
		}

		var r segment.Renderer = &segment.TextRenderer{}
		if formatJSON {
			r = &segment.JSONRenderer{}
		}
		out, err := r.Render(segment.Format(millis), names)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(out), "\n"))
		return err
	},
}

// parseMillis accepts a plain millisecond count or a Go duration string.
func parseMillis(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: want milliseconds or a duration like 1h30m", s)
	}
	return d.Milliseconds(), nil
}

func init() {
	formatCmd.Flags().BoolVar(&formatJSON, "json", false, "print JSON")
	formatCmd.Flags().StringVar(&formatSegments, "segments", "", "segments to print (default all)")
	rootCmd.AddCommand(formatCmd)
}
