package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/UnknownOlympus/placebridge/internal/api"
	"github.com/UnknownOlympus/placebridge/internal/config"
	"github.com/UnknownOlympus/placebridge/internal/metrics"
	"github.com/UnknownOlympus/placebridge/internal/models"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

type convertOptions struct {
	direction   string
	input       string
	maxDistance float64
}

var convertOpts = &convertOptions{}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a batch of entries from a JSON file and print the results",
	Long: `
convert reads either a request object {"direction", "maxDistanceMeters", "entries"}
or a bare array of entries and writes the conversion response to stdout.
Flags override the values found in the file.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.MustLoad()
		logger := setupLogger(cfg.Env, os.Stderr)

		data, err := readInput(convertOpts.input, cmd.InOrStdin())
		if err != nil {
			return err
		}

		var maxDistance *float64
		if cmd.Flags().Changed("max-distance") {
			maxDistance = &convertOpts.maxDistance
		}
		req, err := buildRequest(data, convertOpts.direction, maxDistance, limitsFrom(cfg))
		if err != nil {
			return err
		}

		converter, err := buildConverter(cfg, logger, metrics.NewMetrics(prometheus.NewRegistry()))
		if err != nil {
			return err
		}

		var onDone func(models.ConversionResult)
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar := progressbar.NewOptions(len(req.Entries),
				progressbar.OptionSetDescription("Converting "+string(req.Direction)),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
			onDone = func(models.ConversionResult) { _ = bar.Add(1) }
		}

		results := converter.ConvertBatch(cmd.Context(), req.Direction, req.Entries, req.MaxDistanceMeters, onDone)

		return writeResponse(cmd.OutOrStdout(), api.Response{
			OK:                true,
			Direction:         req.Direction,
			MaxDistanceMeters: req.MaxDistanceMeters,
			Results:           results,
		})
	},
}

func init() {
	convertCmd.Flags().StringVarP(&convertOpts.direction, "direction", "d", "",
		"naver_to_kakao or kakao_to_naver, required for a bare entries array")
	convertCmd.Flags().StringVarP(&convertOpts.input, "input", "i", "-", "JSON file to read, - for stdin")
	convertCmd.Flags().Float64Var(&convertOpts.maxDistance, "max-distance", 0,
		"distance in meters under which a match passes")
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" || path == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}

		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return data, nil
}

// buildRequest accepts a request object or a bare entries array and applies flag overrides.
func buildRequest(data []byte, direction string, maxDistance *float64, limits api.Limits) (*api.Request, error) {
	fields := map[string]json.RawMessage{}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		fields["entries"] = trimmed
	} else if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: input must be a request object or an entries array", api.ErrInvalidInput)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}

	if direction != "" {
		encoded, err := json.Marshal(direction)
		if err != nil {
			return nil, fmt.Errorf("encoding direction: %w", err)
		}
		fields["direction"] = encoded
	}
	if maxDistance != nil {
		encoded, err := json.Marshal(*maxDistance)
		if err != nil {
			return nil, fmt.Errorf("encoding max distance: %w", err)
		}
		fields["maxDistanceMeters"] = encoded
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	return api.DecodeRequest(body, limits)
}

func writeResponse(out io.Writer, resp api.Response) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(resp); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}

	return nil
}
