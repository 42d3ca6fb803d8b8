package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/service/output"
	"github.com/noshnavigator/nosh-cli/internal/session"
)

func newLocateCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var address string
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve and cache your location, or show the cached one.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}

			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			latPtr, lonPtr := latLonPtr(cmd, lat, lon)

			// Without arguments, report the cached coordinate.
			if latPtr == nil && lonPtr == nil && address == "" {
				loc, ok := session.FreshLocation(sess, deps.now())
				if !ok {
					return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output,
						"NOSH_NO_LOCATION", "No fresh cached location. Provide --address or --lat/--lon.")
				}
				return emitLocation(cmd, flags, format, loc.Lat, loc.Lon, true)
			}

			location, err := resolveLocation(cmd.Context(), deps, &sess, latPtr, lonPtr, address)
			if err != nil {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, "NOSH_LOCATION_ERROR", err.Error())
			}
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}
			return emitLocation(cmd, flags, format, location.Lat, location.Lon, false)
		},
	}

	addGlobalFlags(cmd, &flags)
	addLocationFlags(cmd, &address, &lat, &lon)
	return cmd
}

func emitLocation(cmd *cobra.Command, flags globalFlags, format output.Format, lat, lon float64, cached bool) error {
	if format != output.FormatTable {
		env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
			"lat":    lat,
			"lon":    lon,
			"cached": cached,
		}, nil, nil)
		return writeMachinePayload(cmd, env, format, flags.Output)
	}
	label := "Location set"
	if cached {
		label = "Cached location"
	}
	return writeTable(cmd, fmt.Sprintf("%s: %.4f, %.4f", label, lat, lon), flags.Output)
}
