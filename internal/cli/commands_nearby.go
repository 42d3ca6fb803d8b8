package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/geo"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
)

func newNearbyCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var address string
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "List every seed restaurant, closest first when a location is known.",
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
			location, err := resolveLocation(cmd.Context(), deps, &sess, latPtr, lonPtr, address)
			if err != nil {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output, "NOSH_LOCATION_ERROR", err.Error())
			}
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			results := annotateAll(catalog.Seed().All(), location)
			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"results": machineResults(results),
				}, nearbyWarnings(location), nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}

			text := renderResultsTable(results)
			if location == nil {
				text += "\n\nTip: run 'nosh locate --address \"...\"' to see distances."
			}
			return writeTable(cmd, text, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	addLocationFlags(cmd, &address, &lat, &lon)
	return cmd
}

func annotateAll(records []domain.Restaurant, location *domain.Location) []domain.RankedResult {
	results := make([]domain.RankedResult, 0, len(records))
	for _, rec := range records {
		result := domain.RankedResult{Restaurant: rec}
		if location != nil {
			d := geo.Distance(*location, rec.Location)
			result.Distance = &d
		}
		results = append(results, result)
	}
	if location != nil {
		sort.SliceStable(results, func(i, j int) bool {
			return *results[i].Distance < *results[j].Distance
		})
	}
	return results
}

func nearbyWarnings(location *domain.Location) []string {
	if location != nil {
		return nil
	}
	return []string{"no location available; distances omitted"}
}
