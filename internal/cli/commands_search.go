package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/geo"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
	"github.com/noshnavigator/nosh-cli/internal/service/search"
)

func newSearchCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var address string
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the restaurant catalog with free text, like \"cheapest italian\".",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return errors.New(requiredArg("query"))
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

			filter := search.ParseFilter(query)
			ranker := search.NewRanker(catalog.Seed())
			results := ranker.Rank(filter, location)

			sess.LastResults = nil
			for _, result := range results {
				sess.LastResults = append(sess.LastResults, result.Restaurant.ID)
			}
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"query":   query,
					"filter":  filter,
					"results": machineResults(results),
				}, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}

			if len(results) == 0 {
				return writeTable(cmd, "No restaurants matched that query.", flags.Output)
			}
			return writeTable(cmd, renderResultsTable(results), flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	addLocationFlags(cmd, &address, &lat, &lon)
	return cmd
}

func addLocationFlags(cmd *cobra.Command, address *string, lat, lon *float64) {
	cmd.Flags().StringVar(address, "address", "", "Address to geocode and use as your location for this command.")
	cmd.Flags().Float64Var(lat, "lat", 0, "Latitude to use as your location. Requires --lon.")
	cmd.Flags().Float64Var(lon, "lon", 0, "Longitude to use as your location. Requires --lat.")
}

// latLonPtr returns lat/lon pointers only for flags the user actually set.
func latLonPtr(cmd *cobra.Command, lat, lon float64) (*float64, *float64) {
	var latPtr, lonPtr *float64
	if cmd.Flags().Changed("lat") {
		latPtr = &lat
	}
	if cmd.Flags().Changed("lon") {
		lonPtr = &lon
	}
	return latPtr, lonPtr
}

func renderResultsTable(results []domain.RankedResult) string {
	headers := []string{"#", "Restaurant", "Cuisines", "Price", "Rating", "ETA", "Distance", "Featured"}
	rows := make([][]string, 0, len(results))
	for i, result := range results {
		rec := result.Restaurant
		distance := "—"
		if result.Distance != nil {
			distance = geo.FormatMiles(*result.Distance)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			rec.Name,
			strings.Join(rec.Cuisines, ", "),
			rec.Price.Symbol(),
			fmt.Sprintf("%.1f", rec.Rating),
			rec.ETA,
			distance,
			fmt.Sprintf("%s (%s)", rec.Featured.Name, formatPrice(rec.Featured.Price)),
		})
	}
	return output.RenderTable("", headers, rows)
}

func machineResults(results []domain.RankedResult) []map[string]any {
	out := make([]map[string]any, 0, len(results))
	for i, result := range results {
		rec := result.Restaurant
		entry := map[string]any{
			"position": i + 1,
			"id":       rec.ID,
			"name":     rec.Name,
			"cuisines": rec.Cuisines,
			"price":    string(rec.Price),
			"rating":   rec.Rating,
			"eta":      rec.ETA,
			"min_eta":  result.MinETA,
			"featured": map[string]any{
				"name":  rec.Featured.Name,
				"price": rec.Featured.Price,
			},
		}
		if result.Distance != nil {
			entry["distance_miles"] = *result.Distance
		}
		out = append(out, entry)
	}
	return out
}
