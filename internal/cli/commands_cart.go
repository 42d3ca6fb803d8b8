package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/catalog"
	"github.com/noshnavigator/nosh-cli/internal/domain"
	"github.com/noshnavigator/nosh-cli/internal/service/cart"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
)

func newCartCommand(deps Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show or edit the local cart.",
	}
	cmd.AddCommand(newCartShowCommand(deps))
	cmd.AddCommand(newCartAddCommand(deps))
	cmd.AddCommand(newCartRemoveCommand(deps))
	cmd.AddCommand(newCartQuantityCommand(deps))
	cmd.AddCommand(newCartClearCommand(deps))

	// Bare "nosh cart" shows the cart.
	showFlags := globalFlags{}
	addGlobalFlags(cmd, &showFlags)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return runCartShow(cmd, deps, showFlags)
	}
	return cmd
}

func newCartShowCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "List cart lines with running totals.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCartShow(cmd, deps, flags)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func runCartShow(cmd *cobra.Command, deps Dependencies, flags globalFlags) error {
	format, err := parseOutputFormat(flags.Format)
	if err != nil {
		return err
	}
	sess, err := deps.Sessions.Load(cmd.Context())
	if err != nil {
		return err
	}

	if format != output.FormatTable {
		store := cart.NewStore(sess.Cart)
		env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
			"lines":  machineCartLines(sess.Cart),
			"count":  store.Count(),
			"totals": cart.Checkout(store.Subtotal()),
		}, nil, nil)
		return writeMachinePayload(cmd, env, format, flags.Output)
	}
	return writeTable(cmd, renderCartTable(sess.Cart), flags.Output)
}

func newCartAddCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "add <restaurant>",
		Short: "Add a restaurant's featured item to the cart.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			target := strings.TrimSpace(strings.Join(args, " "))
			if target == "" {
				return errors.New(requiredArg("restaurant"))
			}

			rec, ok := lookupRestaurant(target)
			if !ok {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output,
					"NOSH_UNKNOWN_RESTAURANT", fmt.Sprintf("No restaurant matches %q.", target))
			}

			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			store := cart.NewStore(sess.Cart)
			line := store.Add(rec.Name, rec.Featured.Name, rec.Featured.Price)
			sess.Cart = store.Lines()
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"line":  machineCartLine(line),
					"count": store.Count(),
				}, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}
			return writeTable(cmd, fmt.Sprintf("Added %s from %s (x%d).", line.Item, line.Restaurant, line.Quantity), flags.Output)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newCartRemoveCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "remove <line-id>",
		Short: "Remove a line from the cart.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			store := cart.NewStore(sess.Cart)
			line, ok := store.Find(args[0])
			if !ok || !store.Remove(args[0]) {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output,
					"NOSH_UNKNOWN_LINE", fmt.Sprintf("No cart line with id %q.", args[0]))
			}
			sess.Cart = store.Lines()
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"removed": machineCartLine(line),
					"count":   store.Count(),
				}, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}
			return writeTable(cmd, fmt.Sprintf("Removed %s from %s.", line.Item, line.Restaurant), flags.Output)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

func newCartQuantityCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	var delta int
	cmd := &cobra.Command{
		Use:   "quantity <line-id>",
		Short: "Adjust a line's quantity by --delta; zero or below removes it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			if delta == 0 {
				return errors.New("--delta must be a non-zero change, like 1 or -1")
			}
			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			store := cart.NewStore(sess.Cart)
			if _, ok := store.Find(args[0]); !ok {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output,
					"NOSH_UNKNOWN_LINE", fmt.Sprintf("No cart line with id %q.", args[0]))
			}
			line, remains := store.UpdateQuantity(args[0], delta)
			sess.Cart = store.Lines()
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				data := map[string]any{"count": store.Count(), "removed": !remains}
				if remains {
					data["line"] = machineCartLine(line)
				}
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), data, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}
			if !remains {
				return writeTable(cmd, "Line removed.", flags.Output)
			}
			return writeTable(cmd, fmt.Sprintf("%s is now x%d.", line.Item, line.Quantity), flags.Output)
		},
	}
	addGlobalFlags(cmd, &flags)
	cmd.Flags().IntVar(&delta, "delta", 0, "Quantity change, for example 1 or -1.")
	return cmd
}

func newCartClearCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			sess.Cart = nil
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{"cleared": true}, nil, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}
			return writeTable(cmd, "Cart cleared.", flags.Output)
		},
	}
	addGlobalFlags(cmd, &flags)
	return cmd
}

// lookupRestaurant resolves a cart add target: a numeric catalog id, an
// exact name, then a loose name match inside the text.
func lookupRestaurant(target string) (domain.Restaurant, bool) {
	seed := catalog.Seed()
	if id, err := strconv.Atoi(target); err == nil {
		return seed.ByID(id)
	}
	if rec, ok := seed.ByName(target); ok {
		return rec, true
	}
	return seed.MatchName(target)
}

func renderCartTable(lines []domain.CartLine) string {
	if len(lines) == 0 {
		return "Your cart is empty. Try 'nosh cart add \"Mario's Pizzeria\"' or chat with the assistant."
	}
	headers := []string{"Line", "Restaurant", "Item", "Price", "Qty"}
	rows := make([][]string, 0, len(lines))
	store := cart.NewStore(lines)
	for _, line := range lines {
		rows = append(rows, []string{
			line.ID,
			line.Restaurant,
			line.Item,
			formatPrice(line.Price),
			fmt.Sprintf("%d", line.Quantity),
		})
	}
	totals := cart.Checkout(store.Subtotal())
	summary := fmt.Sprintf(
		"Subtotal: %s\nDelivery fee: %s\nTax: %s\nTotal: %s",
		formatPrice(totals.Subtotal),
		formatPrice(totals.DeliveryFee),
		formatPrice(totals.Tax),
		formatPrice(totals.Total),
	)
	return output.RenderTable("", headers, rows) + "\n\n" + summary
}

func machineCartLine(line domain.CartLine) map[string]any {
	return map[string]any{
		"id":         line.ID,
		"restaurant": line.Restaurant,
		"item":       line.Item,
		"price":      line.Price,
		"quantity":   line.Quantity,
	}
}

func machineCartLines(lines []domain.CartLine) []map[string]any {
	out := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		out = append(out, machineCartLine(line))
	}
	return out
}
