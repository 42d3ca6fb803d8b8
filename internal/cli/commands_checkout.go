package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/noshnavigator/nosh-cli/internal/service/cart"
	"github.com/noshnavigator/nosh-cli/internal/service/output"
)

func newCheckoutCommand(deps Dependencies) *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Total the cart and print a demo order confirmation.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := parseOutputFormat(flags.Format)
			if err != nil {
				return err
			}
			sess, err := deps.Sessions.Load(cmd.Context())
			if err != nil {
				return err
			}
			if len(sess.Cart) == 0 {
				return emitError(cmd, format, resolveProfileLabel(flags.Profile), flags.Output,
					"NOSH_EMPTY_CART", "Your cart is empty. Add something before checking out.")
			}

			store := cart.NewStore(sess.Cart)
			totals := cart.Checkout(store.Subtotal())
			orderNumber := fmt.Sprintf("#NS-%d-%03d", deps.now().Year(), rand.IntN(1000))

			sess.Cart = nil
			if err := deps.Sessions.Save(cmd.Context(), sess); err != nil {
				return err
			}

			if format != output.FormatTable {
				env := output.BuildEnvelope(resolveProfileLabel(flags.Profile), map[string]any{
					"order_number": orderNumber,
					"totals":       totals,
				}, []string{"demo checkout; no real order was placed"}, nil)
				return writeMachinePayload(cmd, env, format, flags.Output)
			}

			text := fmt.Sprintf(
				"Order %s confirmed!\n\nSubtotal: %s\nDelivery fee: %s\nTax: %s\nTotal: %s\n\nThis is a demo checkout; no real order was placed.",
				orderNumber,
				formatPrice(totals.Subtotal),
				formatPrice(totals.DeliveryFee),
				formatPrice(totals.Tax),
				formatPrice(totals.Total),
			)
			return writeTable(cmd, text, flags.Output)
		},
	}

	addGlobalFlags(cmd, &flags)
	return cmd
}
