package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/shipfunk/pkg/shipfunk"
	"golang.org/x/sync/errgroup"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "shipfunk",
	Short:   "Shipfunk logistics API client",
	Version: version,
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Fetch price range and delivery options for a basket",
	RunE:  runQuote,
}

var pickupsCmd = &cobra.Command{
	Use:   "pickups",
	Short: "List pickup points for a carrier",
	RunE:  runPickups,
}

var statusCmd = &cobra.Command{
	Use:   "status <placed|cancelled>",
	Short: "Set the order status",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

var trackCmd = &cobra.Command{
	Use:   "track <tracking-code>",
	Short: "Fetch tracking events for a parcel",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrack,
}

var parcelsCmd = &cobra.Command{
	Use:   "parcels",
	Short: "List the parcels of the order",
	RunE:  runParcels,
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Account administration",
}

var userGetCmd = &cobra.Command{
	Use:   "get <email>",
	Short: "Fetch a user attached to the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserGet,
}

var userDetachCmd = &cobra.Command{
	Use:   "detach <email>",
	Short: "Detach a user from the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDetach,
}

var userInviteCmd = &cobra.Command{
	Use:   "invite <email>",
	Short: "Invite an existing user under the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserInvite,
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account from a JSON document",
	RunE:  runUserCreate,
}

var (
	flagProducts   []string
	flagCountry    string
	flagPostalCode string
	flagValue      float64
	flagCarrier    string
	flagCount      int
	flagFinalOrder string
	flagCompany    string
	flagUserData   string
)

func init() {
	quoteCmd.Flags().StringArrayVar(&flagProducts, "product", nil, "product line as code:weight[:amount], repeatable")
	quoteCmd.Flags().StringVar(&flagCountry, "country", "", "customer country code")
	quoteCmd.Flags().StringVar(&flagPostalCode, "postal-code", "", "customer postal code")
	quoteCmd.Flags().Float64Var(&flagValue, "value", 0, "total value of the order")

	pickupsCmd.Flags().StringVar(&flagCarrier, "carrier", "", "Shipfunk carrier code")
	pickupsCmd.Flags().StringVar(&flagCountry, "country", "", "customer country code")
	pickupsCmd.Flags().StringVar(&flagPostalCode, "postal-code", "", "customer postal code")
	pickupsCmd.Flags().IntVar(&flagCount, "count", 0, "number of pickup points to return")

	statusCmd.Flags().StringVar(&flagFinalOrder, "final-order-id", "", "real order id replacing a temporary one")

	trackCmd.Flags().StringVar(&flagCarrier, "carrier", "", "Shipfunk carrier code")
	trackCmd.Flags().StringVar(&flagCompany, "company", "", "transport company name")

	userCreateCmd.Flags().StringVar(&flagUserData, "data", "", "user document as JSON")

	userCmd.AddCommand(userGetCmd, userDetachCmd, userInviteCmd, userCreateCmd)
	rootCmd.AddCommand(quoteCmd, pickupsCmd, statusCmd, trackCmd, parcelsCmd, userCmd)
}

// runQuote fetches the price range and the delivery options for the
// basket concurrently; either result is useful without the other.
func runQuote(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := newOrderClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	for _, spec := range flagProducts {
		if err := addProductLine(client, spec); err != nil {
			return err
		}
	}
	address := map[string]string{}
	if flagCountry != "" {
		address["country"] = flagCountry
	}
	if flagPostalCode != "" {
		address["postal_code"] = flagPostalCode
	}
	if len(address) > 0 {
		client.AddAddress(address)
	}

	var prices, options any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		prices, err = client.GetPrice(gctx, nil)
		return err
	})
	g.Go(func() error {
		params := &shipfunk.DeliveryOptionsParams{}
		if flagValue > 0 {
			params.Value = &flagValue
		}
		var err error
		options, err = client.GetDeliveryOptions(gctx, params)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return printJSON(map[string]any{
		"prices":  prices,
		"options": options,
	})
}

func runPickups(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := newOrderClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	customer := map[string]string{}
	if flagPostalCode != "" {
		customer["postal_code"] = flagPostalCode
	}
	if flagCountry != "" {
		customer["country"] = flagCountry
	}

	result, err := client.GetPickups(ctx, &shipfunk.PickupsParams{
		CarrierCode: flagCarrier,
		ReturnCount: flagCount,
		Customer:    customer,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := newOrderClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	result, err := client.SetOrderStatus(ctx, args[0], flagFinalOrder)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runTrack(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := newOrderClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	result, err := client.GetTrackingEvents(ctx, &shipfunk.TrackingEventsParams{
		TrackingCode:     args[0],
		TransportCompany: flagCompany,
		CarrierCode:      flagCarrier,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runParcels(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	client, cleanup, err := newOrderClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	result, err := client.GetParcels(ctx)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runUserGet(cmd *cobra.Command, args []string) error {
	return runAccountOp(cmd.Context(), func(ctx context.Context, account *shipfunk.AccountClient) (any, error) {
		return account.GetUser(ctx, args[0])
	})
}

func runUserDetach(cmd *cobra.Command, args []string) error {
	return runAccountOp(cmd.Context(), func(ctx context.Context, account *shipfunk.AccountClient) (any, error) {
		return account.DetachUser(ctx, args[0])
	})
}

func runUserInvite(cmd *cobra.Command, args []string) error {
	return runAccountOp(cmd.Context(), func(ctx context.Context, account *shipfunk.AccountClient) (any, error) {
		return account.CreateInvitation(ctx, args[0])
	})
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	user, err := parseUserDocument(flagUserData)
	if err != nil {
		return err
	}
	return runAccountOp(cmd.Context(), func(ctx context.Context, account *shipfunk.AccountClient) (any, error) {
		return account.CreateUser(ctx, user)
	})
}

func runAccountOp(ctx context.Context, op func(context.Context, *shipfunk.AccountClient) (any, error)) error {
	account, cleanup, err := newAccountClient(ctx)
	if err != nil {
		return err
	}
	defer cleanup(ctx)

	result, err := op(ctx, account)
	if err != nil {
		return err
	}
	return printJSON(result)
}

// addProductLine parses a code:weight[:amount] spec and registers it.
func addProductLine(client *shipfunk.Client, spec string) error {
	code, weight, amount, err := parseProductSpec(spec)
	if err != nil {
		return fmt.Errorf("product %q: %w", spec, err)
	}
	product, err := client.AddProduct(code, weight)
	if err != nil {
		return err
	}
	if amount > 0 {
		return product.SetAmount(amount)
	}
	return nil
}
