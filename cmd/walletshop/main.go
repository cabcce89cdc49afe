package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/stripe/ecommerce/internal/cart"
	"github.com/stripe/ecommerce/internal/checkout"
	internalcli "github.com/stripe/ecommerce/internal/cli"
	"github.com/stripe/ecommerce/internal/config"
	"github.com/stripe/ecommerce/internal/database"
	"github.com/stripe/ecommerce/internal/handlers"
	"github.com/stripe/ecommerce/internal/payments"
	"github.com/stripe/ecommerce/internal/repository"
	"github.com/stripe/ecommerce/internal/services"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// demoCatalog returns the products the storefront sells
func demoCatalog() []cart.Item {
	return []cart.Item{
		{ID: "sunnies", Name: "Sunglasses", Price: 500, Currency: "usd", Quantity: 1},
		{ID: "logo-tee", Name: "Logo Tee", Price: 1200, Currency: "usd", Quantity: 1},
		{ID: "camera", Name: "Instant Camera", Price: 6900, Currency: "usd", Quantity: 1},
	}
}

// buildServerDependencies creates all dependencies needed for the server
func buildServerDependencies() (internalcli.ServerDependencies, error) {
	var deps internalcli.ServerDependencies

	// Create intent repository
	deps.IntentRepo = repository.NewIntentRepository()

	// Load server configuration
	deps.ServerConfig = config.LoadServerConfig()

	// Load Stripe configuration
	stripeConfig, err := config.LoadStripeConfig()
	if err != nil {
		return deps, fmt.Errorf("missing required Stripe configuration: %w", err)
	}
	deps.StripeConfig = stripeConfig

	// Create service layer
	stripeClient := payments.NewStripeClient(stripeConfig)
	intentService := services.NewIntentService(stripeClient, deps.IntentRepo)

	// Create cart and catalog
	deps.Cart = cart.NewStore()
	catalog := demoCatalog()

	// Create page handlers
	storeHandler, err := handlers.NewStoreHandler("templates/store.html", catalog, deps.Cart)
	if err != nil {
		return deps, fmt.Errorf("failed to create store handler: %w", err)
	}
	deps.StoreHandler = storeHandler
	deps.AddToCartHandler = handlers.NewAddToCartHandler(catalog, deps.Cart)

	// Create API handlers
	deps.CreateIntentHandler = handlers.NewCreateIntentHandler(intentService)
	deps.IntentStatusHandler = handlers.NewIntentStatusHandler(intentService)

	// Create success handler with post-purchase cart clearing
	successHandler, err := handlers.NewSuccessHandler("templates/success.html", deps.Cart)
	if err != nil {
		return deps, fmt.Errorf("failed to create success handler: %w", err)
	}
	deps.SuccessHandler = successHandler

	return deps, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the storefront web server",
		Action: func(c *cli.Context) error {
			// Connect to database
			if err := database.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()
			log.Println("Connected to database successfully")

			// Run database migrations
			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			// Build all server dependencies
			deps, err := buildServerDependencies()
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// CheckoutCommand returns the headless checkout command
func CheckoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "checkout",
		Usage: "Run a wallet checkout against a running server using a test payment method",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "URL of the create-payment-intent endpoint",
				Value: "http://localhost:8080" + checkout.IntentEndpointPath,
			},
			&cli.StringFlag{
				Name:  "payment-method",
				Usage: "Stripe test payment method to confirm with",
				Value: "pm_card_visa",
			},
		},
		Action: func(c *cli.Context) error {
			stripeConfig, err := config.LoadStripeConfig()
			if err != nil {
				return fmt.Errorf("missing required Stripe configuration: %w", err)
			}

			cartStore := cart.NewStore()
			for _, item := range demoCatalog() {
				cartStore.Add(item)
			}

			return internalcli.RunCheckout(internalcli.CheckoutDependencies{
				Cart:            cartStore,
				Provider:        payments.NewStripeClient(stripeConfig),
				Intents:         checkout.NewIntentClient(c.String("endpoint")),
				PaymentMethodID: c.String("payment-method"),
			})
		},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "walletshop",
		Usage:   "Wallet checkout storefront management tool",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			CheckoutCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}
