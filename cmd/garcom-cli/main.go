// Command garcom-cli is an interactive shell over a seeded store: it
// reads customer messages from stdin and prints the actions the
// analyzer extracts from each one.
//
// Configuration comes from flags, a garcom.yaml file in the working
// directory, or GARCOM_* environment variables, in that order.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/zapmesa/garcom/pkg/garcom"
	garcomconfig "github.com/zapmesa/garcom/pkg/garcom/config"
	"github.com/zapmesa/garcom/pkg/garcom/store/sqlite"
)

func main() {
	var (
		dbPath      = flag.String("db", "", "Database path")
		tenant      = flag.String("tenant", "", "Tenant id")
		intentsPath = flag.String("intents", "", "Intent keyword override file (optional)")
		message     = flag.String("message", "", "One-shot message (non-interactive mode)")
		debug       = flag.Bool("debug", false, "Enable debug traces")
	)
	flag.Parse()

	v := viper.New()
	v.SetConfigName("garcom")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("GARCOM")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("read config: %v", err)
		}
	}
	if *dbPath == "" {
		*dbPath = v.GetString("db")
	}
	if *tenant == "" {
		*tenant = v.GetString("tenant")
	}
	if *intentsPath == "" {
		*intentsPath = v.GetString("intents")
	}
	if !*debug {
		*debug = v.GetBool("debug")
	}

	if *dbPath == "" {
		log.Fatal("--db required (or db in garcom.yaml)")
	}
	if *tenant == "" {
		log.Fatal("--tenant required (or tenant in garcom.yaml)")
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer st.Close()

	loader := garcomconfig.Loader{IntentsPath: *intentsPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	opts := garcom.Options{
		Provider: st,
		Intents:  components.Intents,
	}
	if *debug {
		zl, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("init logger: %v", err)
		}
		defer zl.Sync()
		opts.Logger = zl.Sugar()
	}

	analyzer, err := garcom.New(opts)
	if err != nil {
		log.Fatalf("init analyzer: %v", err)
	}

	// One-shot mode
	if *message != "" {
		analyze(ctx, analyzer, *tenant, *message)
		return
	}

	fmt.Println("===========================================")
	fmt.Println("  Garcom CLI")
	fmt.Printf("  Tenant: %s\n", *tenant)
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type a customer message (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		msg := strings.TrimSpace(scanner.Text())
		if msg == "" {
			continue
		}
		analyze(ctx, analyzer, *tenant, msg)
	}

	fmt.Println("\nGoodbye!")
}

func analyze(ctx context.Context, analyzer *garcom.Analyzer, tenantID, msg string) {
	actions, err := analyzer.Analyze(ctx, tenantID, msg)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	if len(actions) == 0 {
		fmt.Println("No actions.")
		fmt.Println()
		return
	}

	for i, act := range actions {
		switch act.Type {
		case garcom.ActionProduct:
			fmt.Printf("%d. product  %dx %s (R$ %.2f)", i+1, act.Quantity, act.Product.Name, act.Product.Price)
			if act.Notes != "" {
				fmt.Printf("  [%s]", act.Notes)
			}
			if act.MatchedKeyword != "" {
				fmt.Printf("  via %q", act.MatchedKeyword)
			}
			fmt.Println()
		case garcom.ActionAddon:
			fmt.Printf("%d. addon    %dx %s (R$ %.2f)\n", i+1, act.Quantity, act.Addon.Name, act.Addon.Price)
		case garcom.ActionIntent:
			fmt.Printf("%d. intent   %s\n", i+1, act.Intent)
		}
	}
	fmt.Println()
}
