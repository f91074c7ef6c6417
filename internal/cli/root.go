// Package cli implements the midtrans command line tool.
package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"midtrans-go/internal/logger"
	"midtrans-go/pkg/midtrans"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	keyServerKey  = "server-key"
	keyClientKey  = "client-key"
	keyProduction = "production"
	keyTimeout    = "timeout"
	keyEnvFile    = "env-file"
	keyVerbose    = "verbose"
)

// transport is swapped in tests.
var transport http.RoundTripper = http.DefaultTransport

type boundFlag struct {
	Env         string
	Description string
}

var boundFlags = map[string]boundFlag{
	keyServerKey:  {Env: "MIDTRANS_SERVER_KEY", Description: "Merchant server key"},
	keyClientKey:  {Env: "MIDTRANS_CLIENT_KEY", Description: "Merchant client key"},
	keyProduction: {Env: "MIDTRANS_IS_PRODUCTION", Description: "Use production endpoints instead of sandbox"},
	keyTimeout:    {Env: "HTTP_TIMEOUT", Description: "HTTP client timeout"},
	keyVerbose:    {Env: "MIDTRANS_VERBOSE", Description: "Log outgoing requests to stderr"},
}

// New returns the root command.
func New() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "midtrans",
		Short:         "Call the Midtrans payment gateway APIs and verify webhook notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if file := v.GetString(keyEnvFile); file != "" {
				return godotenv.Load(file)
			}
			_ = godotenv.Load()
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(keyServerKey, "", boundFlags[keyServerKey].Description)
	flags.String(keyClientKey, "", boundFlags[keyClientKey].Description)
	flags.Bool(keyProduction, false, boundFlags[keyProduction].Description)
	flags.Duration(keyTimeout, 15*time.Second, boundFlags[keyTimeout].Description)
	flags.BoolP(keyVerbose, "v", false, boundFlags[keyVerbose].Description)
	flags.String(keyEnvFile, "", "Load environment variables from this file")

	if err := bindFlags(v, cmd); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		transactionCommands(v)...,
	)
	cmd.AddCommand(
		cmdRefund(v),
		cmdSnap(v),
		cmdInvoice(v),
		cmdVerify(v),
		cmdSign(v),
	)

	return cmd
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	var errs []error
	for key, bf := range boundFlags {
		errs = append(errs,
			v.BindPFlag(key, cmd.PersistentFlags().Lookup(key)),
			v.BindEnv(key, bf.Env),
		)
	}
	errs = append(errs, v.BindPFlag(keyEnvFile, cmd.PersistentFlags().Lookup(keyEnvFile)))
	return errors.Join(errs...)
}

func sdkConfig(v *viper.Viper) midtrans.Config {
	return midtrans.Config{
		ServerKey:    strings.TrimSpace(v.GetString(keyServerKey)),
		ClientKey:    strings.TrimSpace(v.GetString(keyClientKey)),
		IsProduction: v.GetBool(keyProduction),
	}
}

func newClient(v *viper.Viper) (*midtrans.Client, error) {
	opts := []midtrans.ExecutorOption{
		midtrans.WithHTTPClient(&http.Client{
			Transport: transport,
			Timeout:   v.GetDuration(keyTimeout),
		}),
	}
	if v.GetBool(keyVerbose) {
		l, err := logger.New("development")
		if err != nil {
			return nil, err
		}
		opts = append(opts, midtrans.WithLogger(l.Named("midtrans")))
	}

	client, err := midtrans.NewClient(sdkConfig(v), opts...)
	if err != nil {
		return nil, fmt.Errorf("%w (set --%s or %s)", err, keyServerKey, boundFlags[keyServerKey].Env)
	}
	return client, nil
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := New()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		os.Exit(1)
	}
}
