package cli

import (
	"context"

	"midtrans-go/internal/utils"
	"midtrans-go/pkg/midtrans"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type txAction func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error)

var txActions = []struct {
	use, short string
	run        txAction
}{
	{"status", "Get the status of a transaction", func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error) {
		res, err := tx.Status(ctx, id)
		if err != nil {
			return nil, err
		}
		return res.Raw, nil
	}},
	{"status-b2b", "Get the B2B status of a transaction", func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error) {
		return tx.StatusB2B(ctx, id)
	}},
	{"approve", "Approve a challenged transaction", func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error) {
		return tx.Approve(ctx, id)
	}},
	{"deny", "Deny a challenged transaction", func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error) {
		return tx.Deny(ctx, id)
	}},
	{"cancel", "Cancel a transaction", func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error) {
		res, err := tx.Cancel(ctx, id)
		if err != nil {
			return nil, err
		}
		return res.Raw, nil
	}},
	{"expire", "Expire a pending transaction", func(ctx context.Context, tx *midtrans.Transaction, id string) (any, error) {
		return tx.Expire(ctx, id)
	}},
}

func transactionCommands(v *viper.Viper) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(txActions))
	for _, a := range txActions {
		cmds = append(cmds, &cobra.Command{
			Use:   a.use + " <order-or-transaction-id>",
			Short: a.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient(v)
				if err != nil {
					return err
				}
				res, err := a.run(cmd.Context(), client.Transaction, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			},
		})
	}
	return cmds
}

func cmdRefund(v *viper.Viper) *cobra.Command {
	var (
		req    midtrans.RefundRequest
		direct bool
	)
	cmd := &cobra.Command{
		Use:   "refund <order-or-transaction-id>",
		Short: "Refund a settled transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			refund := client.Transaction.Refund
			if direct {
				refund = client.Transaction.RefundDirect
			}
			res, err := refund(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Int64Var(&req.Amount, "amount", 0, "Amount to refund; full amount when omitted")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "Refund reason")
	cmd.Flags().StringVar(&req.RefundKey, "key", "", "Merchant refund key for idempotency")
	cmd.Flags().BoolVar(&direct, "direct", false, "Use the online direct refund endpoint")
	return cmd
}

func cmdSnap(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Create a Snap transaction and print its token and redirect URL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readRequest(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			details, _ := body["transaction_details"].(map[string]any)
			if details == nil {
				details = map[string]any{}
				body["transaction_details"] = details
			}
			if id, _ := details["order_id"].(string); id == "" {
				details["order_id"] = utils.GenerateOrderID()
			}

			client, err := newClient(v)
			if err != nil {
				return err
			}
			res, err := client.Snap.CreateTransaction(cmd.Context(), body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"order_id":     details["order_id"],
				"token":        res.Token,
				"redirect_url": res.RedirectURL,
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Snap request document (JSON or YAML, - for stdin)")
	return cmd
}

func cmdInvoice(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Create an invoice",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readRequest(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if n, _ := body["invoice_number"].(string); n == "" {
				body["invoice_number"] = utils.GenerateInvoiceNumber()
			}

			client, err := newClient(v)
			if err != nil {
				return err
			}
			res, err := client.Invoice.CreateInvoice(cmd.Context(), body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res.Raw)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Invoice request document (JSON or YAML, - for stdin)")
	return cmd
}

func cmdVerify(v *viper.Viper) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify the signature of a webhook notification body",
		RunE: func(cmd *cobra.Command, _ []string) error {
			body, err := readFile(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			verifier, err := midtrans.NewVerifier(sdkConfig(v).ServerKey)
			if err != nil {
				return err
			}
			n, err := verifier.VerifyBody(body)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"verified":           true,
				"order_id":           n.OrderID(),
				"transaction_id":     n.TransactionID(),
				"transaction_status": n.TransactionStatus(),
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Notification JSON body (- for stdin)")
	return cmd
}

func cmdSign(v *viper.Viper) *cobra.Command {
	var orderID, statusCode, grossAmount string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Compute the signature_key the gateway sends for a notification",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := sdkConfig(v)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{
				"signature_key": midtrans.Signature(orderID, statusCode, grossAmount, cfg.ServerKey),
			})
		},
	}
	cmd.Flags().StringVar(&orderID, "order-id", "", "order_id field")
	cmd.Flags().StringVar(&statusCode, "status-code", "", "status_code field")
	cmd.Flags().StringVar(&grossAmount, "gross-amount", "", "gross_amount field, exactly as sent")
	for _, name := range []string{"order-id", "status-code", "gross-amount"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
