package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/config"
	"github.com/xkilldash9x/cryptograms/internal/engine"
	"github.com/xkilldash9x/cryptograms/internal/observability"
	"github.com/xkilldash9x/cryptograms/internal/service"
)

type encryptOptions struct {
	cipherType string
	key        string
	length     string
	save       bool
}

// newEncryptCmd creates and configures the `encrypt` command.
func newEncryptCmd() *cobra.Command {
	opts := &encryptOptions{}

	encryptCmd := &cobra.Command{
		Use:   "encrypt [plaintext]",
		Short: "Encrypt a plaintext, or a random quotation, with one of the ciphers",
		Long: "Encrypt a plaintext with one of: " + cipherNames() + ".\n" +
			"Without a plaintext a quotation of the requested length is used. With --save the\n" +
			"answer is stored and a token is printed for the answer command.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			logger := observability.GetLogger()

			req, err := opts.request(cmd, args)
			if err != nil {
				return err
			}

			if opts.save {
				components, err := service.NewComponents(ctx, cfg, logger)
				if err != nil {
					return err
				}
				defer components.Shutdown()

				cg, err := components.Puzzles.Generate(ctx, req)
				if err != nil {
					return err
				}
				return printCryptogram(cmd.OutOrStdout(), cg)
			}

			eng, _, err := service.InitializeEngine(cfg, logger)
			if err != nil {
				return err
			}
			plaintext := ""
			if req.Plaintext != nil {
				plaintext = *req.Plaintext
			} else if *req.Type != schemas.CipherCryptarithm {
				q, err := fetchQuote(cfg.Corpus(), *req.Length, logger)
				if err != nil {
					return err
				}
				plaintext = q
			}

			res, err := eng.Encrypt(ctx, schemas.CipherRequest{Plaintext: plaintext, Type: *req.Type, Key: req.Key})
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res)
		},
	}

	encryptCmd.Flags().StringVarP(&opts.cipherType, "type", "t", string(schemas.CipherIdentity), "cipher to use")
	encryptCmd.Flags().StringVarP(&opts.key, "key", "k", "", "cipher key (generated when omitted)")
	encryptCmd.Flags().StringVarP(&opts.length, "length", "l", string(schemas.LengthMedium), "quotation length when no plaintext is given: short, medium or long")
	encryptCmd.Flags().BoolVar(&opts.save, "save", false, "store the answer and print a token")
	return encryptCmd
}

// request turns flags and arguments into a service request. Multiple arguments are joined
// with spaces so quoting the plaintext is optional.
func (o *encryptOptions) request(cmd *cobra.Command, args []string) (service.GenerateRequest, error) {
	t, err := schemas.ParseCipherType(o.cipherType)
	if err != nil {
		return service.GenerateRequest{}, err
	}
	l, err := schemas.ParseLength(o.length)
	if err != nil {
		return service.GenerateRequest{}, err
	}

	req := service.GenerateRequest{Type: &t, Length: &l}
	if len(args) > 0 {
		req.Plaintext = schemas.StringPtr(strings.Join(args, " "))
	}
	if cmd.Flags().Changed("key") {
		req.Key = schemas.StringPtr(o.key)
	}
	return req, nil
}

func fetchQuote(cfg config.CorpusConfig, length schemas.Length, logger *zap.Logger) (string, error) {
	book, err := service.InitializeQuotes(cfg, logger).Get()
	if err != nil {
		return "", err
	}
	q, err := book.Fetch(length, engine.NewRand())
	if err != nil {
		return "", err
	}
	return q.Text, nil
}

func printResult(w io.Writer, res schemas.CipherResult) error {
	if _, err := fmt.Fprintf(w, "Ciphertext: %s\n", res.Ciphertext); err != nil {
		return err
	}
	if res.Key != nil {
		_, err := fmt.Fprintf(w, "Key: %s\n", *res.Key)
		return err
	}
	return nil
}

func printCryptogram(w io.Writer, cg *schemas.Cryptogram) error {
	fmt.Fprintf(w, "Ciphertext: %s\n", cg.Ciphertext)
	if cg.Author != nil {
		fmt.Fprintf(w, "Author: %s\n", *cg.Author)
	}
	_, err := fmt.Fprintf(w, "Token: %s\n", cg.Token)
	return err
}

func cipherNames() string {
	names := make([]string, len(schemas.CipherTypes))
	for i, t := range schemas.CipherTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
