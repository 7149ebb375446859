package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/covspace/site/internal/cms"
	"github.com/covspace/site/internal/content"
	logctx "github.com/covspace/site/internal/pkg/log"
)

func newFetchCmd(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:       "fetch <" + strings.Join(content.Resources(), "|") + ">",
		Short:     "Fetch a CMS resource and print its data as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: content.Resources(),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Логи в stderr, чтобы stdout оставался чистым JSON.
			log := setupLogger(a.cfg.Env, cmd.ErrOrStderr())

			client, err := cms.New(a.cfg.CMS.BaseURL,
				cms.WithTimeout(a.cfg.CMS.Timeout),
				cms.WithUserAgent(a.cfg.CMS.UserAgent),
			)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			ctx = logctx.Into(ctx, log)

			data, err := content.New(client, a.cfg.Home).Resource(ctx, args[0])
			if errors.Is(err, content.ErrUnknownResource) {
				return fmt.Errorf("unknown resource %q, want one of: %s", args[0], strings.Join(content.Resources(), ", "))
			}
			if err != nil {
				return fmt.Errorf("fetch %s: %w", args[0], err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			return enc.Encode(data)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "overall request timeout")

	return cmd
}
