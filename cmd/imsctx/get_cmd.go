package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/imsctx/internal/ims"
	"github.com/raphi011/imsctx/internal/jsonpath"
	"github.com/raphi011/imsctx/internal/log"
	"github.com/raphi011/imsctx/internal/output"
)

func newGetCmd() *cobra.Command {
	var (
		query      string
		copyValue  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:     "get [name]",
		Short:   "Show a context's data",
		GroupID: GroupContext,
		Args:    cobra.MaximumNArgs(1),
		Long: `Show the data of a context. Without a name, the current context is shown.

--query selects a value inside the data with a dot path
(see https://github.com/tidwall/gjson/blob/master/SYNTAX.md).
Strings print as plain text, everything else as JSON.`,
		Example: `  imsctx get                          # Data of the current context
  imsctx get prod --query client_id   # One value
  imsctx get prod --query access_token.token --copy
  imsctx get prod --json              # Name and data as JSON`,
		ValidArgsFunction: completeContextNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			var name string
			if len(args) == 1 {
				name = args[0]
			}

			c, err := openContexts(ctx)
			if err != nil {
				return err
			}
			ictx, err := c.Get(ctx, name)
			if err != nil {
				return err
			}
			if ictx.Name == "" {
				return errors.New("no context given and no current context set (see 'imsctx use')")
			}
			if ictx.Data == nil {
				return fmt.Errorf("context %q not found", ictx.Name)
			}

			value, err := selectValue(ictx, query)
			if err != nil {
				return err
			}

			if copyValue {
				if err := clipboard.WriteAll(clipboardText(value)); err != nil {
					l.Printf("Warning: failed to copy to clipboard: %v\n", err)
				} else {
					l.Println("Copied to clipboard")
				}
			}

			if jsonOutput {
				if query == "" {
					return out.JSON(ictx)
				}
				return out.JSON(value)
			}
			return out.Value(value)
		},
	}

	cmd.Flags().StringVar(&query, "query", "", "Select a value by dot path")
	cmd.Flags().BoolVar(&copyValue, "copy", false, "Copy the value to the clipboard")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// selectValue returns the context data, or the value at query inside it.
func selectValue(c ims.Context, query string) (any, error) {
	if query == "" {
		return c.Data, nil
	}
	v, found, err := jsonpath.Query(c.Data, query)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%q not found in context %q", query, c.Name)
	}
	return v, nil
}

// clipboardText renders a value for the clipboard: strings as is,
// everything else as compact JSON.
func clipboardText(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
