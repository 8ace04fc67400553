package cli

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/Lzww0608/oid"
	"github.com/Lzww0608/oid/internal/log"
	"github.com/Lzww0608/oid/store"
)

// newNewCommand constructs the `new` command.
func newNewCommand(a *app) *cobra.Command {
	var (
		count int
		label string
		save  bool
	)
	cmd := &cobra.Command{
		Use:   "new [prefix]",
		Short: "Generate new OIDs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := a.cfg.Prefix
			if len(args) == 1 {
				prefix = args[0]
			}
			if prefix == "" {
				return errors.New("no prefix given and none configured")
			}
			if count < 1 {
				return fmt.Errorf("invalid --count %d", count)
			}

			ids := make([]oid.OID, 0, count)
			for i := 0; i < count; i++ {
				id, err := oid.New(prefix)
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}

			ds := make([]description, 0, len(ids))
			for _, id := range ids {
				d := describe(id)
				if save {
					d.Label = label
				}
				ds = append(ds, d)
			}

			if save {
				err := a.withStore(cmd.Context(), func(s store.Store) error {
					for _, id := range ids {
						if err := s.Put(cmd.Context(), store.NewRecord(id, label)); err != nil {
							return err
						}
					}
					return nil
				})
				if err != nil {
					return err
				}
				l := log.Ctx(cmd.Context())
				l.Info().Int(log.FieldCount, len(ids)).Str(log.FieldPrefix, ids[0].Prefix()).Msg("saved new OIDs")
			}

			return writeIDs(cmd.OutOrStdout(), a.cfg.Output, ds)
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of OIDs to generate")
	cmd.Flags().StringVar(&label, "label", "", "Label stored with --save")
	cmd.Flags().BoolVar(&save, "save", false, "Save the generated OIDs to the store")
	return cmd
}

// newParseCommand constructs the `parse` command. Every argument is parsed;
// failures are reported together after the valid ones are printed.
func newParseCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <oid>...",
		Short: "Decode OIDs and show their parts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result *multierror.Error
			ds := make([]description, 0, len(args))
			for _, arg := range args {
				o, err := oid.Parse(arg)
				if err != nil {
					result = multierror.Append(result, fmt.Errorf("%q: %w", arg, err))
					continue
				}
				ds = append(ds, describe(o))
			}

			if len(ds) > 0 {
				if err := writeDetails(cmd.OutOrStdout(), a.cfg.Output, ds); err != nil {
					return err
				}
			}
			return result.ErrorOrNil()
		},
	}
}

// newFromUUIDCommand constructs the `from-uuid` command.
func newFromUUIDCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "from-uuid <prefix> <uuid>",
		Short: "Build an OID from an existing UUIDv7",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := oid.ParseUUID(args[1])
			if err != nil {
				return err
			}
			o, err := oid.WithUUID(args[0], u)
			if err != nil {
				return err
			}
			return writeIDs(cmd.OutOrStdout(), a.cfg.Output, []description{describe(o)})
		},
	}
}

// newListCommand constructs the `list` command.
func newListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List stored OIDs, oldest first within each prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return a.withStore(cmd.Context(), func(s store.Store) error {
				records, err := s.List(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				return writeRecords(cmd.OutOrStdout(), a.cfg.Output, records)
			})
		},
	}
}

// newGetCommand constructs the `get` command.
func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <oid>",
		Short: "Show a stored OID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := oid.Parse(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(s store.Store) error {
				r, err := s.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return writeDetails(cmd.OutOrStdout(), a.cfg.Output, []description{describeRecord(r)})
			})
		},
	}
}

// newDeleteCommand constructs the `delete` command.
func newDeleteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <oid>",
		Short:   "Remove a stored OID",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := oid.Parse(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(s store.Store) error {
				if err := s.Delete(cmd.Context(), id); err != nil {
					return err
				}
				l := log.Ctx(cmd.Context())
				l.Info().Str(log.FieldOID, id.String()).Msg("record deleted")
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
				return err
			})
		},
	}
}
