package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ims/internal/client"
	"ims/internal/console"
	"ims/internal/table"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newResourcesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the resources the console manages.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := newTable(cmd.OutOrStdout())
			fmt.Fprintln(w, "RESOURCE\tNOUN\tCOLUMNS")
			for _, name := range a.container.Resources.Names() {
				resource, _ := a.container.Resources.Get(name)
				description := resource.Describe()
				keys := make([]string, 0, len(description.Columns))
				for _, col := range description.Columns {
					keys = append(keys, col.Key)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, description.Noun, strings.Join(keys, ", "))
			}
			return w.Flush()
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "Fetch and display a resource table.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := a.container.Resources.Get(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			criteria := table.Criteria{}
			criteria.Search, _ = flags.GetString("search")
			criteria.SortKey, _ = flags.GetString("sort")
			criteria.Descending, _ = flags.GetBool("desc")
			criteria.Status, _ = flags.GetString("status")
			criteria.Page, _ = flags.GetInt("page")
			criteria.PageSize, _ = flags.GetInt("page-size")
			filters, err := pairs(flags, "filter")
			if err != nil {
				return err
			}
			if len(filters) > 0 {
				criteria.Filters = filters
			}

			listing, err := resource.List(cmd.Context(), criteria, true)
			if err != nil {
				return describe(err)
			}

			if asJSON, _ := flags.GetBool("json"); asJSON {
				return writeJSON(cmd.OutOrStdout(), listing)
			}
			return writeListing(cmd.OutOrStdout(), listing)
		},
	}

	flags := listCmd.Flags()
	flags.String("search", "", "Case-insensitive search over the searchable columns")
	flags.String("sort", "", "Column to sort by")
	flags.Bool("desc", false, "Sort descending")
	flags.String("status", "", "Only show records with this status")
	flags.StringArray("filter", nil, "Filter on a declared column, e.g. --filter role=admin")
	flags.Int("page", 1, "Page to show")
	flags.Int("page-size", 0, "Rows per page (0 shows all)")
	flags.Bool("json", false, "Print the records as JSON")

	return listCmd
}

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <resource> <id>",
		Short: "Display one record.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, id, err := resolve(a, args)
			if err != nil {
				return err
			}

			row, err := resource.Show(cmd.Context(), id)
			if err != nil {
				return describe(err)
			}

			w := newTable(cmd.OutOrStdout())
			for i, col := range resource.Describe().Columns {
				fmt.Fprintf(w, "%s:\t%s\n", col.Label, row.Cells[i])
			}
			return w.Flush()
		},
	}
}

func newSchemaCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema <resource>",
		Short: "Print the form schema of a resource as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := a.container.Resources.Get(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resource.Describe())
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create <resource>",
		Short: "Create a record.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, err := a.container.Resources.Get(args[0])
			if err != nil {
				return err
			}
			input, err := readInput(cmd)
			if err != nil {
				return err
			}

			if err := applied(cmd, resource.Create(cmd.Context(), input)); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", resource.Describe().Noun)
			return nil
		},
	}
	inputFlags(createCmd)

	return createCmd
}

func newUpdateCmd(a *app) *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update <resource> <id>",
		Short: "Update a record. Fields not given keep their current value.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, id, err := resolve(a, args)
			if err != nil {
				return err
			}
			input, err := readInput(cmd)
			if err != nil {
				return err
			}

			if err := applied(cmd, resource.Update(cmd.Context(), id, input)); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %d\n", resource.Describe().Noun, id)
			return nil
		},
	}
	inputFlags(updateCmd)

	return updateCmd
}

func newDeleteCmd(a *app) *cobra.Command {
	deleteCmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete a record after confirmation.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			resource, id, err := resolve(a, args)
			if err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			confirm := func(prompt string) bool {
				if yes {
					return true
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == console.ConfirmYes
			}

			if err := resource.Delete(cmd.Context(), id, confirm); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", resource.Describe().Noun, id)
			return nil
		},
	}
	deleteCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")

	return deleteCmd
}

func resolve(a *app, args []string) (console.Resource, int, error) {
	resource, err := a.container.Resources.Get(args[0])
	if err != nil {
		return nil, 0, err
	}
	id, err := strconv.Atoi(args[1])
	if err != nil || id <= 0 {
		return nil, 0, fmt.Errorf("invalid id %q", args[1])
	}
	return resource, id, nil
}

func inputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArray("set", nil, "Set one form field, e.g. --set name=Latte")
	flags.String("data", "", "Form fields as a JSON object, or @path to read it from a file")
	flags.StringArray("file", nil, "Attach a file to a file field, e.g. --file photo=./me.png")
}

func readInput(cmd *cobra.Command) (console.Input, error) {
	flags := cmd.Flags()
	input := console.Input{}

	var err error
	if input.Set, err = pairs(flags, "set"); err != nil {
		return input, err
	}

	data, _ := flags.GetString("data")
	if path, ok := strings.CutPrefix(data, "@"); ok {
		content, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("read form data: %w", err)
		}
		data = string(content)
	}
	if data != "" {
		if !json.Valid([]byte(data)) {
			return input, fmt.Errorf("--data is not valid JSON")
		}
		input.Data = json.RawMessage(data)
	}

	files, err := pairs(flags, "file")
	if err != nil {
		return input, err
	}
	for field, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			return input, fmt.Errorf("read %s file: %w", field, err)
		}
		if input.Files == nil {
			input.Files = make(map[string]*client.Upload)
		}
		input.Files[field] = &client.Upload{Filename: filepath.Base(path), Content: content}
	}

	return input, nil
}

// pairs reads a repeated key=value flag. Values may contain commas and further '=' signs.
func pairs(flags *pflag.FlagSet, name string) (map[string]string, error) {
	values, _ := flags.GetStringArray(name)
	if len(values) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(values))
	for _, value := range values {
		key, val, ok := strings.Cut(value, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("--%s expects key=value, got %q", name, value)
		}
		out[strings.TrimSpace(key)] = val
	}
	return out, nil
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
