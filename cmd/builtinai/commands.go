package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"builtinai/internal/prompt"
	"builtinai/internal/registry"
	"builtinai/pkg/types"
)

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(a.out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(rows)
	table.Render()
}

func (a *app) modelsCmd() *cobra.Command {
	models := &cobra.Command{Use: "models", Short: "Inspect the built-in model catalog"}

	var asJSON bool
	list := &cobra.Command{Use: "list", Aliases: []string{"ls"}, Short: "List built-in models", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		all := registry.ListModels()
		if asJSON {
			return a.printJSON(types.ModelsResponse{Models: all})
		}
		var rows [][]string
		for i, m := range all {
			name := m.Name
			if i == 0 {
				name += " (default)"
			}
			rows = append(rows, []string{name, m.DisplayName, fmt.Sprintf("%d MB", m.SizeMB), strconv.FormatUint(uint64(m.ContextSize), 10), m.Template})
		}
		a.table([]string{"NAME", "DISPLAY NAME", "SIZE", "CONTEXT", "TEMPLATE"}, rows)
		return nil
	}}
	list.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	show := &cobra.Command{Use: "show <name>", Short: "Show one model definition", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		m, err := registry.GetModel(args[0])
		if err != nil {
			return err
		}
		return a.printJSON(m)
	}}

	path := &cobra.Command{Use: "path <name>", Short: "Print where a model file is expected", Args: cobra.ExactArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		p, err := registry.ResolveModelPath(a.cfg.ModelsDir(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, p)
		return nil
	}}

	status := &cobra.Command{Use: "status", Short: "Show which models are downloaded", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		res, err := registry.Scan(a.cfg.ModelsDir())
		if err != nil {
			return err
		}
		var rows [][]string
		for _, st := range res.Models {
			state := "missing"
			if st.Downloaded {
				state = fmt.Sprintf("%d MB", st.SizeBytes/(1024*1024))
			}
			rows = append(rows, []string{st.Model.Name, state, st.Path})
		}
		for _, f := range res.Unknown {
			a.log.Warn().Str("file", f).Msg("gguf file not in catalog")
		}
		a.table([]string{"NAME", "ON DISK", "PATH"}, rows)
		return nil
	}}

	var ramMB uint64
	recommend := &cobra.Command{Use: "recommend", Short: "Recommend a model for the available RAM", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(a.out, registry.Recommend(ramMB).Name)
		return nil
	}}
	recommend.Flags().Uint64Var(&ramMB, "ram-mb", 0, "Available RAM in MB (0 = unknown)")

	models.AddCommand(list, show, path, status, recommend)
	return models
}

func (a *app) templatesCmd() *cobra.Command {
	return &cobra.Command{Use: "templates", Short: "List prompt template identifiers", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		for _, n := range prompt.Names() {
			fmt.Fprintln(a.out, n)
		}
		return nil
	}}
}

func (a *app) promptCmd() *cobra.Command {
	var tmpl, system, user string
	cmd := &cobra.Command{Use: "prompt", Short: "Render a prompt template", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		out, err := prompt.FormatPrompt(tmpl, system, user)
		if err != nil {
			return err
		}
		fmt.Fprint(a.out, out)
		return nil
	}}
	cmd.Flags().StringVar(&tmpl, "template", "", "Template identifier (gemma3|chatml|llama3|mistral)")
	cmd.Flags().StringVar(&system, "system", "", "System prompt")
	cmd.Flags().StringVar(&user, "user", "", "User prompt")
	_ = cmd.MarkFlagRequired("template")
	return cmd
}

func (a *app) planCmd() *cobra.Command {
	var req types.PlanRequest
	cmd := &cobra.Command{Use: "plan", Short: "Print the generation request for the inference sidecar", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := a.openService()
		if err != nil {
			return err
		}
		defer closeStore()
		gr, err := svc.Plan(cmd.Context(), req)
		if err != nil {
			return err
		}
		return a.printJSON(gr)
	}}
	cmd.Flags().StringVar(&req.Model, "model", "", "Model name (defaults to the stored selection)")
	cmd.Flags().StringVar(&req.SystemPrompt, "system", "", "System prompt")
	cmd.Flags().StringVar(&req.UserPrompt, "user", "", "User prompt")
	cmd.Flags().IntVar(&req.MaxTokens, "max-tokens", 0, "Override max tokens")
	return cmd
}

func (a *app) selectCmd() *cobra.Command {
	return &cobra.Command{Use: "select [name]", Short: "Show or store the selected model", Args: cobra.MaximumNArgs(1), RunE: func(cmd *cobra.Command, args []string) error {
		svc, closeStore, err := a.openService()
		if err != nil {
			return err
		}
		defer closeStore()
		if len(args) == 1 {
			m, err := svc.Select(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, m.Name)
			return nil
		}
		m, fallback, err := svc.SelectedModel(cmd.Context())
		if err != nil {
			return err
		}
		if fallback {
			fmt.Fprintf(a.out, "%s (default)\n", m.Name)
			return nil
		}
		fmt.Fprintln(a.out, m.Name)
		return nil
	}}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{Use: "validate", Short: "Check the built-in catalog", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		// init already failed if the catalog were invalid.
		fmt.Fprintf(a.out, "ok: %d models, %d templates\n", len(registry.ListModels()), len(prompt.Names()))
		return nil
	}}
}
