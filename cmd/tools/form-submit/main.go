// cmd/tools/form-submit/main.go
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"cac-forms/internal/client"
	"cac-forms/internal/common/config"
	"cac-forms/internal/common/logger"
	"cac-forms/internal/common/validation"
	"cac-forms/internal/forms"
	"cac-forms/internal/submissions/donation"
	"cac-forms/internal/submissions/helprequest"
	"cac-forms/internal/submissions/mailinglist"
	"cac-forms/internal/submissions/volunteer"
	"cac-forms/pkg/registry"
)

// inputSchemas are the request body schemas the endpoints enforce.
var inputSchemas = map[string]func() map[string]interface{}{
	registry.FlowHelpRequest: helprequest.InputSchema,
	registry.FlowVolunteer:   volunteer.InputSchema,
	registry.FlowDonation:    donation.InputSchema,
	registry.FlowMailingList: mailinglist.InputSchema,
}

func main() {
	submitCmd := flag.NewFlagSet("submit", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	registryCmd := flag.NewFlagSet("registry", flag.ExitOnError)

	// Submit command flags
	endpoint := submitCmd.String("endpoint", "", "Flow to submit to (help-request, volunteer, donation, mailing-list)")
	payloadFile := submitCmd.String("file", "", "Path to a JSON payload file")
	baseURL := submitCmd.String("url", "", "Form server base URL (defaults to client.base_url)")
	offline := submitCmd.Bool("offline", false, "Answer transport failures with a development-mode success")
	timeout := submitCmd.Duration("timeout", 0, "Request timeout (defaults to client.timeout)")
	configFile := submitCmd.String("config", "", "Config file to read client settings from")

	// Validate command flags
	schemaName := validateCmd.String("schema", "", "Form schema name (see 'schemas')")
	bagFile := validateCmd.String("file", "", "Path to a JSON object of field values")

	// Registry command flags
	registryPath := registryCmd.String("path", "", "Registry file; the built-in registry when empty")
	export := registryCmd.String("export", "", "Write the registry to this path")
	check := registryCmd.Bool("check", false, "Validate the registry instead of printing it")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "submit":
		submitCmd.Parse(os.Args[2:])
		if *endpoint == "" || *payloadFile == "" {
			fmt.Println("Error: endpoint and file are required for submit.")
			submitCmd.Usage()
			os.Exit(1)
		}
		cfg, cfgErr := clientConfig(*configFile, *offline)
		if cfgErr != nil {
			fmt.Printf("Error loading config: %v\n", cfgErr)
			os.Exit(1)
		}
		if *baseURL != "" {
			cfg.BaseURL = *baseURL
		}
		if *timeout > 0 {
			cfg.Timeout = *timeout
		}
		var ok bool
		ok, err = runSubmit(context.Background(), os.Stdout, cfg, client.Endpoint(*endpoint), *payloadFile)
		if err == nil && !ok {
			os.Exit(2)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if *schemaName == "" || *bagFile == "" {
			fmt.Println("Error: schema and file are required for validate.")
			validateCmd.Usage()
			os.Exit(1)
		}
		var ok bool
		ok, err = runValidate(os.Stdout, *schemaName, *bagFile)
		if err == nil && !ok {
			os.Exit(2)
		}

	case "schemas":
		err = runSchemas(os.Stdout)

	case "registry":
		registryCmd.Parse(os.Args[2:])
		err = runRegistry(os.Stdout, *registryPath, *export, *check)

	case "help":
		fallthrough
	default:
		help()
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// clientConfig reads the client section of a config file, or falls back to
// local development settings when no file is given. Offline mode is refused
// for a production config.
func clientConfig(path string, offline bool) (client.Config, error) {
	if path == "" {
		return client.Config{BaseURL: "http://localhost:8080", Timeout: 10 * time.Second, OfflineMode: offline}, nil
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return client.Config{}, err
	}
	if offline && cfg.App.IsProduction() {
		return client.Config{}, fmt.Errorf("-offline cannot be used with a production config")
	}
	c := client.ConfigFrom(cfg.Client)
	if offline {
		c.OfflineMode = true
	}
	return c, nil
}

func runSubmit(ctx context.Context, out io.Writer, cfg client.Config, endpoint client.Endpoint, path string) (bool, error) {
	if _, ok := registry.Default().Find(string(endpoint)); !ok {
		return false, fmt.Errorf("unknown endpoint %q", endpoint)
	}

	var payload map[string]interface{}
	if err := readJSON(path, &payload); err != nil {
		return false, err
	}

	c := client.New(cfg, logger.NewStructured("warn", "console"))
	res := c.Submit(ctx, endpoint, payload)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return false, err
	}
	return res.Success, nil
}

func runValidate(out io.Writer, name, path string) (bool, error) {
	schema, ok := forms.Lookup(name)
	if !ok {
		return false, fmt.Errorf("unknown schema %q", name)
	}

	var bag map[string]interface{}
	if err := readJSON(path, &bag); err != nil {
		return false, err
	}

	res := validation.Validate(bag, schema)
	if res.OK {
		fmt.Fprintf(out, "%s: valid\n", name)
		return true, nil
	}

	fields := make([]string, 0, len(res.Errors))
	for f := range res.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	fmt.Fprintf(out, "%s: %d field(s) need attention\n", name, len(fields))
	for _, f := range fields {
		fmt.Fprintf(out, "  %s: %s\n", f, res.Errors[f])
	}
	return false, nil
}

func runSchemas(out io.Writer) error {
	for _, name := range forms.Names() {
		schema, _ := forms.Lookup(name)
		fmt.Fprintf(out, "%s\n", name)
		for _, f := range schema.Fields {
			req := ""
			if f.Required {
				req = " (required)"
			}
			fmt.Fprintf(out, "  %s%s\n", f.Name, req)
		}
	}
	return nil
}

func runRegistry(out io.Writer, path, export string, check bool) error {
	reg := registry.Default()
	if path != "" {
		loaded, err := registry.LoadRegistry(path)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = loaded
	}

	if check {
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintln(out, "Registry validation passed.")
		return nil
	}

	if export != "" {
		for i := range reg.Flows {
			if schema, ok := inputSchemas[reg.Flows[i].ID]; ok && reg.Flows[i].InputSchema == nil {
				reg.Flows[i].InputSchema = schema()
			}
		}
		reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
		if err := registry.Save(reg, export); err != nil {
			return err
		}
		fmt.Fprintf(out, "Registry written to %s\n", export)
		return nil
	}

	for _, f := range reg.Flows {
		fmt.Fprintf(out, "%-14s %-24s store=%-13s id=%s\n", f.ID, f.Path, f.Store, f.IDField)
	}
	return nil
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func help() {
	fmt.Println(`Usage: form-submit <command> [arguments]

Commands:
  submit    Send a JSON payload file to a flow endpoint
              -endpoint <flow> -file <payload.json> [-url <base>] [-offline] [-timeout 5s] [-config <file>]
  validate  Check a JSON object against a client form schema
              -schema <name> -file <fields.json>
  schemas   List the client form schemas and their fields
  registry  Print, validate (-check) or export (-export <path>) the flow registry
              [-path <registry.json>]
  help      Show this help`)
}
