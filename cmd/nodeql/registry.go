package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/cobra"
)

// registryManifestSchema describes the declarative manifest hosts use to
// document which custom iterator tokens/prefixes they intend to register
// at startup (spec §4.3.4) — a config artifact, not the registration
// call itself (registering a Go factory cannot be expressed in JSON).
const registryManifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["static", "dynamic"],
  "properties": {
    "static": {
      "type": "array",
      "items": { "type": "string", "minLength": 1 }
    },
    "dynamic": {
      "type": "array",
      "items": { "type": "string", "minLength": 1, "maxLength": 1 }
    }
  }
}`

func newRegistryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry-validate <manifest.json>",
		Short: "Validate a custom-iterator registration manifest against its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateManifest(cmd, args[0])
		},
	}
	return cmd
}

func validateManifest(cmd *cobra.Command, path string) error {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema://registry-manifest.json", strings.NewReader(registryManifestSchema)); err != nil {
		return fmt.Errorf("registry-validate: %w", err)
	}
	schema, err := compiler.Compile("schema://registry-manifest.json")
	if err != nil {
		return fmt.Errorf("registry-validate: compiling schema: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("registry-validate: %s is not valid JSON: %w", path, err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("registry-validate: %s failed validation: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid\n", path)
	return nil
}
