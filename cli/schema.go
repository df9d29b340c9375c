package cli

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/steerlab/fourws/config"
)

var schemas = map[string]*jsonschema.Schema{
	"config": jsonschema.Reflect(&config.Config{}),
	"script": jsonschema.Reflect(&Script{}),
}

// SchemaAction is the corresponding action for 'schema'.
func SchemaAction(c *cli.Context) error {
	name := c.Args().First()
	schema, ok := schemas[name]
	if !ok {
		return errors.Errorf("expected one of config or script, got %q", name)
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	printf(c.App.Writer, "%s", out)
	return nil
}
