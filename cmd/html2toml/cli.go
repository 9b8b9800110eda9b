package main

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Input    string `short:"i" default:"./res/index.html" env:"HTML2TOML_INPUT" help:"HTML file to convert"`
	Output   string `short:"o" default:"out.toml" env:"HTML2TOML_OUTPUT" help:"TOML file to write"`
	Select   string `short:"s" env:"HTML2TOML_SELECT" help:"CSS selector for the elements to convert (default: whole document)"`
	Stdout   bool   `default:"true" negatable:"" help:"Print the TOML to stdout"`
	Validate bool   `default:"true" negatable:"" help:"Check the output decodes as TOML before writing it"`
	Strict   bool   `env:"HTML2TOML_STRICT" help:"Exit with status 1 when the conversion fails (otherwise failures are logged and exit 0)"`
	LogLevel string `default:"warn" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
}
