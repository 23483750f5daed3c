package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/fx"

	"github.com/ocpkit/auto-catalog/internal/config"
	"github.com/ocpkit/auto-catalog/internal/discovery"
	"github.com/ocpkit/auto-catalog/internal/fetcher"
	"github.com/ocpkit/auto-catalog/internal/logger"
	"github.com/ocpkit/auto-catalog/internal/mcptool"
	"github.com/ocpkit/auto-catalog/internal/server"
	"github.com/ocpkit/auto-catalog/internal/tui"
	"github.com/ocpkit/auto-catalog/internal/validator"
)

func main() {
	Execute()
}

var (
	tagFilter   string
	searchQuery string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "auto-catalog",
	Short: "Discover API tool catalogs from OpenAPI/Swagger specs",
	Long: `auto-catalog fetches an OpenAPI/Swagger document, normalizes its
operations into a searchable tool catalog, and lets you print, browse,
export, or serve the result over MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			pterm.Info.Println(config.GetVersionInfo())
			os.Exit(0)
		}
	}

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

func init() {
	config.InitFlags()
	rootCmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show version information")

	discoverCmd.Flags().StringVar(&tagFilter, "tag", "", "Only show tools carrying this tag")
	discoverCmd.Flags().StringVar(&searchQuery, "search", "", "Only show tools matching this query")

	rootCmd.AddCommand(discoverCmd, exportCmd, browseCmd, serveCmd)
}

// loadConfig loads configuration and initializes the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.InitLogger(&cfg.Logging); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// setup composes the discovery engine through the fx graph.
func setup() (*config.Config, *discovery.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	var engine *discovery.Engine
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		fetcher.Module,
		validator.Module,
		discovery.Module,
		fx.Populate(&engine),
	)
	if err := app.Err(); err != nil {
		return nil, nil, err
	}
	return cfg, engine, nil
}

func discoverSpec(ctx context.Context, cfg *config.Config, engine *discovery.Engine) (*discovery.Spec, error) {
	d := cfg.Discovery
	return engine.DiscoverAPI(ctx, d.SpecURL,
		discovery.WithBaseURL(d.BaseURL),
		discovery.WithIncludeResources(d.IncludeResources...),
		discovery.WithPathPrefix(d.PathPrefix),
	)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Print documentation for every discovered tool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := setup()
		if err != nil {
			return err
		}
		spec, err := discoverSpec(cmd.Context(), cfg, engine)
		if err != nil {
			return err
		}

		tools := spec.Tools
		if tagFilter != "" {
			tools = discovery.GetToolsByTag(spec, tagFilter)
		}
		if searchQuery != "" {
			scoped := &discovery.Spec{Tools: tools}
			tools = discovery.SearchTools(scoped, searchQuery)
		}

		pterm.Info.Printfln("%s %s — %s tools", spec.Title, spec.Version,
			pterm.LightGreen(len(tools)))
		for _, tool := range tools {
			fmt.Println(discovery.ToolDocumentation(tool))
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the catalog as MCP tool definitions (JSON)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := setup()
		if err != nil {
			return err
		}
		spec, err := discoverSpec(cmd.Context(), cfg, engine)
		if err != nil {
			return err
		}

		tools := mcptool.ConvertSpec(spec)
		encoded, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode tools: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the discovered catalog interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() {
			if r := recover(); r != nil {
				pterm.Error.Printf("\nCaught panic: %v\n", r)
				pterm.Error.Printf("%s\n", debug.Stack())
				os.Exit(2)
			}
		}()

		cfg, engine, err := setup()
		if err != nil {
			return err
		}
		spec, err := discoverSpec(cmd.Context(), cfg, engine)
		if err != nil {
			return err
		}

		p := tea.NewProgram(tui.NewAppModel(spec), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("error running program: %w", err)
		}
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog over MCP (stdio|sse|http)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		var srv *server.Server
		app := fx.New(
			fx.NopLogger,
			fx.Supply(cfg),
			fetcher.Module,
			validator.Module,
			discovery.Module,
			server.Module,
			fx.Populate(&srv),
		)
		if err := app.Err(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return srv.Start(ctx)
	},
}
