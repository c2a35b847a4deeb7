package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/go-tourism-content/config"
	"github.com/FACorreiaa/go-tourism-content/internal/api/prompt"
	"github.com/FACorreiaa/go-tourism-content/internal/api/templates"
	"github.com/FACorreiaa/go-tourism-content/internal/container"
	"github.com/FACorreiaa/go-tourism-content/internal/types"
)

type rootOptions struct {
	verbose bool
	asJSON  bool
}

type requestFlags struct {
	prompt    string
	story     string
	location  string
	business  string
	audience  string
	platform  string
	platforms []string
	formats   []string
	mobile    bool
	maxTokens int
	provider  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "contentgen",
		Short: "Generate tourism marketing copy from the command line",
		Long: `contentgen runs the same pipeline as the HTTP API: subject detection,
the cached template table, prompt building and a single provider call.

Provider keys are read from ANTHROPIC_API_KEY, OPENAI_API_KEY and GEMINI_API_KEY.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "Print the full JSON result")

	root.AddCommand(
		newGenerateCmd(opts, false),
		newGenerateCmd(opts, true),
		newPromptCmd(),
		newTemplatesCmd(),
		newOptionsCmd(),
	)
	return root
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{Level: level, TimeFormat: time.Kitchen}))
}

func (f *requestFlags) register(cmd *cobra.Command, enhance bool) {
	fl := cmd.Flags()
	fl.StringVarP(&f.prompt, "prompt", "p", "", "Instruction text for the provider")
	fl.StringVarP(&f.story, "story", "s", "", "The operator's story")
	fl.StringVar(&f.location, "location", "", "Location name, used for cultural context")
	fl.StringVar(&f.business, "business", "", "Business type")
	fl.StringVar(&f.audience, "audience", "", "Audience profile key")
	fl.StringVar(&f.platform, "platform", "", "Single target platform")
	fl.StringSliceVar(&f.platforms, "platforms", nil, "Target platforms")
	fl.StringSliceVar(&f.formats, "formats", nil, "Content formats")
	fl.BoolVar(&f.mobile, "mobile", false, "Use the short mobile prompt")
	fl.IntVar(&f.maxTokens, "max-tokens", 0, "Override the token limit")
	if enhance {
		fl.StringVar(&f.provider, "provider", "", "Enhancement provider: openai or gemini")
	}
}

func (f *requestFlags) request() *types.GenerationRequest {
	req := &types.GenerationRequest{
		Prompt: f.prompt,
		UserData: types.UserData{
			Story:        f.story,
			Location:     f.location,
			BusinessType: f.business,
			Audience:     types.AudienceProfileKey(f.audience),
		},
		MobileOptimized: f.mobile,
		Platform:        types.Platform(f.platform),
		Provider:        types.Provider(f.provider),
	}
	for _, p := range f.platforms {
		req.Platforms = append(req.Platforms, types.Platform(p))
	}
	for _, fm := range f.formats {
		req.Formats = append(req.Formats, types.Format(fm))
	}
	if f.maxTokens > 0 {
		req.MaxTokens = &f.maxTokens
	}
	return req
}

func newGenerateCmd(opts *rootOptions, enhance bool) *cobra.Command {
	flags := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate copy, from a cached template when one applies",
		Args:  cobra.NoArgs,
	}
	if enhance {
		cmd.Use = "enhance"
		cmd.Short = "Generate copy with an enhancement provider, bypassing templates"
	}
	flags.register(cmd, enhance)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.InitConfig()
		if err != nil {
			return err
		}
		logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

		c, err := container.NewContainer(cmd.Context(), &cfg, logger, container.Options{})
		if err != nil {
			return err
		}
		defer c.Close()

		req := flags.request()
		var result *types.GenerationResult
		if enhance {
			result, err = c.ContentService.Enhance(cmd.Context(), req)
		} else {
			result, err = c.ContentService.Generate(cmd.Context(), req)
		}
		if err != nil {
			return err
		}
		return printResult(cmd.OutOrStdout(), result, opts.asJSON)
	}
	return cmd
}

func printResult(w io.Writer, result *types.GenerationResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	source := string(result.Provider)
	if result.Cached {
		source = "cached template"
	}
	_, err := fmt.Fprintf(w, "%s\n\n-- %s, %dms, %d characters\n",
		result.Content, source, result.GenerationTime, result.Metadata.ContentLength)
	return err
}

func newPromptCmd() *cobra.Command {
	flags := &requestFlags{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt that would be sent, without calling a provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := flags.request()
			builder := prompt.NewBuilder(prompt.DefaultLookups())
			mode := prompt.ModeFor(req)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "# mode: %s\n%s\n", mode, builder.Build(req, mode))
			return err
		},
	}
	flags.register(cmd, false)
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the cached templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cache := templates.NewDefault()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PLATFORM\tBUCKET\tLENGTH")
			for _, key := range cache.Keys() {
				tmpl, _ := cache.Lookup(key.Platform, key.Bucket)
				fmt.Fprintf(tw, "%s\t%s\t%d\n", key.Platform, key.Bucket, len([]rune(tmpl)))
			}
			return tw.Flush()
		},
	}
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the platforms, formats, audiences and locations on offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lookups := prompt.DefaultLookups()
			opts := types.ContentOptions{
				Platforms: types.AllPlatforms,
				Formats:   types.AllFormats,
				Audiences: lookups.AudienceKeys(),
				Locations: lookups.LocationNames(),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(opts)
		},
	}
}
