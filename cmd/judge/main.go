/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main is the command line interface of the hackathon judge.
//
//	judge --title T --intro I --judging J --model gpt-4 --temperature 0.1 --repo owner/name
//
// The judging text is printed to standard output. The exit code is 1 when any
// repository could not be judged.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/xleven/ai-hackathon-judge/agents/model"
	"github.com/xleven/ai-hackathon-judge/agents/retry"
	"github.com/xleven/ai-hackathon-judge/judge"
	"github.com/xleven/ai-hackathon-judge/repository/clonemanager"
	"github.com/xleven/ai-hackathon-judge/repository/githubsource"
	"github.com/xleven/ai-hackathon-judge/repository/snapshot"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var env envConfig
	if err := envconfig.Process(ctx, &env); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	cmd := newRootCmd(env, defaultDeps())
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// deps are the parts of a run that reach the network.
type deps struct {
	newModel  func(context.Context, judge.ModelConfig) (model.Model, error)
	newSource func(context.Context, envConfig, flags) (snapshot.Source, error)
}

func defaultDeps() deps {
	return deps{newModel: judge.NewModel, newSource: newSource}
}

type flags struct {
	title, intro, judging string
	hackathonFile         string
	model                 string
	temperature           float64
	apiKey                string
	repos                 []string
	branch                string
	source                string
	cacheDir              string
	maxIterations         int
	retries               int
	timeout               time.Duration
	showSteps             bool
	verbose               bool
}

func newRootCmd(env envConfig, d deps) *cobra.Command {
	def := judge.DefaultHackathon()
	f := flags{}

	cmd := &cobra.Command{
		Use:           "judge",
		Short:         "Judge hackathon submissions with a language model",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, env, d, f)
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&f.title, "title", def.Title, "hackathon title")
	fs.StringVar(&f.intro, "intro", def.Introduction, "hackathon introduction")
	fs.StringVar(&f.judging, "judging", def.JudgingCriteria, "hackathon judging criteria")
	fs.StringVar(&f.hackathonFile, "hackathon", "", "YAML file with title, introduction and judging; flags override it")
	fs.StringVar(&f.model, "model", env.Model, "model name (gpt-*, o*, claude-*, gemini-*)")
	fs.Float64Var(&f.temperature, "temperature", 0.1, "sampling temperature")
	fs.StringVar(&f.apiKey, "api-key", "", "model provider API key (defaults to the provider's environment variable)")
	fs.StringArrayVar(&f.repos, "repo", nil, "repository to judge as owner/name; repeat to judge several")
	fs.StringVar(&f.branch, "branch", env.Branch, "branch to judge; empty for the repository's default branch")
	fs.StringVar(&f.source, "source", env.RepoSource, "where to read repositories from: git or github")
	fs.StringVar(&f.cacheDir, "cache-dir", env.CacheDir, "directory for cached clones")
	fs.IntVar(&f.maxIterations, "max-iterations", env.MaxIterations, "maximum model calls per repository")
	fs.IntVar(&f.retries, "retries", env.Retries, "retries for rate-limited or overloaded model calls")
	fs.DurationVar(&f.timeout, "timeout", 0, "wall-clock limit per repository (0 for none)")
	fs.BoolVar(&f.showSteps, "show-steps", false, "print the intermediate reasoning steps")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug output to stderr")
	_ = cmd.MarkFlagRequired("repo")

	return cmd
}

func run(cmd *cobra.Command, env envConfig, d deps, f flags) error {
	ctx := cmd.Context()
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	ctx = clog.WithLogger(ctx, clog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	hackathon, err := hackathonFrom(cmd, f)
	if err != nil {
		return err
	}

	provider, err := judge.ProviderFor(f.model)
	if err != nil {
		return err
	}
	apiKey, err := env.apiKeyFor(provider, f.apiKey)
	if err != nil {
		return err
	}
	m, err := d.newModel(ctx, judge.ModelConfig{Name: f.model, Temperature: f.temperature, APIKey: apiKey})
	if err != nil {
		return fmt.Errorf("creating model: %w", err)
	}

	source, err := d.newSource(ctx, env, f)
	if err != nil {
		return err
	}
	j, err := judge.New(m, snapshot.NewProvider(source, f.branch),
		judge.WithMaxIterations(f.maxIterations),
		judge.WithTimeout(f.timeout),
		judge.WithRetry(retry.Attempts(f.retries)),
	)
	if err != nil {
		return err
	}

	clog.FromContext(ctx).With("model", f.model).With("repos", len(f.repos)).Info("Starting judging")
	out := cmd.OutOrStdout()
	var errs []error
	for _, repo := range f.repos {
		if err := judgeOne(ctx, out, j, hackathon, repo, f); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", repo, err))
		}
	}
	return errors.Join(errs...)
}

func judgeOne(ctx context.Context, out io.Writer, j *judge.Judge, h judge.Hackathon, repo string, f flags) error {
	if len(f.repos) > 1 {
		fmt.Fprintf(out, "## %s\n\n", repo)
	}
	v, err := j.Judge(ctx, h, repo)
	if v != nil && f.showSteps {
		if err := renderSteps(out, v.Steps); err != nil {
			return fmt.Errorf("rendering steps: %w", err)
		}
		fmt.Fprintln(out)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(out, v.Text)
	return nil
}

// hackathonFrom combines the optional YAML file with explicitly set flags.
func hackathonFrom(cmd *cobra.Command, f flags) (judge.Hackathon, error) {
	h := judge.Hackathon{Title: f.title, Introduction: f.intro, JudgingCriteria: f.judging}
	if f.hackathonFile != "" {
		loaded, err := judge.LoadHackathon(f.hackathonFile)
		if err != nil {
			return judge.Hackathon{}, err
		}
		if !cmd.Flags().Changed("title") {
			h.Title = loaded.Title
		}
		if !cmd.Flags().Changed("intro") {
			h.Introduction = loaded.Introduction
		}
		if !cmd.Flags().Changed("judging") {
			h.JudgingCriteria = loaded.JudgingCriteria
		}
	}
	return h, h.Validate()
}

func newSource(ctx context.Context, env envConfig, f flags) (snapshot.Source, error) {
	switch f.source {
	case "github":
		return githubsource.NewFromToken(ctx, env.GitHubToken), nil
	case "git", "":
		var opts []clonemanager.Option
		if env.GitHubToken != "" {
			opts = append(opts, clonemanager.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: env.GitHubToken})))
		}
		return clonemanager.New(f.cacheDir, opts...)
	}
	return nil, fmt.Errorf("unknown repository source %q (want git or github)", f.source)
}
