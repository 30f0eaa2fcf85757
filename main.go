package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"iconforge/core"
	"iconforge/genclient"
	"iconforge/history"
	"iconforge/icons"
	"iconforge/logging"
	"iconforge/removal"
)

func main() {
	var (
		inputFlag    = flag.String("input", "", "input image (absolute path or filename searched in common directories)")
		promptFlag   = flag.String("prompt", "", "generate the source image from this prompt instead of reading a file")
		sizesFlag    = flag.String("sizes", "", "comma-separated icon sizes, e.g. 16,32,512")
		platformFlag = flag.String("platform", "", "platform size preset (ios, android, web, macos, all)")
		shapeFlag    = flag.String("shape", "square", "icon shape: square, circle, rounded or squircle")
		bgFlag       = flag.String("bg", "", "background color (name, #RRGGBB or #RRGGBBAA)")
		removeFlag   = flag.Bool("remove-bg", false, "remove the background before processing")
		addBgFlag    = flag.Bool("add-bg", false, "only composite the background color under the input")
		engineFlag   = flag.String("engine", "", "removal engine: rembg or rmbg2 (default from BG_REMOVAL_ENGINE)")
		modelFlag    = flag.String("model", "", "session model name (default from REMBG_MODEL)")
		mattingFlag  = flag.Bool("alpha-matting", false, "enable alpha matting refinement in the session engine")
		fgFlag       = flag.Int("fg-threshold", removal.DefaultForegroundThreshold, "alpha matting foreground threshold")
		bgThreshFlag = flag.Int("bg-threshold", removal.DefaultBackgroundThreshold, "alpha matting background threshold")
		rawFlag      = flag.Bool("raw-alpha", false, "skip the alpha cleanup pass on removal output")
		timeoutFlag  = flag.Int("timeout", 0, "removal timeout in seconds (default from BG_REMOVAL_TIMEOUT)")
		historyFlag  = flag.Int("history", 0, "show the N most recent runs and exit")
		modelsFlag   = flag.Bool("models", false, "list known session models and exit")
	)
	flag.Parse()

	if *modelsFlag {
		listModels()
		return
	}

	config, err := core.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(config.Development, config.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("interrupt received, shutting down")
		cancel()
	}()

	app := &app{config: config, logger: logger}
	if config.HistoryEnabled {
		db, err := history.Setup(config.HistoryDBPath, "file://history/migrations")
		if err != nil {
			logger.Warn("history database unavailable, continuing without it", zap.Error(err))
		} else {
			defer db.Close()
			app.history = history.NewRepository(db)
		}
	}

	if *historyFlag > 0 {
		if err := app.showHistory(ctx, *historyFlag); err != nil {
			logger.Error("history listing failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	opts := runOptions{
		input:     *inputFlag,
		prompt:    *promptFlag,
		sizes:     *sizesFlag,
		platform:  *platformFlag,
		shape:     *shapeFlag,
		bgColor:   *bgFlag,
		removeBg:  *removeFlag,
		addBgOnly: *addBgFlag,
		engine:    *engineFlag,
		model:     *modelFlag,
		matting: removal.Options{
			AlphaMatting:        *mattingFlag,
			ForegroundThreshold: *fgFlag,
			BackgroundThreshold: *bgThreshFlag,
		},
		rawAlpha: *rawFlag,
		timeout:  time.Duration(*timeoutFlag) * time.Second,
	}
	if err := app.run(ctx, opts); err != nil {
		logger.Error("run failed", zap.Error(err))
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

type runOptions struct {
	input     string
	prompt    string
	sizes     string
	platform  string
	shape     string
	bgColor   string
	removeBg  bool
	addBgOnly bool
	engine    string
	model     string
	matting   removal.Options
	rawAlpha  bool
	timeout   time.Duration
}

type app struct {
	config  *core.Config
	logger  *logging.Logger
	history *history.Repository
}

func (a *app) run(ctx context.Context, opts runOptions) error {
	if opts.input == "" && opts.prompt == "" {
		return fmt.Errorf("either -input or -prompt is required")
	}

	input, err := a.resolveInput(ctx, opts)
	if err != nil {
		return err
	}

	switch {
	case opts.addBgOnly:
		return a.runAddBackground(ctx, input, opts)
	case opts.sizes != "" || opts.platform != "":
		return a.runIcons(ctx, input, opts)
	case opts.removeBg:
		return a.runRemoval(ctx, input, opts)
	default:
		return fmt.Errorf("nothing to do: pass -sizes/-platform, -remove-bg or -add-bg")
	}
}

// resolveInput returns the source image path, generating it from the
// prompt when one is given.
func (a *app) resolveInput(ctx context.Context, opts runOptions) (string, error) {
	if opts.prompt != "" {
		return a.generateSource(ctx, opts.prompt)
	}
	input, searched, err := core.FindInputFile(opts.input)
	if err != nil {
		if len(searched) > 0 {
			a.logger.Error("input not found",
				zap.String("filename", opts.input),
				zap.Strings("searched", searched))
		}
		return "", err
	}
	return input, nil
}

// generateSource creates the source image from a prompt via the image
// API and downloads it into the output directory.
func (a *app) generateSource(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	provider, err := genclient.NewOpenAIProvider(genclient.OpenAIConfig{
		APIKey:  a.config.OpenAIAPIKey,
		BaseURL: a.config.ImageBaseURL,
		Model:   a.config.ImageModel,
	})
	if err != nil {
		return "", err
	}

	genCtx, cancel := context.WithTimeout(ctx, a.config.GenTimeout)
	defer cancel()

	a.logger.Info("generating source image", zap.String("model", provider.Model()))
	url, err := provider.Generate(genCtx, prompt)
	if err != nil {
		a.record(ctx, history.Run{
			InputPath: prompt,
			Operation: history.OpGenerateImage,
			Status:    history.StatusFailed,
			Error:     err.Error(),
			Duration:  time.Since(start),
		})
		return "", err
	}

	outputDir, err := a.config.EnsureOutputDir()
	if err != nil {
		return "", err
	}
	downloader, err := genclient.NewDownloader(nil, outputDir)
	if err != nil {
		return "", err
	}
	path, err := downloader.Download(genCtx, url, "generated-"+uuid.NewString()[:8])
	if err != nil {
		return "", err
	}

	a.record(ctx, history.Run{
		InputPath:   prompt,
		Operation:   history.OpGenerateImage,
		OutputPaths: []string{path},
		Status:      history.StatusOK,
		Duration:    time.Since(start),
	})
	color.Green("generated %s", path)
	return path, nil
}

// newRemovalPool builds the registry-backed worker pool and starts
// warming the selected engine so the first job does not pay the load
// cost.
func (a *app) newRemovalPool(opts runOptions) *removal.Pool {
	registry := removal.NewRegistry(a.logger)
	if kind, ok := removal.ParseKind(a.pickEngine(opts)); ok && registry.Available(kind) {
		go registry.Preload(kind, a.pickModel(opts))
	}
	remover := removal.NewRemover(registry, a.logger)
	return removal.NewPool(a.config.MaxConcurrent, remover.Remove, a.logger)
}

func (a *app) runRemoval(ctx context.Context, input string, opts runOptions) error {
	pool := a.newRemovalPool(opts)
	defer pool.Close()

	start := time.Now()
	req := removal.NewRequest(input)
	if kind, ok := removal.ParseKind(a.pickEngine(opts)); ok {
		req.Engine = kind
	}
	req.Model = a.pickModel(opts)
	req.Matting = opts.matting
	req.PostProcess = !opts.rawAlpha
	if opts.timeout > 0 {
		req.Timeout = opts.timeout
	} else {
		req.Timeout = a.config.RemovalTimeout
	}

	res, err := pool.Submit(ctx, req)
	if err != nil {
		a.record(ctx, history.Run{
			InputPath: input,
			Operation: history.OpRemoveBackground,
			Engine:    string(req.Engine),
			Status:    history.StatusFailed,
			Error:     err.Error(),
			Duration:  time.Since(start),
		})
		return err
	}

	a.record(ctx, history.Run{
		InputPath:   input,
		Operation:   history.OpRemoveBackground,
		Engine:      string(res.Engine),
		OutputPaths: []string{res.OutputPath},
		Status:      history.StatusOK,
		Duration:    res.Duration,
	})
	color.Green("background removed: %s (%s, %v)", res.OutputPath, res.Engine, res.Duration.Round(time.Millisecond))
	return nil
}

func (a *app) runIcons(ctx context.Context, input string, opts runOptions) error {
	shape, ok := icons.ParseShape(opts.shape)
	if !ok {
		return fmt.Errorf("unknown shape %q", opts.shape)
	}
	sizes, err := parseSizes(opts.sizes)
	if err != nil {
		return err
	}

	presets := icons.NewPresets()
	if a.config.PresetsFile != "" {
		presets, err = icons.LoadPresetsFile(a.config.PresetsFile)
		if err != nil {
			return err
		}
	}

	var remover icons.Remover
	if opts.removeBg {
		pool := a.newRemovalPool(opts)
		defer pool.Close()
		remover = pool
	}

	outputDir, err := a.config.EnsureOutputDir()
	if err != nil {
		return err
	}

	engine, _ := removal.ParseKind(a.pickEngine(opts))
	generator := icons.NewGenerator(presets, remover, a.logger)
	start := time.Now()
	results, err := generator.Generate(ctx, input, icons.Options{
		Sizes:            sizes,
		Platform:         opts.platform,
		Shape:            shape,
		BackgroundColor:  opts.bgColor,
		RemoveBackground: opts.removeBg,
		Engine:           engine,
		Model:            a.pickModel(opts),
		OutputDir:        outputDir,
		Timeout:          a.config.IconTimeout,
	})
	if err != nil {
		a.record(ctx, history.Run{
			InputPath: input,
			Operation: history.OpGenerateIcons,
			Status:    history.StatusFailed,
			Error:     err.Error(),
			Duration:  time.Since(start),
		})
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			color.Red("  %4d  failed: %v", r.Size, r.Err)
		} else {
			color.Green("  %4d  %s", r.Size, r.Path)
		}
	}

	status := history.StatusOK
	var errMsg string
	if failed == len(results) {
		status = history.StatusFailed
		errMsg = "all sizes failed"
	}
	a.record(ctx, history.Run{
		InputPath:   input,
		Operation:   history.OpGenerateIcons,
		Engine:      string(engine),
		OutputPaths: icons.Paths(results),
		Status:      status,
		Error:       errMsg,
		Duration:    time.Since(start),
	})

	if failed > 0 {
		color.Yellow("%d of %d sizes failed", failed, len(results))
	}
	fmt.Printf("%d icons written\n", len(results)-failed)
	return nil
}

func (a *app) runAddBackground(ctx context.Context, input string, opts runOptions) error {
	if opts.bgColor == "" {
		return fmt.Errorf("-add-bg requires -bg")
	}
	start := time.Now()
	out, err := icons.AddBackground(input, opts.bgColor, "")
	if err != nil {
		a.record(ctx, history.Run{
			InputPath: input,
			Operation: history.OpAddBackground,
			Status:    history.StatusFailed,
			Error:     err.Error(),
			Duration:  time.Since(start),
		})
		return err
	}
	a.record(ctx, history.Run{
		InputPath:   input,
		Operation:   history.OpAddBackground,
		OutputPaths: []string{out},
		Status:      history.StatusOK,
		Duration:    time.Since(start),
	})
	color.Green("background added: %s", out)
	return nil
}

func (a *app) showHistory(ctx context.Context, limit int) error {
	if a.history == nil {
		return fmt.Errorf("history is disabled (set ICONFORGE_HISTORY=true)")
	}
	runs, err := a.history.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	for _, run := range runs {
		line := fmt.Sprintf("%s  %-18s %-8s %s (%d outputs, %v)",
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Operation, run.Status, run.InputPath,
			len(run.OutputPaths), run.Duration.Round(time.Millisecond))
		if run.Status == history.StatusOK {
			color.Green("%s", line)
		} else {
			color.Red("%s  (%s)", line, run.Error)
		}
	}
	return nil
}

// record writes a run to the history, logging instead of failing when
// the database is unavailable.
func (a *app) record(ctx context.Context, run history.Run) {
	if a.history == nil {
		return
	}
	if _, err := a.history.Record(ctx, run); err != nil {
		a.logger.Warn("failed to record run", zap.Error(err))
	}
}

func (a *app) pickEngine(opts runOptions) string {
	if opts.engine != "" {
		return opts.engine
	}
	return a.config.RemovalEngine
}

func (a *app) pickModel(opts runOptions) string {
	model := opts.model
	if model == "" {
		model = a.config.RemovalModel
	}
	if !removal.KnownSessionModel(model) {
		a.logger.Warn("session model not in the known catalog, trying anyway",
			zap.String("model", model))
	}
	return model
}

// listModels prints the session model catalog.
func listModels() {
	names := make([]string, 0, len(removal.SessionModels))
	for name := range removal.SessionModels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		info := removal.SessionModels[name]
		marker := "  "
		if name == removal.DefaultSessionModel {
			marker = "* "
		}
		color.New(color.Bold).Printf("%s%-18s", marker, name)
		fmt.Printf(" %-7s quality=%-9s speed=%-9s best for %s\n",
			info.Size, info.Quality, info.Speed, info.BestFor)
	}
	fmt.Printf("\n* default; deep engine always uses %s\n", removal.DeepModelID)
}

// parseSizes parses a comma-separated size list like "16,32,512".
func parseSizes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		size, err := strconv.Atoi(part)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("invalid size %q", part)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}
