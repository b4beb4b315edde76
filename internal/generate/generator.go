package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/comet/internal/access"
	"github.com/dshills/comet/internal/assemble"
	"github.com/dshills/comet/internal/config"
	"github.com/dshills/comet/internal/gitrun"
	"github.com/dshills/comet/internal/progress"
	"github.com/dshills/comet/internal/providers"
	"github.com/dshills/comet/internal/redact"
	"github.com/dshills/comet/internal/session"
	"github.com/dshills/comet/internal/style"
)

// Progress milestones. Assembly reports real progress between
// assembleStart and assembleEnd; the stretch up to animCeiling is animated
// while the provider request is in flight.
const (
	resolvedPct   = 10.0
	assembleStart = 10.0
	assembleEnd   = 70.0
	animCeiling   = 95.0
	animInterval  = 150 * time.Millisecond
)

// Request captures one generation invocation.
type Request struct {
	// Dir is the directory the user invoked from; it drives workspace
	// resolution.
	Dir string

	// StagedOnly disables the fallback to unstaged changes.
	StagedOnly bool

	// Sink receives the generated message. Nil means the caller consumes
	// Result.Message itself.
	Sink Sink

	// OnProgress receives percentages in [0, 100]. May be nil.
	OnProgress func(pct float64)
}

// Result is the outcome of a generation run.
type Result struct {
	RunID       string
	Root        string
	Message     string
	Staged      bool
	TokensUsed  int
	Diagnostics []assemble.Diagnostic
}

// contextBuilder is what the generator needs from an assembler. Satisfied
// by *assemble.Assembler.
type contextBuilder interface {
	Root() string
	Assemble(req assemble.BuildRequest) []assemble.Change
	BuildContext(changes []assemble.Change, req assemble.BuildRequest) assemble.Document
	Close() error
}

// Generator runs the commit-message pipeline. It keeps the assembler for
// the most recently used workspace alive across runs so repeat invocations
// on the same repository reuse it.
type Generator struct {
	cfg     config.Config
	store   *session.Store
	log     *slog.Logger
	current contextBuilder

	// Swappable for tests.
	newCompleter func(provider, model string) (providers.Completer, error)
	newAssembler func(root string) contextBuilder
}

// New constructs a Generator.
func New(cfg config.Config, store *session.Store, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Generator{
		cfg:          cfg,
		store:        store,
		log:          logger,
		newCompleter: providers.New,
	}
	g.newAssembler = func(root string) contextBuilder {
		git := gitrun.New(root)
		eval := access.NewGitIgnoreEvaluator(git)
		if err := eval.Init(); err != nil {
			logger.Warn("ignore evaluation unavailable", "root", root, "error", err)
		}
		opts := assemble.Options{
			MaxDiffBytes: cfg.MaxDiffBytes,
			LogCount:     cfg.LogCount,
		}
		return assemble.New(root, git, eval, opts, logger)
	}
	return g
}

// Close releases the bound assembler.
func (g *Generator) Close() error {
	if g.current == nil {
		return nil
	}
	err := g.current.Close()
	g.current = nil
	return err
}

// Generate runs the pipeline end to end.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	res := Result{RunID: uuid.NewString()}

	root, err := ResolveRoot(req.Dir, g.cfg.Workspaces)
	if err != nil {
		return res, err
	}
	res.Root = root
	asm := g.bindRoot(root)
	report(req.OnProgress, resolvedPct)

	buildReq := assemble.BuildRequest{
		Staged: true,
		OnProgress: func(pct float64) {
			report(req.OnProgress, assembleStart+pct/100*(assembleEnd-assembleStart))
		},
	}
	changes := asm.Assemble(buildReq)
	if len(changes) == 0 && !req.StagedOnly {
		buildReq.Staged = false
		changes = asm.Assemble(buildReq)
	}
	if len(changes) == 0 {
		return res, ErrNoChanges
	}
	res.Staged = buildReq.Staged

	doc := asm.BuildContext(changes, buildReq)
	res.Diagnostics = doc.Diagnostics
	text := doc.Text
	if g.cfg.Privacy.RedactSecrets {
		text = redact.Secrets(text)
	}
	report(req.OnProgress, assembleEnd)

	// A repeat run on an identical context document carries the previous
	// message into the prompt so the provider produces a different one.
	var prevMessage string
	if entry, ok := g.store.Get(root); ok && entry.Document == text {
		prevMessage = entry.Message
	}

	rules, err := style.Resolve(root, g.cfg.StyleFile)
	if err != nil {
		g.log.Warn("ignoring unreadable style file", "error", err)
		rules = nil
	}

	provider, model := g.commitTarget()
	completer, err := g.newCompleter(provider, model)
	if err != nil {
		return res, err
	}

	anim := progress.NewAnimator(func(pct float64) {
		report(req.OnProgress, pct)
	}, assembleEnd, animCeiling, animInterval)
	if req.OnProgress != nil {
		anim.Start()
	}
	resp, err := completer.Complete(ctx, providers.Request{
		SystemPrompt: SystemPrompt(rules),
		UserPrompt:   UserPrompt(text, prevMessage),
		Temperature:  0.7,
	})
	anim.Stop()
	if err != nil {
		// Provider failures surface verbatim.
		return res, err
	}

	message := CleanMessage(resp.Content)
	if message == "" {
		return res, errors.New("provider returned an empty message")
	}
	res.Message = message
	res.TokensUsed = resp.TokensUsed

	if err := g.store.Put(root, text, message); err != nil {
		g.log.Warn("saving session entry", "error", err)
	}

	if req.Sink != nil {
		if err := req.Sink.SetValue(message); err != nil {
			return res, fmt.Errorf("delivering message to %s: %w", req.Sink.Name(), err)
		}
	}
	report(req.OnProgress, 100)
	return res, nil
}

// commitTarget picks the provider/model pair for commit generation: the
// dedicated commit configuration when its provider is supported, else the
// active configuration.
func (g *Generator) commitTarget() (provider, model string) {
	if g.cfg.CommitProvider != "" && providers.Known(g.cfg.CommitProvider) {
		model = g.cfg.CommitModel
		if model == "" {
			model = g.cfg.Model
		}
		return g.cfg.CommitProvider, model
	}
	return g.cfg.Provider, g.cfg.Model
}

func (g *Generator) bindRoot(root string) contextBuilder {
	if g.current != nil && g.current.Root() == root {
		return g.current
	}
	if g.current != nil {
		if err := g.current.Close(); err != nil {
			g.log.Warn("closing previous assembler", "error", err)
		}
	}
	g.current = g.newAssembler(root)
	return g.current
}

func report(fn func(float64), pct float64) {
	if fn != nil {
		fn(pct)
	}
}
