package gof

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/estimnet/cergm-gof/pkg/graph"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("gof")

// Config says where a Runner finds its inputs and puts its outputs.
type Config struct {
	// NetFile is the observed network, a compact Pajek arc list.
	NetFile string
	// TermFile is the term attribute file matching NetFile's numbering.
	TermFile string
	// SimPrefix is the filename prefix of the simulated replicates.
	SimPrefix string
	// Dir is where replicates are searched for and outputs are written.
	// Empty means the current directory.
	Dir string
	// Out receives the graph summaries. Nil means os.Stdout.
	Out io.Writer
	// Progress shows a progress bar over the replicates on stderr.
	Progress bool
}

// Runner extracts the goodness-of-fit subgraph of an observed network and
// of every simulated replicate next to it.
type Runner struct {
	cfg Config
	log *zap.SugaredLogger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(cfg Config, log *zap.SugaredLogger) *Runner {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Runner{cfg: cfg, log: log}
}

// Run executes the whole extraction: load the observed network and its
// terms, write its last-term subgraph, then do the same for every
// replicate found next to it. Each network's summary and its subgraph's
// summary go to the configured output. Replicates must have the observed
// network's node count, anything else is an error.
func (r *Runner) Run(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "ExtractSubgraphs")
	defer span.End()
	span.SetAttributes(attribute.String("net_file", r.cfg.NetFile))

	obs, err := r.loadObserved(ctx)
	if err != nil {
		return err
	}

	terms, err := r.readTerms()
	if err != nil {
		return err
	}
	if err := obs.SetTerms(terms); err != nil {
		return fmt.Errorf("%s: %w", r.cfg.TermFile, err)
	}
	r.log.Infow("loaded observed network",
		"file", r.cfg.NetFile,
		"nodes", obs.NodeCount(),
		"arcs", obs.ArcCount(),
		"maxterm", obs.MaxTerm(),
	)
	fmt.Fprintf(r.cfg.Out, "maxterm = %d\n", obs.MaxTerm())

	obsName := filepath.Base(r.cfg.NetFile)
	fmt.Fprintf(r.cfg.Out, "%s: %s\n", obsName, obs.Info())
	if err := r.extractAndWrite(obsName, obs); err != nil {
		return err
	}

	set, err := DiscoverReplicates(r.cfg.Dir, r.cfg.SimPrefix)
	if err != nil {
		return err
	}
	if set.Compressed {
		r.log.Infow("no uncompressed replicates found, falling back to .net.gz",
			"dir", r.cfg.Dir, "prefix", r.cfg.SimPrefix)
	}
	if len(set.Files) == 0 {
		r.log.Warnw("no replicate networks found", "dir", r.cfg.Dir, "prefix", r.cfg.SimPrefix)
		return nil
	}

	var bar *pb.ProgressBar
	if r.cfg.Progress {
		bar = pb.New(len(set.Files))
		bar.SetTemplateString(`{{counters .}} {{bar .}} {{percent .}} {{etime .}}`)
		bar.SetMaxWidth(80)
		bar.SetWriter(os.Stderr)
		bar.Start()
	}

	for _, rep := range set.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.processReplicate(ctx, rep, set.Compressed, terms); err != nil {
			return err
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}

	r.log.Infow("extraction finished", "replicates", len(set.Files))
	return nil
}

// loadObserved converts the observed arc list to the explicit-vertex
// layout in a temporary file and loads the graph from that. The
// conversion counts out-of-range arc endpoints without failing, the load
// afterwards rejects them.
func (r *Runner) loadObserved(ctx context.Context) (*graph.Directed, error) {
	_, span := tracer.Start(ctx, "LoadObserved")
	defer span.End()

	in, err := os.Open(r.cfg.NetFile)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	tmp, err := os.CreateTemp("", "cergm-gof-*.net")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	res, err := graph.ConvertArclist(in, tmp)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("converting %s: %w", r.cfg.NetFile, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if res.OutOfRange > 0 {
		r.log.Warnw("arc endpoints outside vertex range",
			"file", r.cfg.NetFile, "arcs", res.OutOfRange, "vertices", res.Vertices)
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := graph.ReadPajek(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", r.cfg.NetFile, err)
	}
	return g, nil
}

func (r *Runner) readTerms() ([]int, error) {
	f, err := os.Open(r.cfg.TermFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	terms, err := graph.ReadTerms(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", r.cfg.TermFile, err)
	}
	return terms, nil
}

func (r *Runner) processReplicate(ctx context.Context, rep ReplicateFile, compressed bool, terms []int) error {
	_, span := tracer.Start(ctx, "ProcessReplicate")
	defer span.End()
	span.SetAttributes(attribute.String("file", rep.Path), attribute.Int("index", rep.Index))

	g, err := LoadReplicate(rep.Path, compressed)
	if err != nil {
		return err
	}
	if err := g.SetTerms(terms); err != nil {
		return fmt.Errorf("%s: %w", rep.Path, err)
	}

	name := filepath.Base(rep.Path)
	fmt.Fprintf(r.cfg.Out, "%s: %s\n", name, g.Info())
	return r.extractAndWrite(name, g)
}

// extractAndWrite writes the last-term subgraph of g and its term labels
// next to the other outputs, named after the network they came from.
// Existing files are overwritten.
func (r *Runner) extractAndWrite(name string, g *graph.Directed) error {
	sub, err := g.LastTermSubgraph()
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	base := outputBase(name)
	netPath := filepath.Join(r.cfg.Dir, base+"_cergm2_subgraph.net")
	termPath := filepath.Join(r.cfg.Dir, base+"_cergm2_terms.txt")
	if err := writeNetFile(netPath, sub); err != nil {
		return err
	}
	if err := writeTermFile(termPath, sub); err != nil {
		return err
	}

	fmt.Fprintf(r.cfg.Out, "%s subgraph: %s\n", name, sub.Info())
	r.log.Infow("wrote subgraph",
		"net", netPath, "nodes", sub.NodeCount(), "arcs", sub.ArcCount())
	return nil
}

// outputBase strips the network filename extensions so output names slot
// in before them: sim_7.net.gz becomes sim_7.
func outputBase(name string) string {
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, ".net")
}

func writeNetFile(path string, g *graph.Directed) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WritePajek(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeTermFile(path string, g *graph.Directed) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.WriteTerms(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
