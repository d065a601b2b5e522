package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wiregraph/pkg/config"
	"github.com/matzehuels/wiregraph/pkg/engine"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/io"
	"github.com/matzehuels/wiregraph/pkg/netlist"
	"github.com/matzehuels/wiregraph/pkg/render/dot"
	"github.com/matzehuels/wiregraph/pkg/script"
	"github.com/matzehuels/wiregraph/pkg/session"
)

// Output formats for the run command.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputDOT   = "dot"
	outputSVG   = "svg"
)

// runOpts holds the command-line flags for the run command.
type runOpts struct {
	output  string  // output format: table, json, dot, svg
	file    string  // write json/dot/svg here instead of stdout
	nets    bool    // print the netlist after the delta table
	scale   float64 // render scale; 0 uses the configured scale
	ids     bool    // label free vertices with their IDs (dot, svg)
	session string  // named drawing to continue and save
}

// runCommand creates the run command, which executes a script.
func (c *CLI) runCommand() *cobra.Command {
	opts := runOpts{output: outputTable}

	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Execute an edit script and report what changed",
		Long: `Execute an edit script (TOML, YAML or JSON) against a fresh graph.

By default every step's delta is printed as a table. With --output the final
graph is written as a JSON document, Graphviz DOT or a rendered SVG.

With --session the script continues the named drawing saved by an earlier
run, and the result is saved back when every step succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateFormat(opts.output, outputTable, outputJSON, outputDOT, outputSVG); err != nil {
				return err
			}
			return c.runScript(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output format: table (default), json, dot, svg")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "write the output to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.nets, "nets", false, "print the netlist (table output)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "render scale (dot, svg)")
	cmd.Flags().BoolVar(&opts.ids, "ids", false, "label free vertices with their IDs (dot, svg)")
	cmd.Flags().StringVarP(&opts.session, "session", "s", "", "continue and save a named drawing")

	return cmd
}

func (c *CLI) runScript(ctx context.Context, path string, opts runOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	eng := c.newEngine(cfg)
	var store session.Store
	if opts.session != "" {
		if store, err = c.openSession(ctx, eng, opts.session); err != nil {
			return err
		}
	}

	prog := newProgress(c.Logger)
	deltas, runErr := s.Run(eng)
	prog.done(fmt.Sprintf("Ran %d of %d steps", len(deltas), len(s.Steps)))

	if store != nil && runErr == nil {
		sess, err := session.New(opts.session, eng.State(), eng.Revision())
		if err != nil {
			return err
		}
		if err := store.Set(ctx, sess); err != nil {
			return err
		}
		c.Logger.Info("saved session", "name", opts.session, "revision", eng.Revision())
	}

	if opts.output == outputTable {
		printTableOutput(s, deltas, eng, opts.nets)
		if runErr != nil {
			printError("%s", errors.UserMessage(runErr))
		}
		return runErr
	}
	if runErr != nil {
		return runErr
	}
	return c.writeGraph(ctx, cfg, eng, opts)
}

func printTableOutput(s script.Script, deltas []engine.Delta, eng *engine.Engine, showNets bool) {
	ops := make([]string, len(deltas))
	for i := range deltas {
		ops[i] = s.Steps[i].Op
	}
	nets := netlist.Build(eng.State())

	fmt.Println(StyleTitle.Render(s.Name))
	fmt.Println(renderDeltaTable(ops, deltas))
	printGraphStats(eng.State(), len(nets))
	if showNets && len(nets) > 0 {
		fmt.Println()
		fmt.Println(renderNetTable(nets))
	}
}

// writeGraph writes the final graph in a non-table format.
func (c *CLI) writeGraph(ctx context.Context, cfg config.Config, eng *engine.Engine, opts runOpts) error {
	out := os.Stdout
	if opts.file != "" {
		if err := errors.ValidatePath(opts.file); err != nil {
			return err
		}
		f, err := os.Create(opts.file)
		if err != nil {
			return fmt.Errorf("create %s: %w", opts.file, err)
		}
		defer f.Close()
		out = f
	}

	scale := opts.scale
	if scale <= 0 {
		scale = cfg.Render.Scale
	}
	dotOpts := dot.Options{Scale: scale, ShowIDs: opts.ids}

	var err error
	switch opts.output {
	case outputJSON:
		err = io.WriteJSON(eng.State(), out)
	case outputDOT:
		_, err = fmt.Fprint(out, dot.ToDOT(eng.State(), dotOpts))
	case outputSVG:
		var svg []byte
		svg, err = c.newRenderer(cfg).SVG(ctx, eng.State(), dotOpts)
		if err == nil {
			_, err = out.Write(svg)
		}
	}
	if err != nil {
		return err
	}
	if opts.file != "" {
		printSuccess("Wrote %s", opts.output)
		printFile(opts.file)
	}
	return nil
}

// openSession restores the named drawing into eng, if it was saved before.
func (c *CLI) openSession(ctx context.Context, eng *engine.Engine, name string) (session.Store, error) {
	if err := session.ValidateName(name); err != nil {
		return nil, err
	}
	store, err := c.newSessionStore()
	if err != nil {
		return nil, err
	}
	sess, err := store.Get(ctx, name)
	if err != nil || sess == nil {
		return store, err
	}
	g, err := sess.State()
	if err != nil {
		return nil, err
	}
	eng.Restore(g, sess.Revision)
	c.Logger.Info("restored session", "name", name, "vertices", g.VertexCount(), "edges", g.EdgeCount())
	return store, nil
}
