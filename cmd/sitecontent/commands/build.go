package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/sitecontent/internal/build"
	"git.home.luguber.info/inful/sitecontent/internal/export"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override build.output" type:"path"`
	Stdout bool   `help:"Also print the document to stdout"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if b.Output != "" {
		cfg.Build.Output = b.Output
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.close()

	res, err := p.service(cfg).Run(context.Background(), build.Request{Config: cfg, Trigger: "cli"})
	if err != nil {
		return err
	}
	if b.Stdout {
		return export.WriteJSON(g.out(), res.Content)
	}
	_, err = fmt.Fprintf(g.out(), "Built %d pages (%d warnings) in %.0fms -> %s\n",
		len(res.Content.Pages), res.Content.Build.Warnings, res.Content.Build.DurationMS, cfg.OutputPath())
	return err
}
