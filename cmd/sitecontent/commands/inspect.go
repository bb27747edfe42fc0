package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"git.home.luguber.info/inful/sitecontent/internal/build"
	"git.home.luguber.info/inful/sitecontent/internal/content"
	"git.home.luguber.info/inful/sitecontent/internal/export"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	From     string `help:"Read an existing document instead of building" type:"existingfile"`
	Sections bool   `short:"s" help:"List the sections of every page"`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	sc, err := i.load(root)
	if err != nil {
		return err
	}
	return printTree(g.out(), sc, i.Sections)
}

func (i *InspectCmd) load(root *CLI) (*content.SiteContent, error) {
	if i.From != "" {
		f, err := os.Open(i.From)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return export.ReadJSON(f)
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return nil, err
	}
	res, err := build.NewService().Run(context.Background(), build.Request{Config: cfg, Trigger: "inspect"})
	if err != nil {
		return nil, err
	}
	return res.Content, nil
}

// printTree writes pages nested under their parents, keeping document order.
func printTree(w io.Writer, sc *content.SiteContent, withSections bool) error {
	known := make(map[string]bool, len(sc.Pages))
	for idx := range sc.Pages {
		known[sc.Pages[idx].Route] = true
	}
	children := map[string][]int{}
	var roots []int
	for idx := range sc.Pages {
		p := &sc.Pages[idx]
		if p.Parent == nil || !known[*p.Parent] {
			roots = append(roots, idx)
			continue
		}
		children[*p.Parent] = append(children[*p.Parent], idx)
	}

	var err error
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		if err != nil {
			return
		}
		p := &sc.Pages[idx]
		indent := strings.Repeat("  ", depth)
		_, err = fmt.Fprintf(w, "%s%s%s\n", indent, p.Route, describe(p))
		if withSections {
			printSections(w, p.Sections, indent+"    ", &err)
		}
		for _, c := range children[p.Route] {
			walk(c, depth+1)
		}
	}
	for _, idx := range roots {
		walk(idx, 0)
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%d pages, %d assets, %d icons, %d warnings\n",
		len(sc.Pages), len(sc.Assets), len(sc.Icons), sc.Build.Warnings)
	return err
}

func describe(p *content.Page) string {
	var tags []string
	if n := p.SectionCount(); n > 0 {
		tags = append(tags, fmt.Sprintf("%d sections", n))
	}
	if p.IsIndex {
		tags = append(tags, "index")
	}
	if p.IsDynamic {
		tags = append(tags, "param="+p.ParamName)
	}
	if p.Version != "" {
		tags = append(tags, "version="+p.Version)
	}
	if p.LayoutArea {
		tags = append(tags, "layout-area")
	}
	if p.Hidden {
		tags = append(tags, "hidden")
	}
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, ", ") + "]"
}

func printSections(w io.Writer, list []*content.Section, indent string, err *error) {
	for _, s := range list {
		if *err != nil {
			return
		}
		label := s.StableID
		if s.Type != "" {
			label += " (" + s.Type + ")"
		}
		_, *err = fmt.Fprintf(w, "%s%s %s\n", indent, s.ID, label)
		printSections(w, s.Subsections, indent+"  ", err)
	}
}
