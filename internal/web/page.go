package web

import (
	"github.com/henri123lemoine/aligns/internal/view"
)

type pageMeta struct {
	Title  string
	Icon   string
	Wide   bool
	Footer string
}

type navEntry struct {
	Slug    string
	Name    string
	Checked bool
}

type chartRef struct {
	URL string
	Alt string
}

// blockData flattens a view.Block for the template. Exactly one of the
// content fields is set.
type blockData struct {
	Heading     string
	Actions     []view.Action
	Table       *view.Table
	Chart       *chartRef
	Select      *view.Select
	Definitions []view.Definition
}

type pageData struct {
	Meta   pageMeta
	View   string
	Nav    []navEntry
	Page   view.Page
	Blocks []blockData
}

func (s *Server) pageData(page view.Page) pageData {
	data := pageData{
		Meta: pageMeta{
			Title:  s.cfg.Page.Title,
			Icon:   s.cfg.Page.Icon,
			Wide:   s.cfg.Page.Layout == "wide",
			Footer: s.cfg.Page.Footer,
		},
		View: page.View.Slug(),
		Page: page,
	}

	for _, v := range view.All() {
		data.Nav = append(data.Nav, navEntry{
			Slug:    v.Slug(),
			Name:    v.String(),
			Checked: v == page.Sidebar,
		})
	}

	for _, b := range page.Blocks {
		bd := blockData{Heading: b.Heading}
		switch b.Kind {
		case view.BlockActions:
			bd.Actions = b.Actions
		case view.BlockTable:
			bd.Table = b.Table
		case view.BlockChart:
			bd.Chart = &chartRef{
				URL: "/chart/" + page.View.Slug() + ".svg",
				Alt: b.Chart.YAxis + " by " + b.Chart.XAxis,
			}
		case view.BlockSelect:
			bd.Select = b.Select
		case view.BlockDefinitions:
			bd.Definitions = b.Definitions
		}
		data.Blocks = append(data.Blocks, bd)
	}
	return data
}
